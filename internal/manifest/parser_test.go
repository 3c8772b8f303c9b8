package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_JSONPreferredOverYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plugin-info.json"), []byte(`{"id": "a", "displayName": "A"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugin-info.yaml"), []byte("id: b\ndisplayName: B\n"), 0644); err != nil {
		t.Fatal(err)
	}

	path := Find(dir)
	if filepath.Base(path) != "plugin-info.json" {
		t.Errorf("Find() = %q, want plugin-info.json", path)
	}
}

func TestFind_None(t *testing.T) {
	if path := Find(t.TempDir()); path != "" {
		t.Errorf("Find() = %q, want empty", path)
	}
}

func TestParseFile_NotFound(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "plugin-info.json")); err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestParse_YAMLExtraFields(t *testing.T) {
	data := []byte("id: clock\ndisplayName: Clock\ntimezone: UTC\nstyle:\n  face: analog\n")
	m, err := Parse(data, "plugin-info.yaml")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.ID != "clock" {
		t.Errorf("ID = %q, want clock", m.ID)
	}
	if _, ok := m.Extra["timezone"]; !ok {
		t.Errorf("timezone not preserved in Extra: %v", m.Extra)
	}
	if _, ok := m.Extra["style"]; !ok {
		t.Errorf("nested style not preserved in Extra: %v", m.Extra)
	}
}
