package updater

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckLatestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name": "v1.4.0", "html_url": "https://example.com/release"}`))
	}))
	defer srv.Close()

	u := New("1.0.0", WithAPIBase(srv.URL), WithHTTPClient(srv.Client()))

	release, err := u.CheckLatestVersion()
	if err != nil {
		t.Fatalf("CheckLatestVersion failed: %v", err)
	}
	if release.Version != "v1.4.0" {
		t.Errorf("Version = %q, want %q", release.Version, "v1.4.0")
	}
}

func TestCheckLatestVersion_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	u := New("1.0.0", WithAPIBase(srv.URL), WithHTTPClient(srv.Client()))

	if _, err := u.CheckLatestVersion(); err == nil {
		t.Error("expected error for missing release")
	}
}
