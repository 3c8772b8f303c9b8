package lifecycle

import (
	"errors"
	"testing"
)

func TestParseRepositoryURL(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantID  string
		wantErr bool
	}{
		{"plain github", "https://github.com/example/demo-plugin", "demo-plugin", false},
		{"dot git suffix", "https://github.com/example/demo-plugin.git", "demo-plugin", false},
		{"trailing slash", "https://github.com/example/demo-plugin/", "demo-plugin", false},
		{"www host", "https://www.github.com/example/demo-plugin", "demo-plugin", false},
		{"host with port", "https://github.com:443/example/demo-plugin", "demo-plugin", false},
		{"mixed case host", "https://GitHub.com/example/demo-plugin", "demo-plugin", false},
		{"leading whitespace", "  https://github.com/example/demo-plugin", "demo-plugin", false},
		{"other host", "https://gitlab.com/example/demo-plugin", "", true},
		{"subdomain", "https://gist.github.com/example/demo-plugin", "", true},
		{"http scheme", "http://github.com/example/demo-plugin", "", true},
		{"ssh url", "git@github.com:example/demo-plugin.git", "", true},
		{"empty", "", "", true},
		{"host only", "https://github.com", "", true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, id, err := ParseRepositoryURL(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedHost) {
					t.Errorf("ParseRepositoryURL(%q) error = %v, want ErrUnsupportedHost", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepositoryURL(%q) error: %v", tt.raw, err)
			}
			if id != tt.wantID {
				t.Errorf("ParseRepositoryURL(%q) id = %q, want %q", tt.raw, id, tt.wantID)
			}
		})
	}
}
