package lifecycle

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// allowed repository hosts; anything else is rejected at install time.
var allowedHosts = map[string]bool{
	"github.com":     true,
	"www.github.com": true,
}

// ParseRepositoryURL validates that raw is an HTTPS GitHub repository URL
// and derives the would-be extension id from the final path component
// (with a trailing ".git" stripped). The id is provisional until the
// cloned manifest confirms it.
func ParseRepositoryURL(raw string) (repoURL, id string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("%w: URL is required", ErrUnsupportedHost)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid URL: %v", ErrUnsupportedHost, err)
	}
	if u.Scheme != "https" {
		return "", "", fmt.Errorf("%w: only HTTPS URLs are allowed", ErrUnsupportedHost)
	}

	host := strings.ToLower(u.Hostname()) // port stripped
	if !allowedHosts[host] {
		return "", "", fmt.Errorf("%w: got host %q", ErrUnsupportedHost, host)
	}

	id = strings.TrimSuffix(path.Base(strings.TrimSuffix(u.Path, "/")), ".git")
	if id == "" || id == "." || id == "/" {
		return "", "", fmt.Errorf("%w: URL has no repository path", ErrUnsupportedHost)
	}

	return raw, id, nil
}
