package registry

import "time"

// Extension is a registry entry for one installed extension. Entries are
// created on install, mutated on update, and destroyed on uninstall; no
// other component writes them.
type Extension struct {
	// ID is the unique key. It always equals the name of the extension's
	// directory under the extensions root.
	ID string `json:"id"`

	// RepositoryURL is the GitHub source the extension was installed from.
	// Validated at install time, never re-validated afterward.
	RepositoryURL string `json:"repository_url"`

	// CommitHash identifies the currently checked-out revision. Opaque:
	// compared only for equality, never ordered or parsed.
	CommitHash string `json:"commit_hash"`

	// CommitTime is the committer timestamp of CommitHash, for display.
	CommitTime time.Time `json:"commit_time"`

	// Path is the extension's working copy, owned exclusively by the
	// lifecycle manager.
	Path string `json:"path"`
}
