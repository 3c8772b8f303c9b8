// Package gitrepo abstracts the version-control operations the lifecycle
// manager needs: clone, remote head lookup, local head lookup, fast-forward
// pull, and working-copy removal. Commit hashes are opaque identifiers
// compared only for equality.
package gitrepo

import (
	"context"
	"time"
)

// Commit identifies a checked-out revision. When is the committer timestamp,
// kept for display only.
type Commit struct {
	Hash string
	When time.Time
}

// Client is the narrow contract over repository operations. Implementations
// do not retry; timeouts are whatever the underlying transport produces.
type Client interface {
	// Clone checks out the default branch of url into dest and returns the
	// resulting head commit.
	Clone(ctx context.Context, url, dest string) (Commit, error)

	// RemoteHead returns the commit hash of the remote default branch tip
	// without touching any working copy.
	RemoteHead(ctx context.Context, url string) (string, error)

	// LocalHead returns the head commit of the working copy at path.
	LocalHead(path string) (Commit, error)

	// Pull fast-forwards the working copy at path and returns the new head.
	// A working copy that is already current is not an error.
	Pull(ctx context.Context, path string) (Commit, error)

	// Remove deletes the working copy at path.
	Remove(path string) error
}
