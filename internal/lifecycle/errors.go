package lifecycle

import "errors"

// Error kinds surfaced to callers. Every operation either ends in a stable
// state or reports one of these having restored the prior stable state.
// Transient failures (clone, pull, network) are never retried internally.
var (
	// ErrUnsupportedHost rejects repository URLs not hosted on github.com.
	ErrUnsupportedHost = errors.New("only GitHub.com repository URLs are accepted")

	// ErrCloneFailure covers clone errors: network, auth, repository not found.
	ErrCloneFailure = errors.New("cloning repository failed")

	// ErrNetworkFailure covers remote lookups that could not be completed.
	// Never conflated with "up to date".
	ErrNetworkFailure = errors.New("remote repository unreachable")

	// ErrPullFailure covers update pulls that failed (diverged history,
	// network error). The working copy and registry are left untouched.
	ErrPullFailure = errors.New("pulling repository failed")

	// ErrNoValidExtension covers a cloned tree with a missing, invalid, or
	// mismatched manifest.
	ErrNoValidExtension = errors.New("no valid extension found in repository")

	// ErrAlreadyInstalled rejects installing over an existing extension id.
	ErrAlreadyInstalled = errors.New("extension already installed")

	// ErrNotInstalled rejects operations on an unknown extension id.
	ErrNotInstalled = errors.New("extension not installed")

	// ErrUninstallFailure covers partial removal: the registry entry is
	// retained and manual intervention is implied.
	ErrUninstallFailure = errors.New("removing extension failed")
)
