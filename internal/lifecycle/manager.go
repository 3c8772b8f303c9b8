package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/gitrepo"
	"github.com/inkframe-labs/inkframe/internal/manifest"
	"github.com/inkframe-labs/inkframe/internal/registry"
	"github.com/inkframe-labs/inkframe/internal/restart"
)

// UpdateCheck is the result of comparing the local and remote head commits
// of an installed extension. Hashes are opaque: any difference means an
// update is available.
type UpdateCheck struct {
	UpToDate   bool
	LocalHash  string
	RemoteHash string
}

// Manager installs, updates, and removes extensions. It exclusively owns
// the extensions root, the staging area, and the registry; operations on
// one extension id are serialized, operations on distinct ids proceed
// independently.
type Manager struct {
	store    *registry.Store
	git      gitrepo.Client
	root     string // canonical per-id extension directories
	staging  string // incomplete clones live here until finalized
	restarts restart.Coordinator
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a Manager over dataDir. The extensions root and the
// staging area are created on demand under it.
func NewManager(store *registry.Store, git gitrepo.Client, dataDir string, restarts restart.Coordinator, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		store:    store,
		git:      git,
		root:     filepath.Join(dataDir, "extensions"),
		staging:  filepath.Join(dataDir, "staging"),
		restarts: restarts,
		logger:   logger.With(zap.String("component", "lifecycle")),
		locks:    make(map[string]*sync.Mutex),
	}

	for _, dir := range []string{m.root, m.staging} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return m, nil
}

// Root returns the extensions root directory.
func (m *Manager) Root() string {
	return m.root
}

// lockFor returns the mutex serializing operations on one extension id.
func (m *Manager) lockFor(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// Install clones rawURL, validates the extension it contains, finalizes the
// working copy under the extensions root, and records a registry entry.
// Every failure path removes the incomplete clone and leaves registry and
// disk exactly as they were.
func (m *Manager) Install(ctx context.Context, rawURL string) (registry.Extension, error) {
	repoURL, id, err := ParseRepositoryURL(rawURL)
	if err != nil {
		return registry.Extension{}, err
	}

	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if m.store.Has(id) {
		return registry.Extension{}, fmt.Errorf("%w: %s", ErrAlreadyInstalled, id)
	}

	// Clone into staging under the would-be id so the manifest identity
	// check runs against the final directory name.
	stagingDir := filepath.Join(m.staging, id)
	_ = os.RemoveAll(stagingDir)

	commit, err := m.git.Clone(ctx, repoURL, stagingDir)
	if err != nil {
		_ = os.RemoveAll(stagingDir)
		return registry.Extension{}, fmt.Errorf("%w: %v", ErrCloneFailure, err)
	}

	mf, err := manifest.Validate(stagingDir)
	if err != nil {
		_ = os.RemoveAll(stagingDir)
		return registry.Extension{}, fmt.Errorf("%w: %v", ErrNoValidExtension, err)
	}

	// Re-check now that the id is confirmed by the manifest; a concurrent
	// install of the same repository may have won the race.
	if m.store.Has(id) {
		_ = os.RemoveAll(stagingDir)
		return registry.Extension{}, fmt.Errorf("%w: %s", ErrAlreadyInstalled, id)
	}

	finalDir := filepath.Join(m.root, id)
	if err := os.Rename(stagingDir, finalDir); err != nil {
		_ = os.RemoveAll(stagingDir)
		return registry.Extension{}, fmt.Errorf("finalizing extension directory: %w", err)
	}

	entry := registry.Extension{
		ID:            id,
		RepositoryURL: repoURL,
		CommitHash:    commit.Hash,
		CommitTime:    commit.When,
		Path:          finalDir,
	}
	if err := m.store.Put(entry); err != nil {
		_ = os.RemoveAll(finalDir)
		return registry.Extension{}, fmt.Errorf("recording extension: %w", err)
	}

	m.logger.Info("extension installed",
		zap.String("id", id),
		zap.String("display_name", mf.DisplayName),
		zap.String("commit", commit.Hash))

	m.restarts.RequestRestart("extension installed: " + id)
	return entry, nil
}

// CheckUpdate fetches the remote head for an installed extension and
// compares it, as an opaque identifier, to the recorded local commit hash.
// The remote state is never cached: a stale answer would masquerade as
// "up to date".
func (m *Manager) CheckUpdate(ctx context.Context, id string) (UpdateCheck, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	entry, ok := m.store.Get(id)
	if !ok {
		return UpdateCheck{}, fmt.Errorf("%w: %s", ErrNotInstalled, id)
	}

	remoteHash, err := m.git.RemoteHead(ctx, entry.RepositoryURL)
	if err != nil {
		return UpdateCheck{}, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}

	return UpdateCheck{
		UpToDate:   remoteHash == entry.CommitHash,
		LocalHash:  entry.CommitHash,
		RemoteHash: remoteHash,
	}, nil
}

// Update fast-forwards an installed extension's working copy. On failure
// the working copy and the registry entry are left exactly as they were.
func (m *Manager) Update(ctx context.Context, id string) (registry.Extension, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	entry, ok := m.store.Get(id)
	if !ok {
		return registry.Extension{}, fmt.Errorf("%w: %s", ErrNotInstalled, id)
	}

	commit, err := m.git.Pull(ctx, entry.Path)
	if err != nil {
		return registry.Extension{}, fmt.Errorf("%w: %v", ErrPullFailure, err)
	}

	entry.CommitHash = commit.Hash
	entry.CommitTime = commit.When
	if err := m.store.Put(entry); err != nil {
		return registry.Extension{}, fmt.Errorf("recording update: %w", err)
	}

	m.logger.Info("extension updated",
		zap.String("id", id),
		zap.String("commit", commit.Hash))

	m.restarts.RequestRestart("extension updated: " + id)
	return entry, nil
}

// Uninstall removes an extension's working copy and registry entry. If the
// directory cannot be removed the registry entry is retained, so the
// extension is still treated as installed and the error is surfaced.
func (m *Manager) Uninstall(ctx context.Context, id string) error {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	entry, ok := m.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInstalled, id)
	}

	if err := m.git.Remove(entry.Path); err != nil {
		return fmt.Errorf("%w: %v", ErrUninstallFailure, err)
	}
	if err := m.store.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrUninstallFailure, err)
	}

	m.logger.Info("extension uninstalled", zap.String("id", id))

	m.restarts.RequestRestart("extension uninstalled: " + id)
	return nil
}

// List returns all installed extensions sorted by id.
func (m *Manager) List() []registry.Extension {
	return m.store.List()
}

// Get returns a single installed extension by id.
func (m *Manager) Get(id string) (registry.Extension, bool) {
	return m.store.Get(id)
}

// RestartPending reports whether a mutating operation has requested a
// restart that has not yet happened.
func (m *Manager) RestartPending() bool {
	return m.restarts.Pending()
}

// Reconcile repairs half-states a crash may have left behind: abandoned
// staging clones are deleted, registry entries whose working copy is gone
// are dropped, and directories under the extensions root with no registry
// entry are removed so a repeat install cannot collide with them. Run once
// at startup, before any lifecycle operation.
func (m *Manager) Reconcile() error {
	// Staging never survives a healthy operation.
	entries, err := os.ReadDir(m.staging)
	if err == nil {
		for _, e := range entries {
			stale := filepath.Join(m.staging, e.Name())
			m.logger.Warn("removing abandoned staging clone", zap.String("path", stale))
			_ = os.RemoveAll(stale)
		}
	}

	// Registry entries must point at existing working copies.
	for _, ext := range m.store.List() {
		if _, err := os.Stat(ext.Path); os.IsNotExist(err) {
			m.logger.Warn("dropping registry entry with missing working copy",
				zap.String("id", ext.ID),
				zap.String("path", ext.Path))
			if err := m.store.Delete(ext.ID); err != nil {
				return fmt.Errorf("dropping entry %s: %w", ext.ID, err)
			}
		}
	}

	// Working copies must be registered.
	dirs, err := os.ReadDir(m.root)
	if err != nil {
		return fmt.Errorf("reading extensions root: %w", err)
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		if !m.store.Has(d.Name()) {
			orphan := filepath.Join(m.root, d.Name())
			m.logger.Warn("removing unregistered extension directory", zap.String("path", orphan))
			_ = os.RemoveAll(orphan)
		}
	}

	return nil
}
