package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/config"
	"github.com/inkframe-labs/inkframe/internal/gitrepo"
	"github.com/inkframe-labs/inkframe/internal/lifecycle"
	"github.com/inkframe-labs/inkframe/internal/logging"
	"github.com/inkframe-labs/inkframe/internal/registry"
	"github.com/inkframe-labs/inkframe/internal/restart"
)

const registryFileName = "extensions.json"

// newLifecycleManager assembles the lifecycle manager from configuration.
// Every command that touches extensions goes through here.
func newLifecycleManager() (*lifecycle.Manager, *zap.Logger, error) {
	config.Load()
	if err := config.EnsureDir(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(config.LogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	dataDir := config.DataDir()
	store, err := registry.Open(filepath.Join(dataDir, registryFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("opening extension registry: %w", err)
	}

	restarts := restart.NewExec(config.RestartCommand(), logger)
	mgr, err := lifecycle.NewManager(store, gitrepo.NewGoGit(), dataDir, restarts, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing lifecycle manager: %w", err)
	}
	return mgr, logger, nil
}
