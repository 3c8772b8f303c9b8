package extension

import (
	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/manifest"
	"github.com/inkframe-labs/inkframe/internal/registry"
)

// Lister enumerates installed extensions. Satisfied by lifecycle.Manager.
type Lister interface {
	List() []registry.Extension
}

// Loader assembles the full extension set at startup: built-in factories
// first, then every installed extension whose manifest still validates.
type Loader struct {
	installed Lister
	factories []Factory
	logger    *zap.Logger
}

// NewLoader creates a Loader over the installed-extension source and the
// built-in factories to instantiate.
func NewLoader(installed Lister, factories []Factory, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		installed: installed,
		factories: factories,
		logger:    logger.With(zap.String("component", "loader")),
	}
}

// LoadAll instantiates every extension. A factory error or an installed
// extension that fails manifest validation is logged and skipped; one broken
// extension never blocks the rest.
func (l *Loader) LoadAll(ctx *Context) []Extension {
	var exts []Extension

	for _, factory := range l.factories {
		ext, err := factory(ctx)
		if err != nil {
			l.logger.Warn("skipping built-in extension", zap.Error(err))
			continue
		}
		exts = append(exts, ext)
	}

	for _, entry := range l.installed.List() {
		mf, err := manifest.Validate(entry.Path)
		if err != nil {
			l.logger.Warn("skipping installed extension",
				zap.String("id", entry.ID),
				zap.Error(err))
			continue
		}
		exts = append(exts, NewInstalled(mf, entry.Path))
	}

	return exts
}
