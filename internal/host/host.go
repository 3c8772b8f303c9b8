// Package host runs the long-lived application: it loads extensions, opens
// the startup registration window, freezes the routing table, and serves
// until the context is cancelled.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/extension"
	"github.com/inkframe-labs/inkframe/internal/lifecycle"
	"github.com/inkframe-labs/inkframe/internal/router"
)

const shutdownTimeout = 10 * time.Second

// Host wires the lifecycle manager, the extension loader, and the routing
// table into a serving HTTP application.
type Host struct {
	addr    string
	mgr     *lifecycle.Manager
	loader  *extension.Loader
	version string
	logger  *zap.Logger

	table      *router.Table
	extensions []extension.Extension
}

// New creates a Host listening on addr.
func New(addr string, mgr *lifecycle.Manager, loader *extension.Loader, version string, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		addr:    addr,
		mgr:     mgr,
		loader:  loader,
		version: version,
		logger:  logger.With(zap.String("component", "host")),
		table:   router.NewTable(),
	}
}

// Handler runs the registration window and returns the frozen handler:
// built-in host endpoints first, then every loaded extension's groups. A
// group that fails to register is logged and skipped; the rest of the
// extension's groups still register.
func (h *Host) Handler() http.Handler {
	h.registerCore()

	h.extensions = h.loader.LoadAll(&extension.Context{
		Lifecycle:   h.mgr,
		Logger:      h.logger,
		HostVersion: h.version,
	})

	for _, ext := range h.extensions {
		provider, ok := ext.(extension.EndpointProvider)
		if !ok {
			continue
		}
		for _, group := range provider.EndpointGroups() {
			if err := h.table.Register(group); err != nil {
				h.logger.Warn("skipping endpoint group",
					zap.String("extension", ext.ID()),
					zap.String("group", group.Name),
					zap.Error(err))
				continue
			}
			h.logger.Info("endpoint group registered",
				zap.String("extension", ext.ID()),
				zap.String("group", group.Name))
		}
	}

	return h.table.Freeze()
}

// Run repairs any crash half-states, builds the handler, and serves until
// ctx is cancelled, then shuts down gracefully.
func (h *Host) Run(ctx context.Context) error {
	if err := h.mgr.Reconcile(); err != nil {
		return fmt.Errorf("reconciling extension state: %w", err)
	}

	server := &http.Server{
		Addr:         h.addr,
		Handler:      h.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("listening",
			zap.String("addr", h.addr),
			zap.Strings("groups", h.table.GroupNames()))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		h.logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// registerCore adds the host's own endpoint group. Core registration runs
// before any extension, so a misbehaving extension cannot shadow it.
func (h *Host) registerCore() {
	group := router.EndpointGroup{
		Name: "core",
		Routes: []router.Route{
			{Method: http.MethodGet, Pattern: "/health", Handler: http.HandlerFunc(h.handleHealth)},
		},
	}
	if err := h.table.Register(group); err != nil {
		h.logger.Error("registering core endpoints", zap.Error(err))
	}
}

func (h *Host) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"version":         h.version,
		"restart_pending": h.mgr.RestartPending(),
	})
}
