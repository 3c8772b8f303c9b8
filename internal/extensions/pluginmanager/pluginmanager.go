// Package pluginmanager is the built-in extension exposing extension
// lifecycle operations over HTTP. It registers itself as a factory so the
// host picks it up at startup.
package pluginmanager

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/extension"
	"github.com/inkframe-labs/inkframe/internal/lifecycle"
	"github.com/inkframe-labs/inkframe/internal/router"
)

const groupName = "pluginmanager-api"

func init() {
	extension.MustRegisterBuiltin("pluginmanager", New)
}

// PluginManager serves the lifecycle API under /pluginmanager-api/.
type PluginManager struct {
	mgr    *lifecycle.Manager
	logger *zap.Logger
}

// New creates the extension from the host context.
func New(ctx *extension.Context) (extension.Extension, error) {
	if ctx.Lifecycle == nil {
		return nil, errors.New("pluginmanager: lifecycle manager not available")
	}
	logger := ctx.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PluginManager{
		mgr:    ctx.Lifecycle,
		logger: logger.With(zap.String("component", "pluginmanager")),
	}, nil
}

func (p *PluginManager) ID() string          { return "pluginmanager" }
func (p *PluginManager) DisplayName() string { return "Plugin Manager" }

// EndpointGroups contributes the lifecycle API group.
func (p *PluginManager) EndpointGroups() []router.EndpointGroup {
	return []router.EndpointGroup{{
		Name: groupName,
		Routes: []router.Route{
			{Method: http.MethodPost, Pattern: "/pluginmanager-api/install", Handler: http.HandlerFunc(p.handleInstall)},
			{Method: http.MethodPost, Pattern: "/pluginmanager-api/uninstall", Handler: http.HandlerFunc(p.handleUninstall)},
			{Method: http.MethodPost, Pattern: "/pluginmanager-api/update", Handler: http.HandlerFunc(p.handleUpdate)},
			{Method: http.MethodPost, Pattern: "/pluginmanager-api/check-updates", Handler: http.HandlerFunc(p.handleCheckUpdates)},
			{Method: http.MethodGet, Pattern: "/pluginmanager-api/plugins", Handler: http.HandlerFunc(p.handleList)},
		},
	}}
}

type installRequest struct {
	URL string `json:"url"`
}

type pluginRequest struct {
	PluginID string `json:"plugin_id"`
}

type response struct {
	Success        bool        `json:"success"`
	Error          string      `json:"error,omitempty"`
	RestartPending bool        `json:"restart_pending,omitempty"`
	HasUpdates     *bool       `json:"has_updates,omitempty"`
	Plugins        interface{} `json:"plugins,omitempty"`
}

func (p *PluginManager) handleInstall(w http.ResponseWriter, r *http.Request) {
	var req installRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		p.writeError(w, http.StatusBadRequest, errors.New("missing url"))
		return
	}

	entry, err := p.mgr.Install(r.Context(), req.URL)
	if err != nil {
		p.writeError(w, statusFor(err), err)
		return
	}

	p.logger.Info("install requested via api",
		zap.String("id", entry.ID),
		zap.String("url", entry.RepositoryURL))
	p.writeJSON(w, http.StatusOK, response{
		Success:        true,
		RestartPending: p.mgr.RestartPending(),
	})
}

func (p *PluginManager) handleUninstall(w http.ResponseWriter, r *http.Request) {
	id, ok := p.decodePluginID(w, r)
	if !ok {
		return
	}

	if err := p.mgr.Uninstall(r.Context(), id); err != nil {
		p.writeError(w, statusFor(err), err)
		return
	}

	p.writeJSON(w, http.StatusOK, response{
		Success:        true,
		RestartPending: p.mgr.RestartPending(),
	})
}

func (p *PluginManager) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := p.decodePluginID(w, r)
	if !ok {
		return
	}

	if _, err := p.mgr.Update(r.Context(), id); err != nil {
		p.writeError(w, statusFor(err), err)
		return
	}

	p.writeJSON(w, http.StatusOK, response{
		Success:        true,
		RestartPending: p.mgr.RestartPending(),
	})
}

func (p *PluginManager) handleCheckUpdates(w http.ResponseWriter, r *http.Request) {
	id, ok := p.decodePluginID(w, r)
	if !ok {
		return
	}

	check, err := p.mgr.CheckUpdate(r.Context(), id)
	if err != nil {
		p.writeError(w, statusFor(err), err)
		return
	}

	hasUpdates := !check.UpToDate
	p.writeJSON(w, http.StatusOK, response{
		Success:    true,
		HasUpdates: &hasUpdates,
	})
}

func (p *PluginManager) handleList(w http.ResponseWriter, r *http.Request) {
	p.writeJSON(w, http.StatusOK, response{
		Success: true,
		Plugins: p.mgr.List(),
	})
}

func (p *PluginManager) decodePluginID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req pluginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PluginID == "" {
		p.writeError(w, http.StatusBadRequest, errors.New("missing plugin_id"))
		return "", false
	}
	return req.PluginID, true
}

func (p *PluginManager) writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		p.logger.Warn("writing response", zap.Error(err))
	}
}

func (p *PluginManager) writeError(w http.ResponseWriter, status int, err error) {
	p.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	p.writeJSON(w, status, response{Success: false, Error: err.Error()})
}

// statusFor maps lifecycle error kinds to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lifecycle.ErrUnsupportedHost),
		errors.Is(err, lifecycle.ErrNoValidExtension):
		return http.StatusBadRequest
	case errors.Is(err, lifecycle.ErrAlreadyInstalled):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrNotInstalled):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrNetworkFailure),
		errors.Is(err, lifecycle.ErrCloneFailure),
		errors.Is(err, lifecycle.ErrPullFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
