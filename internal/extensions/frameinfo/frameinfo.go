// Package frameinfo is a built-in extension reporting host identity and the
// installed extension set.
package frameinfo

import (
	"encoding/json"
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/inkframe-labs/inkframe/internal/branding"
	"github.com/inkframe-labs/inkframe/internal/extension"
	"github.com/inkframe-labs/inkframe/internal/lifecycle"
	"github.com/inkframe-labs/inkframe/internal/router"
)

func init() {
	extension.MustRegisterBuiltin("frameinfo", New)
}

// FrameInfo serves host metadata under /frameinfo-api/.
type FrameInfo struct {
	mgr     *lifecycle.Manager
	version string
	logger  *zap.Logger
}

// New creates the extension from the host context.
func New(ctx *extension.Context) (extension.Extension, error) {
	logger := ctx.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameInfo{
		mgr:     ctx.Lifecycle,
		version: ctx.HostVersion,
		logger:  logger.With(zap.String("component", "frameinfo")),
	}, nil
}

func (f *FrameInfo) ID() string          { return "frameinfo" }
func (f *FrameInfo) DisplayName() string { return "Frame Info" }

// EndpointGroups contributes the host metadata group.
func (f *FrameInfo) EndpointGroups() []router.EndpointGroup {
	return []router.EndpointGroup{{
		Name: "frameinfo-api",
		Routes: []router.Route{
			{Method: http.MethodGet, Pattern: "/frameinfo-api/about", Handler: http.HandlerFunc(f.handleAbout)},
		},
	}}
}

type aboutResponse struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	Platform       string `json:"platform"`
	ExtensionCount int    `json:"extension_count"`
	RestartPending bool   `json:"restart_pending"`
}

func (f *FrameInfo) handleAbout(w http.ResponseWriter, r *http.Request) {
	resp := aboutResponse{
		Name:     branding.DisplayName(),
		Version:  f.version,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if f.mgr != nil {
		resp.ExtensionCount = len(f.mgr.List())
		resp.RestartPending = f.mgr.RestartPending()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		f.logger.Warn("writing response", zap.Error(err))
	}
}
