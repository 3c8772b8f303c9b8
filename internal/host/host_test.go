package host

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkframe-labs/inkframe/internal/extension"
	"github.com/inkframe-labs/inkframe/internal/gitrepo"
	"github.com/inkframe-labs/inkframe/internal/lifecycle"
	"github.com/inkframe-labs/inkframe/internal/registry"
	"github.com/inkframe-labs/inkframe/internal/restart"
	"github.com/inkframe-labs/inkframe/internal/router"
)

type noopGit struct{}

func (noopGit) Clone(ctx context.Context, url, dest string) (gitrepo.Commit, error) {
	return gitrepo.Commit{}, nil
}
func (noopGit) RemoteHead(ctx context.Context, url string) (string, error) { return "", nil }
func (noopGit) LocalHead(path string) (gitrepo.Commit, error)              { return gitrepo.Commit{}, nil }
func (noopGit) Pull(ctx context.Context, path string) (gitrepo.Commit, error) {
	return gitrepo.Commit{}, nil
}
func (noopGit) Remove(path string) error { return nil }

type groupExtension struct {
	id     string
	groups []router.EndpointGroup
}

func (g *groupExtension) ID() string          { return g.id }
func (g *groupExtension) DisplayName() string { return g.id }

func (g *groupExtension) EndpointGroups() []router.EndpointGroup { return g.groups }

func factoryFor(ext extension.Extension) extension.Factory {
	return func(ctx *extension.Context) (extension.Extension, error) { return ext, nil }
}

func newTestHost(t *testing.T, factories ...extension.Factory) *Host {
	t.Helper()

	dataDir := t.TempDir()
	store, err := registry.Open(filepath.Join(dataDir, "extensions.json"))
	require.NoError(t, err)

	mgr, err := lifecycle.NewManager(store, noopGit{}, dataDir, restart.NewExec("", nil), nil)
	require.NoError(t, err)

	loader := extension.NewLoader(mgr, factories, nil)
	return New("127.0.0.1:0", mgr, loader, "test", nil)
}

func okRoute(pattern, body string) router.Route {
	return router.Route{
		Method:  http.MethodGet,
		Pattern: pattern,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}),
	}
}

func TestHandler_CoreHealthEndpoint(t *testing.T) {
	handler := newTestHost(t).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["restart_pending"])
}

func TestHandler_RegistersExtensionGroups(t *testing.T) {
	ext := &groupExtension{
		id: "demo",
		groups: []router.EndpointGroup{
			{Name: "demo-api", Routes: []router.Route{okRoute("/demo-api/ping", "pong")}},
		},
	}
	h := newTestHost(t, factoryFor(ext))
	handler := h.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo-api/ping", nil))
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"core", "demo-api"}, h.table.GroupNames())
}

func TestHandler_BadGroupIsSkippedOthersRegister(t *testing.T) {
	ext := &groupExtension{
		id: "mixed",
		groups: []router.EndpointGroup{
			{Name: "core", Routes: []router.Route{okRoute("/stolen", "no")}}, // collides with host group
			{Name: "mixed-api", Routes: []router.Route{okRoute("/mixed-api/ok", "yes")}},
		},
	}
	h := newTestHost(t, factoryFor(ext))
	handler := h.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mixed-api/ok", nil))
	assert.Equal(t, "yes", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stolen", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_TableIsFrozenAfterStartup(t *testing.T) {
	h := newTestHost(t)
	h.Handler()

	assert.True(t, h.table.Frozen())
	err := h.table.Register(router.EndpointGroup{Name: "late"})
	assert.ErrorIs(t, err, router.ErrFrozen)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	h := newTestHost(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("host did not shut down")
	}
}
