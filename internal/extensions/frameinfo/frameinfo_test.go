package frameinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkframe-labs/inkframe/internal/extension"
	"github.com/inkframe-labs/inkframe/internal/router"
)

func TestAbout(t *testing.T) {
	ext, err := New(&extension.Context{HostVersion: "1.2.3"})
	require.NoError(t, err)

	table := router.NewTable()
	for _, group := range ext.(extension.EndpointProvider).EndpointGroups() {
		require.NoError(t, table.Register(group))
	}
	handler := table.Freeze()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frameinfo-api/about", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp aboutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotEmpty(t, resp.Name)
	assert.NotEmpty(t, resp.Platform)
	assert.Zero(t, resp.ExtensionCount)
}
