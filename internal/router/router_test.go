package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestTable_RegisterAndServe(t *testing.T) {
	table := NewTable()

	err := table.Register(EndpointGroup{
		Name: "demo",
		Routes: []Route{
			{Method: http.MethodGet, Pattern: "/demo", Handler: okHandler("demo")},
		},
	})
	require.NoError(t, err)

	handler := table.Freeze()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo", rec.Body.String())
}

func TestTable_RegisterAfterFreeze(t *testing.T) {
	table := NewTable()
	table.Freeze()

	err := table.Register(EndpointGroup{Name: "late"})
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestTable_DuplicateGroupName(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.Register(EndpointGroup{
		Name:   "demo",
		Routes: []Route{{Pattern: "/a", Handler: okHandler("a")}},
	}))

	err := table.Register(EndpointGroup{
		Name:   "demo",
		Routes: []Route{{Pattern: "/b", Handler: okHandler("b")}},
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTable_PatternConflictIsErrorNotPanic(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.Register(EndpointGroup{
		Name:   "first",
		Routes: []Route{{Method: http.MethodGet, Pattern: "/same", Handler: okHandler("1")}},
	}))

	err := table.Register(EndpointGroup{
		Name:   "second",
		Routes: []Route{{Method: http.MethodGet, Pattern: "/same", Handler: okHandler("2")}},
	})
	assert.Error(t, err)

	// The first registration still serves.
	handler := table.Freeze()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/same", nil))
	assert.Equal(t, "1", rec.Body.String())
}

func TestTable_GroupNames(t *testing.T) {
	table := NewTable()
	for _, name := range []string{"zeta", "alpha"} {
		require.NoError(t, table.Register(EndpointGroup{
			Name:   name,
			Routes: []Route{{Pattern: "/" + name, Handler: okHandler(name)}},
		}))
	}
	assert.Equal(t, []string{"alpha", "zeta"}, table.GroupNames())
}
