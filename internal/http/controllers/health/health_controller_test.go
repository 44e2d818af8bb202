package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/mercadito/internal/http/controllers/health"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

// flakyBackend envuelve el backend en memoria pero falla el ping, para
// simular un almacenamiento caído.
type flakyBackend struct {
	*memory.Conn
}

func (f *flakyBackend) Name() string { return "flaky" }

func (f *flakyBackend) Ping(context.Context) error {
	return errors.New("connection refused")
}

func newRouter(dal store.DataAccessLayer) http.Handler {
	r := chi.NewRouter()
	health.NewController(dal).Register(r)
	return r
}

func decodeReady(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}) {
	t.Helper()
	var resp struct {
		Status     string `json:"status"`
		Components map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Status, resp.Components
}

func TestHealthz(t *testing.T) {
	h := newRouter(store.NewRegistry(memory.Open()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok"`)
}

func TestReadyzAllBackendsUp(t *testing.T) {
	h := newRouter(store.NewRegistry(memory.Open()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	status, components := decodeReady(t, rec)
	require.Equal(t, "ready", status)
	require.Equal(t, "ready", components["memory"].Status)
}

func TestReadyzDegraded(t *testing.T) {
	h := newRouter(store.NewRegistry(memory.Open(), &flakyBackend{Conn: memory.Open()}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	status, components := decodeReady(t, rec)
	require.Equal(t, "degraded", status)
	require.Equal(t, "ready", components["memory"].Status)
	require.Equal(t, "unavailable", components["flaky"].Status)
	require.Contains(t, components["flaky"].Error, "connection refused")
}

func TestReadyzUnavailable(t *testing.T) {
	h := newRouter(store.NewRegistry(&flakyBackend{Conn: memory.Open()}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	status, _ := decodeReady(t, rec)
	require.Equal(t, "unavailable", status)
}
