package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	catalogctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/catalog"
	healthctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/health"
	"github.com/dropDatabas3/mercadito/internal/http/router"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	dal := store.NewRegistry(memory.Open())
	services := svc.NewServices(svc.Deps{DAL: dal})
	return router.New(router.Deps{
		Catalog:            catalogctrl.NewControllers(services),
		Health:             healthctrl.NewController(dal),
		CORSAllowedOrigins: []string{"https://app.example.com"},
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouterWiring(t *testing.T) {
	h := newHandler(t)

	// Liveness y readiness responden por el router completo.
	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	var ready struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ready))
	require.Equal(t, "ready", ready.Status)

	// Toda respuesta sale con request id y cabeceras de seguridad.
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRouterRequestIDPropagation(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-rid-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "test-rid-123", rec.Header().Get("X-Request-ID"))
}

func TestRouterErrorRoutes(t *testing.T) {
	h := newHandler(t)

	rec := get(t, h, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ROUTE_NOT_FOUND", resp.Code)

	req := httptest.NewRequest(http.MethodDelete, "/category/memory", nil)
	del := httptest.NewRecorder()
	h.ServeHTTP(del, req)
	require.Equal(t, http.StatusMethodNotAllowed, del.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/category/memory", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	// Orígenes no permitidos no reciben cabeceras CORS.
	req = httptest.NewRequest(http.MethodOptions, "/category/memory", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
