package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/mercadito/internal/app"
	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

// Smoke test del armado completo: config por defecto + un backend en
// memoria deben producir un handler que sirve salud, métricas y catálogo.
func TestNewWiresHandler(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = true

	a, err := app.New(cfg, app.Deps{DAL: store.NewRegistry(memory.Open())})
	require.NoError(t, err)
	require.NotNil(t, a.Handler)

	for _, path := range []string{"/healthz", "/metrics", "/category/all/memory"} {
		rr := httptest.NewRecorder()
		a.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, "GET %s", path)
	}
}

func TestNewWithoutMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false

	a, err := app.New(cfg, app.Deps{DAL: store.NewRegistry(memory.Open())})
	require.NoError(t, err)

	// Sin métricas habilitadas la ruta no existe.
	rr := httptest.NewRecorder()
	a.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}
