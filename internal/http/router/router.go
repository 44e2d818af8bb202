// Package router arma el http.Handler completo del servicio: rutas del
// catálogo, salud, métricas y la cadena de middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmetrics "github.com/dropDatabas3/mercadito/internal/http"
	catalogctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/catalog"
	healthctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/health"
	"github.com/dropDatabas3/mercadito/internal/http/httperrors"
	mw "github.com/dropDatabas3/mercadito/internal/http/middlewares"
)

// Deps contiene las dependencias para armar el router.
type Deps struct {
	Catalog *catalogctrl.Controllers
	Health  *healthctrl.Controller

	// Metrics es el handler de /metrics. Puede ser nil si las métricas
	// están deshabilitadas.
	Metrics http.Handler

	// CORSAllowedOrigins habilita CORS para esos orígenes. Vacío
	// deshabilita CORS por completo.
	CORSAllowedOrigins []string
}

// New construye el handler raíz con la cadena de middlewares aplicada.
// El orden importa: recover envuelve todo, request id antes del logging
// para que cada línea salga correlacionada, y las métricas miden el
// request ya identificado.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	deps.Catalog.Register(r)
	deps.Health.Register(r)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	chain := []mw.Middleware{
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithSecurityHeaders(),
	}
	if len(deps.CORSAllowedOrigins) > 0 {
		chain = append(chain, mw.WithCORS(deps.CORSAllowedOrigins))
	}
	chain = append(chain, httpmetrics.WithMetrics, mw.WithLogging())

	return mw.Chain(r, chain...)
}
