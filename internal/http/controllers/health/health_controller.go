// Package health expone los endpoints de liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/mercadito/internal/http/dto/health"
	"github.com/dropDatabas3/mercadito/internal/http/helpers"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/store"
)

// pingTimeout acota el chequeo de cada backend para que un
// almacenamiento colgado no bloquee el readiness completo.
const pingTimeout = 5 * time.Second

// Controller responde los chequeos de salud del servicio.
type Controller struct {
	dal store.DataAccessLayer
}

// NewController crea el controller de salud.
func NewController(dal store.DataAccessLayer) *Controller {
	return &Controller{dal: dal}
}

// Register registra las rutas de salud.
func (c *Controller) Register(r chi.Router) {
	r.Get("/healthz", c.Healthz)
	r.Get("/readyz", c.Readyz)
}

// Healthz es el chequeo de liveness: responde 200 si el proceso está
// vivo, sin tocar los backends.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz es el chequeo de readiness: hace ping a cada backend
// registrado y reporta el estado por componente.
//
//	ready       todos los backends responden        → 200
//	degraded    algunos responden, otros no         → 503
//	unavailable ninguno responde                    → 503
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Health.Readyz"),
	)

	components := make(map[string]dto.ComponentStatus)
	healthy := 0
	for _, name := range c.dal.Backends() {
		b, err := c.dal.ForBackend(name)
		if err == nil {
			err = b.Ping(ctx)
		}
		if err != nil {
			log.Warn("backend not ready", logger.Backend(name), logger.Err(err))
			components[name] = dto.ComponentStatus{Status: "unavailable", Error: err.Error()}
			continue
		}
		components[name] = dto.ComponentStatus{Status: "ready"}
		healthy++
	}

	resp := dto.ReadyResponse{Components: components}
	code := http.StatusOK
	switch {
	case healthy == len(components):
		resp.Status = "ready"
	case healthy > 0:
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	default:
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	helpers.WriteJSON(w, code, resp)
}
