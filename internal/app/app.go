// Package app arma la aplicación a partir de dependencias ya abiertas:
// services sobre el DAL, controllers sobre los services, y el router
// con su cadena de middlewares. No abre conexiones ni lee entorno; eso
// es responsabilidad del main.
package app

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/denorm"
	httpmetrics "github.com/dropDatabas3/mercadito/internal/http"
	catalogctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/catalog"
	healthctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/health"
	"github.com/dropDatabas3/mercadito/internal/http/router"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/store"
)

// Deps contiene las dependencias crudas para armar la aplicación.
type Deps struct {
	DAL store.DataAccessLayer

	// MySQLStats expone las estadísticas del pool relacional para el
	// collector de métricas. Nil si el backend no está abierto.
	MySQLStats func() sql.DBStats
}

// App representa la aplicación armada.
type App struct {
	Handler http.Handler
}

// New arma la aplicación.
func New(cfg *config.Config, deps Deps) (*App, error) {
	services := svc.NewServices(svc.Deps{DAL: deps.DAL})

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		h, err := httpmetrics.RegisterMetrics(httpmetrics.MetricsConfig{
			DBStats: deps.MySQLStats,
		})
		if err != nil {
			return nil, fmt.Errorf("app: register http metrics: %w", err)
		}
		if err := denorm.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
			return nil, fmt.Errorf("app: register denorm metrics: %w", err)
		}
		metricsHandler = h
	}

	handler := router.New(router.Deps{
		Catalog:            catalogctrl.NewControllers(services),
		Health:             healthctrl.NewController(deps.DAL),
		Metrics:            metricsHandler,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	return &App{Handler: handler}, nil
}
