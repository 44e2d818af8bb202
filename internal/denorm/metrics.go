package denorm

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	refRewritesTotal        *prometheus.CounterVec
	reverseRefFailuresTotal *prometheus.CounterVec
)

// RegisterMetrics registra los contadores del sincronizador. Si no se
// llama, los contadores quedan en nil y los helpers no hacen nada (los
// tests no necesitan registrar métricas).
func RegisterMetrics(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		refRewritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_denorm_ref_rewrites_total",
			Help: "Copias embebidas {id, nombre} reescritas por renombres de categoría",
		}, []string{"backend"})

		reverseRefFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_denorm_reverse_ref_failures_total",
			Help: "Fallas al agregar referencias inversas producto a categoría",
		}, []string{"backend"})

		if metricsErr = registerCollector(reg, refRewritesTotal); metricsErr != nil {
			return
		}
		metricsErr = registerCollector(reg, reverseRefFailuresTotal)
	})
	return metricsErr
}

// registerCollector registra el collector, ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

func recordRefRewrites(backend string, n int64) {
	if refRewritesTotal != nil && n > 0 {
		refRewritesTotal.WithLabelValues(backend).Add(float64(n))
	}
}

func recordReverseRefFailure(backend string) {
	if reverseRefFailuresTotal != nil {
		reverseRefFailuresTotal.WithLabelValues(backend).Inc()
	}
}
