// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	cacheRequests      *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec
	exports            *prometheus.CounterVec
}

// New registers the collectors with reg. A nil reg creates unregistered
// collectors, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openmusic_cache_requests_total",
				Help: "Cache lookups by namespace and result (hit, miss, error)",
			},
			[]string{"kind", "result"},
		),
		cacheInvalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openmusic_cache_invalidations_total",
				Help: "Cache invalidations by namespace and result",
			},
			[]string{"kind", "result"},
		),
		exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openmusic_exports_total",
				Help: "Export jobs by stage and result",
			},
			[]string{"stage", "result"},
		),
	}
}

func (m *Metrics) CacheRequest(kind, result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) CacheInvalidation(kind, result string) {
	if m == nil {
		return
	}
	m.cacheInvalidations.WithLabelValues(kind, result).Inc()
}

// Export counts export jobs; stage is "publish" or "deliver".
func (m *Metrics) Export(stage, result string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(stage, result).Inc()
}
