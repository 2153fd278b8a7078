package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for catalog resolution and its cache.
type Metrics struct {
	ResolveTotal *prometheus.CounterVec
	CacheTotal   *prometheus.CounterVec
}

// New creates a new Metrics instance with all catalog metrics registered.
func New() *Metrics {
	return &Metrics{
		ResolveTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "udyam_catalog_resolve_total",
			Help: "Catalog resolutions by result",
		}, []string{"result"}), // result: "found", "not_found", "error"

		CacheTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "udyam_catalog_cache_total",
			Help: "Catalog cache lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "miss", "bypass"
	}
}

// RecordResolve records a resolution outcome.
func (m *Metrics) RecordResolve(result string) {
	if m != nil {
		m.ResolveTotal.WithLabelValues(result).Inc()
	}
}

// RecordCache records a cache lookup outcome.
func (m *Metrics) RecordCache(outcome string) {
	if m != nil {
		m.CacheTotal.WithLabelValues(outcome).Inc()
	}
}
