package storefront

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the storefront's domain events. All methods are safe on
// a nil receiver so handlers never have to guard for a missing registry.
type Metrics struct {
	sessionsStarted prometheus.Counter
	catalogFetches  *prometheus.CounterVec
	detailCache     *prometheus.CounterVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_sessions_started_total",
			Help: "Sessions created",
		}),
		catalogFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_catalog_fetches_total",
				Help: "Upstream catalog requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		detailCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_detail_cache_total",
				Help: "Detail cache lookups by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.sessionsStarted, m.catalogFetches, m.detailCache)
	return m
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *Metrics) CatalogFetch(endpoint string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.catalogFetches.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) DetailCacheHit(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.detailCache.WithLabelValues(result).Inc()
}
