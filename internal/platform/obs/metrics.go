package obs

import (
	"checkpoint-route-service/internal/domain"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pathSearches  *prometheus.CounterVec
	pathsFound    prometheus.Histogram
	cacheLookups  *prometheus.CounterVec
	sequenceSaves *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pathSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_route_path_searches_total",
			Help: "Checkpoint path searches by outcome (verified or fallback).",
		}, []string{"outcome"}),
		pathsFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "checkpoint_route_paths_found",
			Help:    "Number of verified checkpoint paths returned per search.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_route_path_cache_lookups_total",
			Help: "Path cache lookups by result (hit or miss).",
		}, []string{"result"}),
		sequenceSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_route_sequence_saves_total",
			Help: "Checkpoint sequence saves by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(m.pathSearches, m.pathsFound, m.cacheLookups, m.sequenceSaves)
	return m
}

func (m *Metrics) ObservePathSearch(paths []domain.CheckpointPath) {
	if m == nil {
		return
	}
	if len(paths) == 1 && !paths[0].Verified {
		m.pathSearches.WithLabelValues("fallback").Inc()
		m.pathsFound.Observe(0)
		return
	}
	m.pathSearches.WithLabelValues("verified").Inc()
	m.pathsFound.Observe(float64(len(paths)))
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveSequenceSave(success bool) {
	if m == nil {
		return
	}
	if success {
		m.sequenceSaves.WithLabelValues("success").Inc()
		return
	}
	m.sequenceSaves.WithLabelValues("failure").Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
