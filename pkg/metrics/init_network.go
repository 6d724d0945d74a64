package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.NetworkBuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "contagion_network_builds_total",
			Help: "Total number of sparse contact networks built",
		},
	)

	r.NetworkBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contagion_network_build_duration_seconds",
			Help:    "Contact network construction duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.NetworkNodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contagion_network_nodes_total",
			Help: "Number of students in the contact network for a day",
		},
		[]string{"day"},
	)

	r.NetworkEdgesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contagion_network_edges_total",
			Help: "Number of contact edges in the network for a day",
		},
		[]string{"day"},
	)

	r.NetworkMemoryBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contagion_network_memory_bytes",
			Help: "Bytes held by the sparse adjacency arrays for a day",
		},
		[]string{"day"},
	)

	r.CacheHitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "contagion_network_cache_hits_total",
			Help: "Total number of network cache hits",
		},
	)

	r.CacheMissesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "contagion_network_cache_misses_total",
			Help: "Total number of network cache misses",
		},
	)

	r.CachedNetworksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "contagion_network_cache_entries",
			Help: "Number of distinct day networks currently cached",
		},
	)
}
