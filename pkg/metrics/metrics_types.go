package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the simulation core
type Registry struct {
	// Network metrics
	NetworkBuildsTotal   prometheus.Counter
	NetworkBuildDuration prometheus.Histogram
	NetworkNodesTotal    *prometheus.GaugeVec
	NetworkEdgesTotal    *prometheus.GaugeVec
	NetworkMemoryBytes   *prometheus.GaugeVec
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	CachedNetworksTotal  prometheus.Gauge

	// Simulation metrics
	SimulationRunsTotal  prometheus.Counter
	SimulationTicksTotal prometheus.Counter
	TickDuration         prometheus.Histogram
	NewInfectionsTotal   prometheus.Counter
	InfectedCurrent      prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initNetworkMetrics()
	r.initSimulationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
