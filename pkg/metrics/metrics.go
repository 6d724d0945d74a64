package metrics

import (
	"time"
)

// RecordCacheHit records a network cache hit
func (r *Registry) RecordCacheHit() {
	r.CacheHitsTotal.Inc()
}

// RecordCacheMiss records a network cache miss
func (r *Registry) RecordCacheMiss() {
	r.CacheMissesTotal.Inc()
}

// RecordNetworkBuild records one sparse network construction with its
// resulting size and duration
func (r *Registry) RecordNetworkBuild(day string, nodes, edges, memoryBytes int, duration time.Duration) {
	r.NetworkBuildsTotal.Inc()
	r.NetworkBuildDuration.Observe(duration.Seconds())
	r.NetworkNodesTotal.WithLabelValues(day).Set(float64(nodes))
	r.NetworkEdgesTotal.WithLabelValues(day).Set(float64(edges))
	r.NetworkMemoryBytes.WithLabelValues(day).Set(float64(memoryBytes))
}

// SetCachedNetworks updates the cached-days gauge
func (r *Registry) SetCachedNetworks(n int) {
	r.CachedNetworksTotal.Set(float64(n))
}

// RecordTick records one simulated day-tick
func (r *Registry) RecordTick(newInfections int, duration time.Duration) {
	r.SimulationTicksTotal.Inc()
	r.TickDuration.Observe(duration.Seconds())
	r.NewInfectionsTotal.Add(float64(newInfections))
}

// RecordRunStart records the start of a multi-day simulation run
func (r *Registry) RecordRunStart() {
	r.SimulationRunsTotal.Inc()
}

// SetInfectedCurrent updates the cumulative infected gauge for the
// current run
func (r *Registry) SetInfectedCurrent(n int) {
	r.InfectedCurrent.Set(float64(n))
}
