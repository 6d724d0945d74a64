package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "contagion_simulation_runs_total",
			Help: "Total number of multi-day simulation runs started",
		},
	)

	r.SimulationTicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "contagion_simulation_ticks_total",
			Help: "Total number of day-ticks simulated",
		},
	)

	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contagion_simulation_tick_duration_seconds",
			Help:    "Single day-tick duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	r.NewInfectionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "contagion_new_infections_total",
			Help: "Total number of new infections across all ticks",
		},
	)

	r.InfectedCurrent = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "contagion_infected_current",
			Help: "Cumulative infected count for the most recent run",
		},
	)
}
