package epidemic

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/campus-contagion/pkg/contact"
	"github.com/dd0wney/campus-contagion/pkg/logging"
	"github.com/dd0wney/campus-contagion/pkg/metrics"
)

// DaySchedule is one simulated day's attendance, already filtered and
// validated by the data-loading layer.
type DaySchedule struct {
	Label string
	Rows  []contact.AttendanceRow
}

// DayOutcome is one day of the infection trajectory.
type DayOutcome struct {
	Day             string   `json:"day"`
	DayIndex        int      `json:"day_index"`
	NewInfections   int      `json:"new_infections"`
	TotalInfections int      `json:"total_infections"`
	InfectedIDs     []string `json:"infected_ids"`
}

// RunResult is the outcome of one multi-day simulation run.
type RunResult struct {
	RunID         string       `json:"run_id"`
	Beta          float64      `json:"beta"`
	PatientZeros  []string     `json:"patient_zeros"`
	Trajectory    []DayOutcome `json:"trajectory"`
	TotalInfected int          `json:"total_infected"`
	AttackRate    float64      `json:"attack_rate"`
	Transmissions int          `json:"transmissions"`

	// Tree is the propagation record backing the trajectory, consumed
	// by the analysis layer.
	Tree *PropagationTree `json:"-"`
}

// Runner orchestrates a multi-day simulation: per day it pulls the
// network from the cache, creates a fresh simulator sized to that
// network, advances one tick and folds new infections back into the
// global state. One Runner drives one run at a time.
type Runner struct {
	cache   *contact.NetworkCache
	beta    float64
	logger  logging.Logger
	metrics *metrics.Registry
	rng     *rand.Rand
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the structured logger used during runs.
func WithRunnerLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRunnerMetrics sets the metrics registry the runner reports to.
func WithRunnerMetrics(reg *metrics.Registry) RunnerOption {
	return func(r *Runner) {
		r.metrics = reg
	}
}

// WithRunnerSeed makes the whole run deterministic: every per-day
// simulator draws from one seeded source.
func WithRunnerSeed(seed int64) RunnerOption {
	return func(r *Runner) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// NewRunner creates a runner with the given transmission rate.
func NewRunner(cache *contact.NetworkCache, beta float64, opts ...RunnerOption) *Runner {
	r := &Runner{
		cache:   cache,
		beta:    beta,
		logger:  logging.NewNopLogger(),
		metrics: metrics.DefaultRegistry(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PickPatientZeros selects k distinct ids from the population using the
// runner's random source. When k exceeds the population size the whole
// population is returned.
func (r *Runner) PickPatientZeros(population []string, k int) []string {
	if k >= len(population) {
		picked := make([]string, len(population))
		copy(picked, population)
		return picked
	}
	perm := r.rng.Perm(len(population))
	picked := make([]string, k)
	for i := 0; i < k; i++ {
		picked[i] = population[perm[i]]
	}
	return picked
}

// Run simulates one tick per scheduled day, seeding the given patient
// zeros into the population. Days with no attendance or an empty
// network are skipped; epidemiological data legitimately has empty
// days. Infection is monotone: the infected set only grows.
func (r *Runner) Run(days []DaySchedule, population []string, patientZeros []string) *RunResult {
	runID := uuid.New().String()
	runLogger := r.logger.With(logging.RunID(runID), logging.Beta(r.beta))
	r.metrics.RecordRunStart()

	infected := make(map[string]bool, len(population))
	for _, id := range patientZeros {
		infected[id] = true
	}

	tree := NewPropagationTree()
	result := &RunResult{
		RunID:        runID,
		Beta:         r.beta,
		PatientZeros: append([]string(nil), patientZeros...),
		Tree:         tree,
	}

	runLogger.Info("simulation run started",
		logging.Count(len(patientZeros)),
		logging.Int("population", len(population)),
	)

	dayIndex := 0
	for _, day := range days {
		if len(day.Rows) == 0 {
			continue
		}

		network := r.cache.GetOrBuild(day.Label, day.Rows)
		if network.NodeCount() == 0 {
			continue
		}
		dayIndex++

		start := time.Now()
		sim := NewSimulator(r.beta, network.NodeCount(), WithRand(r.rng))
		if err := sim.SetContactMatrix(network.Matrix()); err != nil {
			// Cannot happen: the simulator is sized from this network.
			runLogger.Error("contact matrix rejected", logging.Day(day.Label), logging.Error(err))
			continue
		}

		infectedIDs := make([]string, 0, len(infected))
		for id := range infected {
			infectedIDs = append(infectedIDs, id)
		}
		sim.InitializeInfections(network.MapIDsToIndices(infectedIDs))

		// Source set for attribution is fixed before the tick: only
		// nodes already infected going into the day can transmit.
		sources := sim.InfectedIndices()

		newCount, newIndices := sim.SimulateTick()
		elapsed := time.Since(start)
		r.metrics.RecordTick(newCount, elapsed)

		if newCount > 0 {
			for _, id := range network.MapIndicesToIDs(newIndices) {
				infected[id] = true
			}
			tree.RecordTransmissions(sources, newIndices, network.Matrix(), day.Label, network.IDOf)
		}

		currentIDs := make([]string, 0, len(infected))
		for id := range infected {
			currentIDs = append(currentIDs, id)
		}
		sort.Strings(currentIDs)

		result.Trajectory = append(result.Trajectory, DayOutcome{
			Day:             day.Label,
			DayIndex:        dayIndex,
			NewInfections:   newCount,
			TotalInfections: len(infected),
			InfectedIDs:     currentIDs,
		})
		r.metrics.SetInfectedCurrent(len(infected))

		runLogger.Info("day simulated",
			logging.Day(day.Label),
			logging.Infections(newCount),
			logging.Int("total_infected", len(infected)),
			logging.NodeCount(network.NodeCount()),
			logging.Latency(elapsed),
		)
	}

	result.TotalInfected = len(infected)
	result.Transmissions = tree.Count()
	if len(population) > 0 {
		result.AttackRate = float64(len(infected)) / float64(len(population))
	}

	runLogger.Info("simulation run finished",
		logging.Int("total_infected", result.TotalInfected),
		logging.Int("transmissions", result.Transmissions),
		logging.Float64("attack_rate", result.AttackRate),
	)

	return result
}
