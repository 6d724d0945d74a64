package epidemic

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dd0wney/campus-contagion/pkg/contact"
)

// Infection states. The model is SI: once infected a node stays
// infected, there is no recovery transition.
const (
	StateSusceptible int8 = 0
	StateInfected    int8 = 1
)

// Simulator advances infection state one day-tick at a time over a
// sparse contact matrix. One simulator serves one day's network; a new
// one is created per day because network size varies daily.
type Simulator struct {
	beta        float64
	numNodes    int
	states      []int8
	susceptible []bool
	infectedVec []float64
	exposure    []float64
	randBuf     []float64
	matrix      *contact.CSRMatrix
	rng         *rand.Rand
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithSeed makes the simulator's random draws deterministic.
func WithSeed(seed int64) SimulatorOption {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a shared random source, letting one seeded source
// drive every per-day simulator in a run.
func WithRand(rng *rand.Rand) SimulatorOption {
	return func(s *Simulator) {
		s.rng = rng
	}
}

// NewSimulator creates a simulator for a network of numNodes students.
// Without WithSeed or WithRand the random source is time-seeded, so
// repeated production runs differ.
func NewSimulator(beta float64, numNodes int, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		beta:        beta,
		numNodes:    numNodes,
		states:      make([]int8, numNodes),
		susceptible: make([]bool, numNodes),
		infectedVec: make([]float64, numNodes),
		exposure:    make([]float64, numNodes),
		randBuf:     make([]float64, numNodes),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i := range s.susceptible {
		s.susceptible[i] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetContactMatrix binds the day's adjacency. The matrix dimension must
// match the simulator's node count.
func (s *Simulator) SetContactMatrix(m *contact.CSRMatrix) error {
	if m.Dim() != s.numNodes {
		return fmt.Errorf("contact matrix dimension %d does not match simulator node count %d", m.Dim(), s.numNodes)
	}
	s.matrix = m
	return nil
}

// InitializeInfections resets every node to susceptible and then marks
// the given indices infected. The susceptible mask is rebuilt to match.
func (s *Simulator) InitializeInfections(indices []int) {
	for i := range s.states {
		s.states[i] = StateSusceptible
		s.susceptible[i] = true
	}
	for _, idx := range indices {
		s.states[idx] = StateInfected
		s.susceptible[idx] = false
	}
}

// SimulateTick advances the infection state by one day. Exposure is the
// sparse matrix-vector product of the adjacency with the current
// infected vector; each node then transitions with probability
// P = 1 - exp(-beta * exposure), drawn once per node. Zero exposure
// gives P = 0, so no node is ever infected spontaneously. With no
// contact matrix bound the tick is a no-op for an empty day.
//
// Returns the number of new infections and their indices.
func (s *Simulator) SimulateTick() (int, []int) {
	if s.matrix == nil {
		return 0, nil
	}

	for i, state := range s.states {
		if state == StateInfected {
			s.infectedVec[i] = 1
		} else {
			s.infectedVec[i] = 0
		}
	}

	s.matrix.MulVec(s.infectedVec, s.exposure)

	for i := range s.randBuf {
		s.randBuf[i] = s.rng.Float64()
	}

	var newIndices []int
	for i := 0; i < s.numNodes; i++ {
		if !s.susceptible[i] {
			continue
		}
		p := 1.0 - math.Exp(-s.beta*s.exposure[i])
		if s.randBuf[i] < p {
			newIndices = append(newIndices, i)
		}
	}

	// Mask updated incrementally, never recomputed wholesale.
	for _, idx := range newIndices {
		s.states[idx] = StateInfected
		s.susceptible[idx] = false
	}

	return len(newIndices), newIndices
}

// InfectedCount returns the number of currently infected nodes.
func (s *Simulator) InfectedCount() int {
	count := 0
	for _, state := range s.states {
		if state == StateInfected {
			count++
		}
	}
	return count
}

// InfectedIndices returns the indices of all currently infected nodes
// in ascending order.
func (s *Simulator) InfectedIndices() []int {
	var indices []int
	for i, state := range s.states {
		if state == StateInfected {
			indices = append(indices, i)
		}
	}
	return indices
}

// State returns the infection state of one node index.
func (s *Simulator) State(idx int) int8 {
	return s.states[idx]
}
