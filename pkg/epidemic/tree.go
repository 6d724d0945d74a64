package epidemic

import (
	"github.com/dd0wney/campus-contagion/pkg/contact"
	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// Transmission is one recorded infection event.
type Transmission struct {
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Weight   float64 `json:"weight"`
	Day      string  `json:"day"`
}

// PropagationTree accumulates who-infected-whom edges across an entire
// multi-day run. It is append-only and must not be shared between
// concurrent runs; create one per run.
type PropagationTree struct {
	sources []string
	targets []string
	weights []float64
	days    []string
}

// NewPropagationTree returns an empty recorder.
func NewPropagationTree() *PropagationTree {
	return &PropagationTree{}
}

// RecordTransmissions attributes one source to every newly infected
// target. For each target the adjacency row is scanned in storage
// order and the first neighbor found in the source set wins. Several
// infected neighbors could plausibly have transmitted; exactly one
// causal edge is recorded per target, chosen by row order rather than
// weight, which keeps downstream component and centrality results
// stable across reruns of the same draw sequence.
func (t *PropagationTree) RecordTransmissions(sourceIndices, targetIndices []int, m *contact.CSRMatrix, dayLabel string, idOf func(int) string) {
	sourceSet := make(map[int]struct{}, len(sourceIndices))
	for _, idx := range sourceIndices {
		sourceSet[idx] = struct{}{}
	}

	for _, target := range targetIndices {
		cols, vals := m.Row(target)
		for i, neighbor := range cols {
			if _, ok := sourceSet[neighbor]; !ok {
				continue
			}
			t.sources = append(t.sources, idOf(neighbor))
			t.targets = append(t.targets, idOf(target))
			t.weights = append(t.weights, vals[i])
			t.days = append(t.days, dayLabel)
			break
		}
	}
}

// Count returns the number of recorded transmissions.
func (t *PropagationTree) Count() int {
	return len(t.sources)
}

// Transmissions returns the recorded events in order.
func (t *PropagationTree) Transmissions() []Transmission {
	events := make([]Transmission, len(t.sources))
	for i := range t.sources {
		events[i] = Transmission{
			SourceID: t.sources[i],
			TargetID: t.targets[i],
			Weight:   t.weights[i],
			Day:      t.days[i],
		}
	}
	return events
}

// ToGraph materialises the infection tree as a directed graph with one
// edge per recorded transmission, carrying contact weight and day.
func (t *PropagationTree) ToGraph() *graph.Graph {
	g := graph.NewDirected()
	for i := range t.sources {
		g.AddEdge(t.sources[i], t.targets[i], t.weights[i], t.days[i])
	}
	return g
}
