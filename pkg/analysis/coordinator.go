package analysis

import (
	"fmt"
	"sort"

	"github.com/dd0wney/campus-contagion/pkg/graph"
	"github.com/dd0wney/campus-contagion/pkg/logging"
)

// Coordinator runs a named set of analyzers over one graph and
// aggregates their results keyed by analyzer name.
type Coordinator struct {
	analyzers map[string]Analyzer
	logger    logging.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithCoordinatorLogger sets the structured logger used during runs.
func WithCoordinatorLogger(logger logging.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator builds a coordinator over an explicit analyzer set.
func NewCoordinator(analyzers []Analyzer, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		analyzers: make(map[string]Analyzer, len(analyzers)),
		logger:    logging.NewNopLogger(),
	}
	for _, a := range analyzers {
		c.analyzers[a.Name()] = a
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewPropagationCoordinator wires the analyzers that consume the
// propagation tree: WCC and centrality. students may be nil.
func NewPropagationCoordinator(students []Student, opts ...CoordinatorOption) *Coordinator {
	return NewCoordinator([]Analyzer{
		NewWCCAnalyzer(students),
		NewCentralityAnalyzer(),
	}, opts...)
}

// NewDailyGraphCoordinator wires the analyzers that consume the daily
// contact graph: MST.
func NewDailyGraphCoordinator(mode WeightMode, opts ...CoordinatorOption) *Coordinator {
	return NewCoordinator([]Analyzer{
		NewMSTAnalyzer(mode),
	}, opts...)
}

// Names returns the registered analyzer names in sorted order.
func (c *Coordinator) Names() []string {
	names := make([]string, 0, len(c.analyzers))
	for name := range c.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunAll executes every registered analyzer against the graph. The
// first analyzer failure aborts the run.
func (c *Coordinator) RunAll(g *graph.Graph) (map[string]Result, error) {
	results := make(map[string]Result, len(c.analyzers))
	for _, name := range c.Names() {
		timer := logging.StartTimer(c.logger, "analysis finished", logging.Component(name))
		result, err := c.analyzers[name].Analyze(g)
		if err != nil {
			timer.EndError(err)
			return nil, fmt.Errorf("analyzer %s: %w", name, err)
		}
		timer.End()
		results[name] = result
	}
	return results, nil
}

// AllMetrics flattens every result into serializable metric maps keyed
// by analyzer name.
func (c *Coordinator) AllMetrics(results map[string]Result) map[string]map[string]any {
	metrics := make(map[string]map[string]any, len(results))
	for name, result := range results {
		metrics[name] = result.Metrics()
	}
	return metrics
}
