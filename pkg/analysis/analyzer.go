// Package analysis turns contact graphs and propagation trees into
// epidemiological metrics: critical transmission paths (MST), infection
// cluster structure (WCC) and super-spreader rankings (centrality).
package analysis

import (
	"math"

	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// Result is what every analyzer produces: a typed result struct that
// can flatten itself into serializable metrics and render an optional
// human-readable report.
type Result interface {
	// Metrics extracts the essential figures for a backend or API.
	Metrics() map[string]any
	// Report renders a human-readable summary.
	Report() string
}

// Analyzer is the shared contract implemented by the MST, WCC and
// centrality variants. Analyzers are stateless between calls and
// independently composable.
type Analyzer interface {
	// Name identifies the analyzer inside coordinator result maps.
	Name() string
	// Analyze runs the analysis over one graph. Degenerate graphs
	// (empty, zero-edge, disconnected) yield well-defined zero-valued
	// results, never errors.
	Analyze(g *graph.Graph) (Result, error)
}

// round4 trims metric values to four decimals for stable serialized
// output.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
