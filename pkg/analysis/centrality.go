package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// Spreader is one node ranked by direct-transmission count.
type Spreader struct {
	ID         string `json:"id"`
	Infections int    `json:"infections"`
}

// CentralityResult ranks propagation-tree nodes by out-degree, a cheap
// proxy for spreading influence.
type CentralityResult struct {
	TopSpreaders []Spreader `json:"top_spreaders"`
	MaxSpread    int        `json:"max_spread"`
}

// CentralityAnalyzer ranks super-spreaders in a propagation tree.
type CentralityAnalyzer struct{}

// NewCentralityAnalyzer creates the analyzer.
func NewCentralityAnalyzer() *CentralityAnalyzer {
	return &CentralityAnalyzer{}
}

// Name implements Analyzer.
func (a *CentralityAnalyzer) Name() string {
	return "centrality"
}

const topSpreaderLimit = 10

// Analyze ranks nodes by out-degree descending, ties broken by id for
// reproducible output. A graph with no edges yields an empty ranking,
// not an error.
func (a *CentralityAnalyzer) Analyze(g *graph.Graph) (Result, error) {
	if g.EdgeCount() == 0 {
		return &CentralityResult{}, nil
	}

	spreaders := make([]Spreader, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		spreaders = append(spreaders, Spreader{ID: id, Infections: g.OutDegree(id)})
	}
	sort.SliceStable(spreaders, func(i, j int) bool {
		return spreaders[i].Infections > spreaders[j].Infections
	})
	if len(spreaders) > topSpreaderLimit {
		spreaders = spreaders[:topSpreaderLimit]
	}

	result := &CentralityResult{TopSpreaders: spreaders}
	if len(spreaders) > 0 {
		result.MaxSpread = spreaders[0].Infections
	}
	return result, nil
}

// Metrics implements Result.
func (r *CentralityResult) Metrics() map[string]any {
	top := r.TopSpreaders
	if len(top) > 5 {
		top = top[:5]
	}
	return map[string]any{
		"max_spread":      r.MaxSpread,
		"top_5_spreaders": top,
	}
}

// Report implements Result.
func (r *CentralityResult) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top super-spreaders by direct transmissions\n")
	for i, s := range r.TopSpreaders {
		if s.Infections == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %2d. %s: %d direct infections\n", i+1, s.ID, s.Infections)
	}
	return b.String()
}
