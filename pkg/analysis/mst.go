package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// WeightMode selects how contact weights are transformed before tree
// construction. The transformation is solely a construction device:
// reported tree edges always carry the original contact weight.
type WeightMode string

const (
	// WeightInverse turns strong contacts into short distances, so the
	// tree prefers them. This is the epidemiologically useful default.
	WeightInverse WeightMode = "inverse"
	// WeightNegative maximises total contact weight instead.
	WeightNegative WeightMode = "negative"
	// WeightDirect uses contact weights unchanged.
	WeightDirect WeightMode = "direct"
)

// inverseEpsilon guards the inverse transform against zero weights.
const inverseEpsilon = 1e-10

// CriticalEdge is one surviving tree edge, interpreted as a strongest
// contact and a likely transmission path.
type CriticalEdge struct {
	A              string  `json:"a"`
	B              string  `json:"b"`
	Weight         float64 `json:"weight"`
	Interpretation string  `json:"interpretation"`
}

// MSTResult is the outcome of a minimum-spanning-tree analysis of one
// day's contact graph.
type MSTResult struct {
	Tree           *graph.Graph   `json:"-"`
	Nodes          int            `json:"nodes"`
	Edges          int            `json:"edges"`
	OriginalEdges  int            `json:"original_edges"`
	Components     int            `json:"components"`
	TotalWeight    float64        `json:"total_weight"`
	AvgWeight      float64        `json:"avg_weight"`
	ReductionRatio float64        `json:"reduction_ratio"`
	CriticalEdges  []CriticalEdge `json:"critical_edges"`
	CriticalNodes  []CriticalNode `json:"critical_nodes"`
}

// MSTAnalyzer extracts the minimum spanning forest of a daily contact
// graph using Kruskal's algorithm. For a disconnected graph each
// component gets an independent tree and the result is their union,
// with singleton components kept as isolated nodes.
type MSTAnalyzer struct {
	mode WeightMode
}

// NewMSTAnalyzer creates an analyzer with the given weight mode.
func NewMSTAnalyzer(mode WeightMode) *MSTAnalyzer {
	return &MSTAnalyzer{mode: mode}
}

// Name implements Analyzer.
func (a *MSTAnalyzer) Name() string {
	return "mst"
}

// Mode returns the configured weight transformation.
func (a *MSTAnalyzer) Mode() WeightMode {
	return a.mode
}

func (a *MSTAnalyzer) transform(weight float64) float64 {
	switch a.mode {
	case WeightInverse:
		return 1.0 / (weight + inverseEpsilon)
	case WeightNegative:
		return -weight
	default:
		return weight
	}
}

// Analyze builds the minimum spanning forest. An empty graph yields a
// zero-valued result, not an error.
func (a *MSTAnalyzer) Analyze(g *graph.Graph) (Result, error) {
	if g.NodeCount() == 0 {
		return &MSTResult{Tree: graph.NewUndirected()}, nil
	}

	tree := a.spanningForest(g)
	components := len(graph.ConnectedComponents(g))

	totalWeight := 0.0
	for _, e := range tree.Edges() {
		totalWeight += e.Weight
	}
	avgWeight := 0.0
	if tree.EdgeCount() > 0 {
		avgWeight = totalWeight / float64(tree.EdgeCount())
	}
	reduction := 0.0
	if g.EdgeCount() > 0 {
		reduction = 1.0 - float64(tree.EdgeCount())/float64(g.EdgeCount())
	}

	result := &MSTResult{
		Tree:           tree,
		Nodes:          tree.NodeCount(),
		Edges:          tree.EdgeCount(),
		OriginalEdges:  g.EdgeCount(),
		Components:     components,
		TotalWeight:    totalWeight,
		AvgWeight:      avgWeight,
		ReductionRatio: reduction,
		CriticalEdges:  criticalEdges(tree),
		CriticalNodes:  classifyCriticalNodes(tree),
	}
	return result, nil
}

// spanningForest runs Kruskal with a union-find over every component
// at once: edges joining distinct sets form per-component trees, and
// the loop naturally yields their union when the graph is disconnected.
// Edges are stable-sorted on the transformed weight, so ties keep the
// graph's edge insertion order and output is reproducible. The tree
// stores original weights; the transform exists only in the sort key.
func (a *MSTAnalyzer) spanningForest(g *graph.Graph) *graph.Graph {
	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return a.transform(edges[i].Weight) < a.transform(edges[j].Weight)
	})

	nodes := g.Nodes()
	parent := make(map[string]string, len(nodes))
	rank := make(map[string]int, len(nodes))
	for _, id := range nodes {
		parent[id] = id
	}

	var find func(string) string
	find = func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}

	union := func(u, v string) bool {
		rootU, rootV := find(u), find(v)
		if rootU == rootV {
			return false
		}
		if rank[rootU] < rank[rootV] {
			rootU, rootV = rootV, rootU
		}
		parent[rootV] = rootU
		if rank[rootU] == rank[rootV] {
			rank[rootU]++
		}
		return true
	}

	tree := graph.NewUndirected()
	for _, id := range nodes {
		tree.AddNode(id)
	}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		if union(e.From, e.To) {
			tree.AddEdge(e.From, e.To, e.Weight, "")
		}
	}
	return tree
}

// criticalEdges lists every tree edge descending by weight: the
// strongest surviving contacts.
func criticalEdges(tree *graph.Graph) []CriticalEdge {
	edges := tree.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight > edges[j].Weight
	})

	critical := make([]CriticalEdge, 0, len(edges))
	for _, e := range edges {
		critical = append(critical, CriticalEdge{
			A:              e.From,
			B:              e.To,
			Weight:         e.Weight,
			Interpretation: interpretEdgeWeight(e.Weight),
		})
	}
	return critical
}

func interpretEdgeWeight(weight float64) string {
	switch {
	case weight > 5:
		return "very frequent contact"
	case weight > 2:
		return "frequent contact"
	default:
		return "moderate contact"
	}
}

// Metrics implements Result.
func (r *MSTResult) Metrics() map[string]any {
	topEdges := r.CriticalEdges
	if len(topEdges) > 5 {
		topEdges = topEdges[:5]
	}
	top := make([]map[string]any, 0, len(topEdges))
	for _, e := range topEdges {
		top = append(top, map[string]any{
			"a":      e.A,
			"b":      e.B,
			"weight": round4(e.Weight),
		})
	}

	return map[string]any{
		"nodes":                r.Nodes,
		"edges":                r.Edges,
		"components":           r.Components,
		"total_weight":         round4(r.TotalWeight),
		"avg_weight":           round4(r.AvgWeight),
		"reduction_ratio":      round4(r.ReductionRatio),
		"critical_edges_count": len(r.CriticalEdges),
		"top_critical_edges":   top,
	}
}

// Report implements Result.
func (r *MSTResult) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Minimum spanning tree analysis\n")
	fmt.Fprintf(&b, "  Nodes: %d\n", r.Nodes)
	fmt.Fprintf(&b, "  Edges: %d (from %d, reduction %.1f%%)\n", r.Edges, r.OriginalEdges, r.ReductionRatio*100)
	fmt.Fprintf(&b, "  Components: %d\n", r.Components)
	fmt.Fprintf(&b, "  Total weight: %.4f (avg %.4f)\n", r.TotalWeight, r.AvgWeight)

	limit := len(r.CriticalEdges)
	if limit > 5 {
		limit = 5
	}
	if limit > 0 {
		fmt.Fprintf(&b, "  Top critical edges:\n")
		for i := 0; i < limit; i++ {
			e := r.CriticalEdges[i]
			fmt.Fprintf(&b, "    %d. %s - %s: %.4f (%s)\n", i+1, e.A, e.B, e.Weight, e.Interpretation)
		}
	}
	return b.String()
}
