package graph

import (
	"sort"
)

// Edge is a weighted connection between two nodes. Day is set on
// transmission edges and left empty on contact edges.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
	Day    string  `json:"day,omitempty"`
}

// Graph is an in-memory weighted graph keyed by string node ids.
// It supports both undirected contact graphs and directed propagation
// trees; direction is fixed at construction time.
type Graph struct {
	directed  bool
	nodes     map[string]struct{}
	edges     []Edge
	out       map[string][]int
	in        map[string][]int
	edgeIndex map[[2]string]int
}

// NewUndirected creates an empty undirected graph.
func NewUndirected() *Graph {
	return newGraph(false)
}

// NewDirected creates an empty directed graph.
func NewDirected() *Graph {
	return newGraph(true)
}

func newGraph(directed bool) *Graph {
	return &Graph{
		directed:  directed,
		nodes:     make(map[string]struct{}),
		out:       make(map[string][]int),
		in:        make(map[string][]int),
		edgeIndex: make(map[[2]string]int),
	}
}

// Directed reports whether edges carry direction.
func (g *Graph) Directed() bool {
	return g.directed
}

// AddNode registers a node without any edges. Adding an existing node
// is a no-op.
func (g *Graph) AddNode(id string) {
	g.nodes[id] = struct{}{}
}

// HasNode reports whether the node is present.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) edgeKey(from, to string) [2]string {
	if g.directed || from <= to {
		return [2]string{from, to}
	}
	return [2]string{to, from}
}

// AddEdge inserts an edge, registering both endpoints. If the edge
// already exists its weight and day are replaced; callers that need a
// merge policy (max, sum) apply it before insertion.
func (g *Graph) AddEdge(from, to string, weight float64, day string) {
	g.AddNode(from)
	g.AddNode(to)

	key := g.edgeKey(from, to)
	if idx, ok := g.edgeIndex[key]; ok {
		g.edges[idx].Weight = weight
		g.edges[idx].Day = day
		return
	}

	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight, Day: day})
	g.edgeIndex[key] = idx

	g.out[from] = append(g.out[from], idx)
	g.in[to] = append(g.in[to], idx)
	if !g.directed {
		g.out[to] = append(g.out[to], idx)
		g.in[from] = append(g.in[from], idx)
	}
}

// HasEdge reports whether an edge exists between the two nodes
// (from->to for directed graphs, either orientation for undirected).
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeIndex[g.edgeKey(from, to)]
	return ok
}

// EdgeWeight returns the stored weight for the edge, if present.
func (g *Graph) EdgeWeight(from, to string) (float64, bool) {
	idx, ok := g.edgeIndex[g.edgeKey(from, to)]
	if !ok {
		return 0, false
	}
	return g.edges[idx].Weight, true
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges, counting each undirected edge
// once.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all node ids in sorted order.
func (g *Graph) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// OutEdges returns the edges leaving a node in insertion order. For
// undirected graphs this is every incident edge.
func (g *Graph) OutEdges(id string) []Edge {
	indices := g.out[id]
	edges := make([]Edge, 0, len(indices))
	for _, idx := range indices {
		e := g.edges[idx]
		if !g.directed && e.To == id && e.From != id {
			e.From, e.To = e.To, e.From
		}
		edges = append(edges, e)
	}
	return edges
}

// OutDegree returns the number of edges leaving the node.
func (g *Graph) OutDegree(id string) int {
	return len(g.out[id])
}

// Degree returns the number of incident edges, counting direction-blind
// for directed graphs.
func (g *Graph) Degree(id string) int {
	if !g.directed {
		return len(g.out[id])
	}
	return len(g.out[id]) + len(g.in[id])
}

// Neighbors returns the direction-blind neighbor set of a node in
// sorted order.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]struct{})
	for _, idx := range g.out[id] {
		seen[otherEndpoint(g.edges[idx], id)] = struct{}{}
	}
	for _, idx := range g.in[id] {
		seen[otherEndpoint(g.edges[idx], id)] = struct{}{}
	}
	neighbors := make([]string, 0, len(seen))
	for n := range seen {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

func otherEndpoint(e Edge, id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Subgraph returns the induced subgraph over the given node set,
// preserving direction and edge attributes.
func (g *Graph) Subgraph(ids []string) *Graph {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	sub := newGraph(g.directed)
	for _, id := range ids {
		if g.HasNode(id) {
			sub.AddNode(id)
		}
	}
	for _, e := range g.edges {
		if _, ok := keep[e.From]; !ok {
			continue
		}
		if _, ok := keep[e.To]; !ok {
			continue
		}
		sub.AddEdge(e.From, e.To, e.Weight, e.Day)
	}
	return sub
}
