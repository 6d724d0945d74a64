package graph

// Statistics summarises the shape of one day's contact graph.
type Statistics struct {
	Nodes            int     `json:"nodes"`
	Edges            int     `json:"edges"`
	Density          float64 `json:"density"`
	Components       int     `json:"components"`
	LargestComponent int     `json:"largest_component"`
}

// ComputeStatistics returns node/edge counts, density and component
// structure. An empty graph yields the zero value rather than an error;
// sparse days are legitimate input.
func ComputeStatistics(g *Graph) Statistics {
	if g.NodeCount() == 0 {
		return Statistics{}
	}

	components := ConnectedComponents(g)
	largest := 0
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
	}

	return Statistics{
		Nodes:            g.NodeCount(),
		Edges:            g.EdgeCount(),
		Density:          Density(g),
		Components:       len(components),
		LargestComponent: largest,
	}
}

// Density returns the ratio of present edges to possible edges. For
// directed graphs each ordered pair counts once; for undirected graphs
// each unordered pair counts once.
func Density(g *Graph) float64 {
	n := g.NodeCount()
	if n <= 1 {
		return 0
	}
	possible := float64(n) * float64(n-1)
	if !g.directed {
		possible /= 2
	}
	return float64(g.EdgeCount()) / possible
}

// ConnectedComponents partitions the nodes into direction-blind
// connected components using BFS. Components are discovered in sorted
// node-id order, and nodes within a component appear in BFS order, so
// the result is deterministic for a given graph.
func ConnectedComponents(g *Graph) [][]string {
	visited := make(map[string]bool, g.NodeCount())
	var components [][]string

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}

		component := []string{}
		queue := []string{start}
		visited[start] = true

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			component = append(component, node)

			for _, neighbor := range g.Neighbors(node) {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}

		components = append(components, component)
	}

	return components
}
