package analysis

import (
	"sort"

	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// Critical node roles inside the spanning tree.
const (
	// RoleBridge marks high-betweenness nodes whose removal would
	// disconnect large parts of the tree.
	RoleBridge = "bridge"
	// RoleVulnerable marks leaf nodes reachable through a single
	// contact path.
	RoleVulnerable = "vulnerable"
)

// CriticalNode is a tree node classified by its epidemiological role.
type CriticalNode struct {
	ID             string  `json:"id"`
	Role           string  `json:"role"`
	Degree         int     `json:"degree"`
	Betweenness    float64 `json:"betweenness"`
	Interpretation string  `json:"interpretation"`
}

const criticalNodeLimit = 10

// classifyCriticalNodes combines high-betweenness bridge nodes and
// low-degree vulnerable nodes of the spanning tree into one ranked
// list: bridges first, ordered by betweenness descending.
func classifyCriticalNodes(tree *graph.Graph) []CriticalNode {
	if tree.NodeCount() == 0 {
		return nil
	}

	betweenness := betweennessCentrality(tree)

	type ranked struct {
		id    string
		score float64
	}
	bridges := make([]ranked, 0, len(betweenness))
	for id, score := range betweenness {
		if score > 0 {
			bridges = append(bridges, ranked{id: id, score: score})
		}
	}
	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].score != bridges[j].score {
			return bridges[i].score > bridges[j].score
		}
		return bridges[i].id < bridges[j].id
	})
	if len(bridges) > criticalNodeLimit {
		bridges = bridges[:criticalNodeLimit]
	}

	var nodes []CriticalNode
	for _, bridge := range bridges {
		nodes = append(nodes, CriticalNode{
			ID:             bridge.id,
			Role:           RoleBridge,
			Degree:         tree.Degree(bridge.id),
			Betweenness:    round4(bridge.score),
			Interpretation: interpretBridge(bridge.score),
		})
	}

	var leaves []string
	for _, id := range tree.Nodes() {
		if tree.Degree(id) <= 1 {
			leaves = append(leaves, id)
		}
	}
	if len(leaves) > criticalNodeLimit {
		leaves = leaves[:criticalNodeLimit]
	}
	for _, id := range leaves {
		nodes = append(nodes, CriticalNode{
			ID:             id,
			Role:           RoleVulnerable,
			Degree:         tree.Degree(id),
			Betweenness:    round4(betweenness[id]),
			Interpretation: "peripheral contact with a single path of exposure",
		})
	}

	return nodes
}

func interpretBridge(score float64) string {
	switch {
	case score > 0.1:
		return "critical super-connector"
	case score > 0.05:
		return "important connector"
	default:
		return "connector"
	}
}

// betweennessCentrality runs Brandes' algorithm over the undirected
// view of the graph and normalises by 2/((n-1)(n-2)), the standard
// undirected factor.
func betweennessCentrality(g *graph.Graph) map[string]float64 {
	nodes := g.Nodes()
	betweenness := make(map[string]float64, len(nodes))
	for _, id := range nodes {
		betweenness[id] = 0
	}

	for _, source := range nodes {
		stack := make([]string, 0, len(nodes))
		predecessors := make(map[string][]string, len(nodes))
		sigma := make(map[string]float64, len(nodes))
		distance := make(map[string]int, len(nodes))
		for _, id := range nodes {
			sigma[id] = 0
			distance[id] = -1
		}
		sigma[source] = 1
		distance[source] = 0

		queue := []string{source}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)

			for _, w := range g.Neighbors(v) {
				if distance[w] < 0 {
					queue = append(queue, w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of dependencies.
		delta := make(map[string]float64, len(nodes))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	n := len(nodes)
	if n > 2 {
		// Each undirected path is counted from both endpoints.
		norm := 1.0 / (float64(n-1) * float64(n-2))
		for id := range betweenness {
			betweenness[id] *= norm
		}
	}
	return betweenness
}
