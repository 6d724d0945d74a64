package contact

import (
	"math"
	"sort"

	"github.com/dd0wney/campus-contagion/pkg/graph"
)

// MaxProximity is the Chebyshev seat distance at which two students are
// considered in contact: distance 1 covers the full 8-seat neighborhood.
const MaxProximity = 1

// maxDurationHours caps the class-duration factor so marathon sessions
// do not produce unbounded edge weights.
const maxDurationHours = 1.5

// defaultDurationHours is assumed when a session carries no duration.
const defaultDurationHours = 2.0

// AttendanceRow is one student's presence in one class session, already
// validated by the data-loading layer.
type AttendanceRow struct {
	StudentID     string
	SectionID     string
	SeatRow       int
	SeatCol       int
	DurationHours float64
}

// WeightedEdge is an undirected proximity edge between two students.
type WeightedEdge struct {
	U      string
	V      string
	Weight float64
}

// Builder derives contact edges from per-class seating data. It is
// stateless; construct one and share it freely.
type Builder struct{}

// NewBuilder returns a contact graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ClassEdges computes proximity edges for one class session. All
// pairwise Chebyshev distances are evaluated over the upper triangle
// only, so no duplicate or self edges are produced. An edge exists iff
// the Chebyshev distance is at most MaxProximity; its weight is
// 1/(1+euclidean) scaled by the capped session duration. Sessions with
// fewer than two attendees yield no edges.
func (b *Builder) ClassEdges(rows []AttendanceRow) []WeightedEdge {
	if len(rows) < 2 {
		return nil
	}

	duration := defaultDurationHours
	if rows[0].DurationHours > 0 {
		duration = rows[0].DurationHours
	}
	durationFactor := math.Min(duration, maxDurationHours)

	var edges []WeightedEdge
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			dr := float64(rows[i].SeatRow - rows[j].SeatRow)
			dc := float64(rows[i].SeatCol - rows[j].SeatCol)

			chebyshev := math.Max(math.Abs(dr), math.Abs(dc))
			if chebyshev > MaxProximity {
				continue
			}

			euclidean := math.Sqrt(dr*dr + dc*dc)
			edges = append(edges, WeightedEdge{
				U:      rows[i].StudentID,
				V:      rows[j].StudentID,
				Weight: (1.0 / (1.0 + euclidean)) * durationFactor,
			})
		}
	}
	return edges
}

// DailyGraph merges every class session of one day into a weighted
// undirected graph. When the same pair meets in several sessions the
// maximum observed weight wins: the strongest single contact dominates,
// repeated weaker contacts do not accumulate.
func (b *Builder) DailyGraph(rows []AttendanceRow) *graph.Graph {
	g := graph.NewUndirected()
	for _, e := range b.mergedDailyEdges(rows) {
		g.AddEdge(e.U, e.V, e.Weight, "")
	}
	return g
}

// DailySparseNetwork builds one day's sparse contact network directly
// from the merged edge list, skipping full-graph materialisation.
func (b *Builder) DailySparseNetwork(rows []AttendanceRow) *SparseNetwork {
	return BuildSparseNetwork(b.mergedDailyEdges(rows))
}

// mergedDailyEdges collects per-session edges across all sections of a
// day and merges duplicates pair-wise by maximum weight. Sections are
// processed in sorted order and merged edges returned in sorted pair
// order, keeping construction deterministic.
func (b *Builder) mergedDailyEdges(rows []AttendanceRow) []WeightedEdge {
	sessions := make(map[string][]AttendanceRow)
	for _, row := range rows {
		sessions[row.SectionID] = append(sessions[row.SectionID], row)
	}

	sections := make([]string, 0, len(sessions))
	for section := range sessions {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	merged := make(map[[2]string]float64)
	for _, section := range sections {
		for _, e := range b.ClassEdges(sessions[section]) {
			key := pairKey(e.U, e.V)
			if e.Weight > merged[key] {
				merged[key] = e.Weight
			}
		}
	}

	keys := make([][2]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	edges := make([]WeightedEdge, 0, len(keys))
	for _, key := range keys {
		edges = append(edges, WeightedEdge{U: key[0], V: key[1], Weight: merged[key]})
	}
	return edges
}

func pairKey(u, v string) [2]string {
	if u <= v {
		return [2]string{u, v}
	}
	return [2]string{v, u}
}
