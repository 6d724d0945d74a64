package contact

import (
	"math"
	"testing"
)

func row(student, section string, r, c int, hours float64) AttendanceRow {
	return AttendanceRow{
		StudentID:     student,
		SectionID:     section,
		SeatRow:       r,
		SeatCol:       c,
		DurationHours: hours,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassEdges_Triangle(t *testing.T) {
	b := NewBuilder()

	// Three students in adjacent seats form a triangle of contacts.
	rows := []AttendanceRow{
		row("s1", "CS101", 0, 0, 1.0),
		row("s2", "CS101", 0, 1, 1.0),
		row("s3", "CS101", 1, 1, 1.0),
	}

	edges := b.ClassEdges(rows)
	if len(edges) != 3 {
		t.Fatalf("Expected 3 edges, got %d", len(edges))
	}

	weights := make(map[[2]string]float64)
	for _, e := range edges {
		weights[pairKey(e.U, e.V)] = e.Weight
	}

	// Orthogonal neighbors: 1/(1+1) * 1h = 0.5
	if w := weights[pairKey("s1", "s2")]; !almostEqual(w, 0.5) {
		t.Errorf("s1-s2 weight = %v, want 0.5", w)
	}
	if w := weights[pairKey("s2", "s3")]; !almostEqual(w, 0.5) {
		t.Errorf("s2-s3 weight = %v, want 0.5", w)
	}
	// Diagonal neighbors: 1/(1+sqrt2) * 1h
	want := 1.0 / (1.0 + math.Sqrt2)
	if w := weights[pairKey("s1", "s3")]; !almostEqual(w, want) {
		t.Errorf("s1-s3 weight = %v, want %v", w, want)
	}
}

func TestClassEdges_ProximityCutoff(t *testing.T) {
	b := NewBuilder()

	rows := []AttendanceRow{
		row("near1", "CS101", 0, 0, 1.0),
		row("near2", "CS101", 1, 1, 1.0),
		row("far", "CS101", 5, 5, 1.0),
	}

	edges := b.ClassEdges(rows)
	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge within proximity, got %d", len(edges))
	}
	if edges[0].U == "far" || edges[0].V == "far" {
		t.Error("Distant student must not appear in any edge")
	}
}

func TestClassEdges_DurationCap(t *testing.T) {
	b := NewBuilder()

	// A 3-hour session is capped at 1.5 hours.
	rows := []AttendanceRow{
		row("s1", "CS101", 0, 0, 3.0),
		row("s2", "CS101", 0, 1, 3.0),
	}

	edges := b.ClassEdges(rows)
	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(edges))
	}
	if !almostEqual(edges[0].Weight, 0.75) {
		t.Errorf("Capped weight = %v, want 0.75", edges[0].Weight)
	}
}

func TestClassEdges_DefaultDuration(t *testing.T) {
	b := NewBuilder()

	// Zero duration falls back to the 2-hour default, still capped.
	rows := []AttendanceRow{
		row("s1", "CS101", 0, 0, 0),
		row("s2", "CS101", 0, 1, 0),
	}

	edges := b.ClassEdges(rows)
	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(edges))
	}
	if !almostEqual(edges[0].Weight, 0.75) {
		t.Errorf("Default-duration weight = %v, want 0.75", edges[0].Weight)
	}
}

func TestClassEdges_DegenerateSessions(t *testing.T) {
	b := NewBuilder()

	if edges := b.ClassEdges(nil); edges != nil {
		t.Errorf("Empty session produced edges: %v", edges)
	}
	solo := []AttendanceRow{row("s1", "CS101", 0, 0, 1.0)}
	if edges := b.ClassEdges(solo); edges != nil {
		t.Errorf("Single-attendee session produced edges: %v", edges)
	}
}

func TestDailyGraph_MaxMergeAcrossSections(t *testing.T) {
	b := NewBuilder()

	// Same pair meets twice: adjacent in the morning (0.5), diagonal in
	// the afternoon (~0.41). The stronger contact wins.
	rows := []AttendanceRow{
		row("s1", "CS101", 0, 0, 1.0),
		row("s2", "CS101", 0, 1, 1.0),
		row("s1", "MATH200", 3, 3, 1.0),
		row("s2", "MATH200", 4, 4, 1.0),
	}

	g := b.DailyGraph(rows)
	if g.EdgeCount() != 1 {
		t.Fatalf("Expected 1 merged edge, got %d", g.EdgeCount())
	}
	if w, _ := g.EdgeWeight("s1", "s2"); !almostEqual(w, 0.5) {
		t.Errorf("Merged weight = %v, want max 0.5", w)
	}
}

func TestDailyGraph_IsolatedSections(t *testing.T) {
	b := NewBuilder()

	rows := []AttendanceRow{
		row("a1", "CS101", 0, 0, 1.0),
		row("a2", "CS101", 0, 1, 1.0),
		row("b1", "BIO300", 0, 0, 1.0),
		row("b2", "BIO300", 0, 1, 1.0),
	}

	g := b.DailyGraph(rows)
	if g.NodeCount() != 4 || g.EdgeCount() != 2 {
		t.Errorf("Nodes/Edges = %d/%d, want 4/2", g.NodeCount(), g.EdgeCount())
	}
	if g.HasEdge("a1", "b1") {
		t.Error("Students in different sections must not be connected")
	}
}

func TestDailySparseNetwork_MatchesGraph(t *testing.T) {
	b := NewBuilder()

	rows := []AttendanceRow{
		row("s1", "CS101", 0, 0, 1.0),
		row("s2", "CS101", 0, 1, 1.0),
		row("s3", "CS101", 1, 1, 1.0),
	}

	g := b.DailyGraph(rows)
	net := b.DailySparseNetwork(rows)

	if net.NodeCount() != g.NodeCount() {
		t.Errorf("NodeCount = %d, want %d", net.NodeCount(), g.NodeCount())
	}
	if net.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", net.EdgeCount(), g.EdgeCount())
	}

	i, _ := net.IndexOf("s1")
	j, _ := net.IndexOf("s2")
	want, _ := g.EdgeWeight("s1", "s2")
	if got := net.Matrix().At(i, j); !almostEqual(got, want) {
		t.Errorf("Matrix weight = %v, want %v", got, want)
	}
}
