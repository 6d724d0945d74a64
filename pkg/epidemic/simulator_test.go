package epidemic

import (
	"testing"

	"github.com/dd0wney/campus-contagion/pkg/contact"
)

// starNetwork wires one hub to five leaves with unit weights.
func starNetwork() *contact.SparseNetwork {
	return contact.BuildSparseNetwork([]contact.WeightedEdge{
		{U: "hub", V: "leaf1", Weight: 1.0},
		{U: "hub", V: "leaf2", Weight: 1.0},
		{U: "hub", V: "leaf3", Weight: 1.0},
		{U: "hub", V: "leaf4", Weight: 1.0},
		{U: "hub", V: "leaf5", Weight: 1.0},
	})
}

// overwhelmingBeta drives exp(-beta*exposure) to zero for any positive
// exposure, making every exposed node transition with certainty.
const overwhelmingBeta = 1000.0

func TestSimulateTick_NoMatrixIsNoOp(t *testing.T) {
	sim := NewSimulator(0.5, 10, WithSeed(42))
	sim.InitializeInfections([]int{0})

	count, indices := sim.SimulateTick()
	if count != 0 || indices != nil {
		t.Errorf("Tick without matrix = (%d, %v), want (0, nil)", count, indices)
	}
}

func TestSetContactMatrix_DimensionMismatch(t *testing.T) {
	net := starNetwork()
	sim := NewSimulator(0.5, net.NodeCount()+1, WithSeed(42))

	if err := sim.SetContactMatrix(net.Matrix()); err == nil {
		t.Error("Expected error for mismatched matrix dimension")
	}
}

func TestSimulateTick_ZeroBeta(t *testing.T) {
	net := starNetwork()
	sim := NewSimulator(0, net.NodeCount(), WithSeed(42))
	if err := sim.SetContactMatrix(net.Matrix()); err != nil {
		t.Fatalf("SetContactMatrix: %v", err)
	}

	hub, _ := net.IndexOf("hub")
	sim.InitializeInfections([]int{hub})

	count, _ := sim.SimulateTick()
	if count != 0 {
		t.Errorf("Zero beta produced %d infections, want 0", count)
	}
	if sim.InfectedCount() != 1 {
		t.Errorf("InfectedCount = %d, want 1", sim.InfectedCount())
	}
}

func TestSimulateTick_StarSpreadsFromHub(t *testing.T) {
	net := starNetwork()
	sim := NewSimulator(overwhelmingBeta, net.NodeCount(), WithSeed(42))
	if err := sim.SetContactMatrix(net.Matrix()); err != nil {
		t.Fatalf("SetContactMatrix: %v", err)
	}

	hub, _ := net.IndexOf("hub")
	sim.InitializeInfections([]int{hub})

	count, indices := sim.SimulateTick()
	if count != 5 {
		t.Fatalf("New infections = %d, want all 5 leaves", count)
	}
	for _, idx := range indices {
		if idx == hub {
			t.Error("Hub reported as newly infected")
		}
		if sim.State(idx) != StateInfected {
			t.Errorf("Index %d not marked infected after tick", idx)
		}
	}
	if sim.InfectedCount() != 6 {
		t.Errorf("InfectedCount = %d, want 6", sim.InfectedCount())
	}
}

func TestSimulateTick_NoSpontaneousInfection(t *testing.T) {
	// Two disconnected pairs: infection in one pair must never reach
	// the other, whatever the transmission rate.
	net := contact.BuildSparseNetwork([]contact.WeightedEdge{
		{U: "a1", V: "a2", Weight: 1.0},
		{U: "b1", V: "b2", Weight: 1.0},
	})
	sim := NewSimulator(overwhelmingBeta, net.NodeCount(), WithSeed(7))
	if err := sim.SetContactMatrix(net.Matrix()); err != nil {
		t.Fatalf("SetContactMatrix: %v", err)
	}

	a1, _ := net.IndexOf("a1")
	sim.InitializeInfections([]int{a1})
	sim.SimulateTick()

	for _, id := range []string{"b1", "b2"} {
		idx, _ := net.IndexOf(id)
		if sim.State(idx) != StateSusceptible {
			t.Errorf("%s infected across disconnected components", id)
		}
	}
	if sim.InfectedCount() != 2 {
		t.Errorf("InfectedCount = %d, want 2", sim.InfectedCount())
	}
}

func TestSimulateTick_Monotone(t *testing.T) {
	net := starNetwork()
	sim := NewSimulator(0.3, net.NodeCount(), WithSeed(42))
	if err := sim.SetContactMatrix(net.Matrix()); err != nil {
		t.Fatalf("SetContactMatrix: %v", err)
	}

	hub, _ := net.IndexOf("hub")
	sim.InitializeInfections([]int{hub})

	prev := sim.InfectedCount()
	for tick := 0; tick < 10; tick++ {
		count, indices := sim.SimulateTick()
		if count != len(indices) {
			t.Fatalf("Count %d disagrees with %d indices", count, len(indices))
		}
		now := sim.InfectedCount()
		if now != prev+count {
			t.Fatalf("Tick %d: infected went %d -> %d with %d new", tick, prev, now, count)
		}
		prev = now
	}
}

func TestInitializeInfections_Resets(t *testing.T) {
	net := starNetwork()
	sim := NewSimulator(overwhelmingBeta, net.NodeCount(), WithSeed(42))
	if err := sim.SetContactMatrix(net.Matrix()); err != nil {
		t.Fatalf("SetContactMatrix: %v", err)
	}

	hub, _ := net.IndexOf("hub")
	sim.InitializeInfections([]int{hub})
	sim.SimulateTick()

	leaf, _ := net.IndexOf("leaf1")
	sim.InitializeInfections([]int{leaf})

	if sim.InfectedCount() != 1 {
		t.Errorf("InfectedCount after reinit = %d, want 1", sim.InfectedCount())
	}
	if sim.State(hub) != StateSusceptible {
		t.Error("Hub still infected after reinitialization")
	}
	if got := sim.InfectedIndices(); len(got) != 1 || got[0] != leaf {
		t.Errorf("InfectedIndices = %v, want [%d]", got, leaf)
	}
}
