package netwk

import (
	"errors"
	"strconv"
	"testing"
)

func TestAddNodeAssignsMonotonicNames(t *testing.T) {
	g := New()

	first := g.AddNode(Pt(0, 0))
	second := g.AddNode(Pt(1, 1))
	g.RemoveNode(second)
	third := g.AddNode(Pt(2, 2))
	g.RemoveNode(first)
	fourth := g.AddNode(Pt(1, 1))

	names := []string{first.Name(), second.Name(), third.Name(), fourth.Name()}
	for i, name := range names {
		want := strconv.Itoa(i)
		if name != want {
			t.Errorf("node %d name = %q, want %q", i, name, want)
		}
	}
	if g.NextID() != 4 {
		t.Errorf("NextID() = %d, want 4", g.NextID())
	}
	// same position as the removed second node, but a new identity
	if fourth.Equal(second) {
		t.Error("re-added node at a removed position must not reuse its identity")
	}
}

func TestAddNodeAllowsDuplicatePositions(t *testing.T) {
	g := New()
	g.AddNode(Pt(3, 3))
	g.AddNode(Pt(3, 3))

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestAddEdgeSymmetry(t *testing.T) {
	g := New()
	a := g.AddNode(Pt(0, 0))
	b := g.AddNode(Pt(50, 50))
	Connect(a, b) // pre-existing edge

	beforeAB, beforeBA := a.ConnectionsTo(b), b.ConnectionsTo(a)
	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	if got := a.ConnectionsTo(b) - beforeAB; got != 1 {
		t.Errorf("a gained %d connections to b, want 1", got)
	}
	if got := b.ConnectionsTo(a) - beforeBA; got != 1 {
		t.Errorf("b gained %d connections to a, want 1", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestAddCurveSymmetry(t *testing.T) {
	g := New()
	a := g.AddNode(Pt(0, 0))
	b := g.AddNode(Pt(50, 0))
	ctl := Pt(25, -30)

	if err := g.AddCurve(a, b, ctl); err != nil {
		t.Fatalf("AddCurve() error = %v", err)
	}

	ca, okA := a.Edges()[0].Control()
	cb, okB := b.Edges()[0].Control()
	if !okA || !okB {
		t.Fatal("both halves of a curve must carry the control point")
	}
	if ca != ctl || cb != ctl {
		t.Errorf("control points = %v, %v; want %v for both", ca, cb, ctl)
	}
}

func TestAddEdgeRejectsSelfLoop(t *testing.T) {
	g := New()
	a := g.AddNode(Pt(0, 0))

	tests := []struct {
		name string
		add  func() error
	}{
		{"edge", func() error { return g.AddEdge(a, a) }},
		{"curve", func() error { return g.AddCurve(a, a, Pt(5, 5)) }},
		{"edge to identity twin", func() error { return g.AddEdge(a, NewNode("0", Pt(0, 0))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, ErrSelfLoop) {
				t.Errorf("error = %v, want ErrSelfLoop", err)
			}
			if a.Degree() != 0 {
				t.Errorf("Degree() = %d, want 0 after rejected self-loop", a.Degree())
			}
		})
	}
}

func TestRemoveNodeCompleteness(t *testing.T) {
	g := New()
	hub := g.AddNode(Pt(50, 50))
	var spokes []*Node
	for i := 0; i < 4; i++ {
		s := g.AddNode(Pt(float32(i*20), 0))
		spokes = append(spokes, s)
		_ = g.AddEdge(hub, s)
	}
	_ = g.AddCurve(spokes[0], hub, Pt(0, 50))
	_ = g.AddEdge(spokes[1], spokes[2])

	g.RemoveNode(hub)

	for _, n := range g.Nodes() {
		if n.Equal(hub) {
			t.Fatal("removed node still in Nodes()")
		}
		if n.ConnectionsTo(hub) != 0 {
			t.Errorf("node %s still has %d connections to removed node", n.Name(), n.ConnectionsTo(hub))
		}
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if spokes[1].ConnectionsTo(spokes[2]) != 1 {
		t.Error("unrelated edge should survive node removal")
	}
}

func TestRemoveNodeAbsentIsNoop(t *testing.T) {
	g := New()
	a := g.AddNode(Pt(0, 0))
	b := g.AddNode(Pt(10, 10))
	_ = g.AddEdge(a, b)

	g.RemoveNode(NewNode("99", Pt(7, 7)))
	g.RemoveNode(nil)

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("graph changed: nodes=%d edges=%d, want 2 and 1", g.NodeCount(), g.EdgeCount())
	}
}

func TestRemoveNodeToleratesDuplicates(t *testing.T) {
	g := New()
	a := g.AddNode(Pt(0, 0))
	g.AddNode(Pt(1, 1))
	g.nodes = append(g.nodes, a)

	g.RemoveNode(a)

	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	a := g.AddNode(Pt(0, 0))
	b := g.AddNode(Pt(10, 0))
	c := g.AddNode(Pt(20, 0))
	_ = g.AddEdge(a, b)
	_ = g.AddCurve(b, a, Pt(5, 9))
	_ = g.AddEdge(a, c)

	removed := g.RemoveEdge(a, b)

	if removed != 2 {
		t.Errorf("RemoveEdge() = %d, want 2", removed)
	}
	if a.ConnectionsTo(b) != 0 || b.ConnectionsTo(a) != 0 {
		t.Errorf("connections left: a->b %d, b->a %d", a.ConnectionsTo(b), b.ConnectionsTo(a))
	}
	if a.ConnectionsTo(c) != 1 || c.ConnectionsTo(a) != 1 {
		t.Error("edge a-c should be untouched")
	}
	if got := g.RemoveEdge(b, c); got != 0 {
		t.Errorf("RemoveEdge() on non-adjacent pair = %d, want 0", got)
	}
}

func TestExactPoint(t *testing.T) {
	g := New()
	g.AddNode(Pt(1, 1))
	want := g.AddNode(Pt(2.5, 7.25))

	got, ok := g.ExactPoint(Pt(2.5, 7.25))
	if !ok || got != want {
		t.Fatalf("ExactPoint() = %v, %v; want node %s", got, ok, want.Name())
	}
	if got.Pos() != Pt(2.5, 7.25) {
		t.Errorf("Pos() = %v, want %v", got.Pos(), Pt(2.5, 7.25))
	}

	again, _ := g.ExactPoint(Pt(2.5, 7.25))
	if !again.Equal(got) {
		t.Error("repeated ExactPoint() should return the same node")
	}

	if _, ok := g.ExactPoint(Pt(2.5, 7.2501)); ok {
		t.Error("ExactPoint() must not apply a tolerance")
	}
}

func TestNearPoint(t *testing.T) {
	g := New()
	n := g.AddNode(Pt(10, 10))

	tests := []struct {
		name  string
		query Point
		found bool
	}{
		{"inside box", Pt(14.9, 14.9), true},
		{"x boundary exclusive", Pt(15, 10), false},
		{"y boundary exclusive", Pt(10, 15), false},
		{"exact", Pt(10, 10), true},
		{"empty area", Pt(200, 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.NearPoint(tt.query)
			if ok != tt.found {
				t.Fatalf("NearPoint(%v) found = %v, want %v", tt.query, ok, tt.found)
			}
			if ok && got != n {
				t.Errorf("NearPoint(%v) = node %s, want %s", tt.query, got.Name(), n.Name())
			}
		})
	}
}

func TestNearPointFirstMatchWins(t *testing.T) {
	g := New()
	first := g.AddNode(Pt(0, 0))
	g.AddNode(Pt(3, 3)) // closer to the query, inserted later

	got, ok := g.NearPoint(Pt(3, 3))
	if !ok || got != first {
		t.Errorf("NearPoint() should return the first node in insertion order")
	}
}

func TestScenarioAddConnectRemove(t *testing.T) {
	g := New()
	g.AddNode(Pt(0, 0))
	g.AddNode(Pt(100, 100))

	a, okA := g.ExactPoint(Pt(0, 0))
	b, okB := g.ExactPoint(Pt(100, 100))
	if !okA || !okB {
		t.Fatal("nodes should resolve by exact point")
	}
	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if a.Degree() != 1 || b.Degree() != 1 {
		t.Fatalf("degrees = %d, %d; want 1, 1", a.Degree(), b.Degree())
	}

	g.RemoveNode(a)

	if b.Degree() != 0 {
		t.Errorf("second node degree = %d, want 0", b.Degree())
	}
	if len(g.Nodes()) != 1 {
		t.Errorf("len(Nodes()) = %d, want 1", len(g.Nodes()))
	}
}

func TestZeroValueGraph(t *testing.T) {
	var g Graph
	n := g.AddNode(Pt(1, 2))
	if n.Name() != "0" {
		t.Errorf("Name() = %q, want %q", n.Name(), "0")
	}
	if _, ok := g.NearPoint(Pt(1, 2)); !ok {
		t.Error("zero-value graph should be usable")
	}
}
