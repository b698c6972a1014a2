package netwk

import (
	"errors"
	"slices"
	"strconv"
)

// ErrSelfLoop is returned by [Graph.AddEdge] and [Graph.AddCurve] when both
// endpoints are the same node. The graph is left unchanged.
var ErrSelfLoop = errors.New("edge endpoints must be distinct nodes")

// Graph is the aggregate root of the model: it owns the node list, mints node
// names, and is the entry point for structural mutation and spatial lookup.
//
// The zero value is an empty graph ready for use. Graph is not safe for
// concurrent use.
type Graph struct {
	nodes  []*Node
	nextID int
}

// New creates an empty graph.
func New() *Graph { return &Graph{} }

// Nodes returns the graph's nodes in insertion order. The returned slice is
// a view of the graph's storage and must not be modified; it is invalidated
// by the next AddNode or RemoveNode.
func (g *Graph) Nodes() []*Node { return g.nodes }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of symmetric edges, i.e. half the number of
// connections stored across all nodes.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.edges)
	}
	return total / 2
}

// NextID returns the counter value the next AddNode will use as its name.
func (g *Graph) NextID() int { return g.nextID }

// AddNode creates a node named after the current id counter at pos, appends
// it to the graph and advances the counter. It never fails and does not check
// for an existing node at the same position.
func (g *Graph) AddNode(pos Point) *Node {
	n := NewNode(strconv.Itoa(g.nextID), pos)
	g.nodes = append(g.nodes, n)
	g.nextID++
	return n
}

// RemoveNode detaches n from every node in the graph and then drops every
// node identity-equal to n from the node list. Removing a node that is not in
// the graph only sweeps its connections away from the remaining nodes.
func (g *Graph) RemoveNode(n *Node) {
	if n == nil {
		return
	}
	for _, other := range g.nodes {
		other.Disconnect(n)
	}
	g.nodes = slices.DeleteFunc(g.nodes, func(other *Node) bool { return other.Equal(n) })
}

// AddEdge connects src and dst with a straight edge.
//
// Both nodes are expected to belong to the graph; this is not checked, since
// callers normally obtain them from ExactPoint or NearPoint. Returns
// ErrSelfLoop if src and dst are the same node.
func (g *Graph) AddEdge(src, dst *Node) error {
	if src.Equal(dst) {
		return ErrSelfLoop
	}
	Connect(src, dst)
	return nil
}

// AddCurve connects src and dst with a quadratic curve through ctl.
// Returns ErrSelfLoop if src and dst are the same node.
func (g *Graph) AddCurve(src, dst *Node, ctl Point) error {
	if src.Equal(dst) {
		return ErrSelfLoop
	}
	Connect(src, dst, WithControl(ctl))
	return nil
}

// RemoveEdge removes every edge between src and dst, straight or curved,
// from both endpoints. It returns the number of connections removed from
// src's side. Nodes that are not adjacent are left untouched.
func (g *Graph) RemoveEdge(src, dst *Node) int {
	if src == nil || dst == nil {
		return 0
	}
	removed := src.Disconnect(dst)
	if !src.Equal(dst) {
		dst.Disconnect(src)
	}
	return removed
}

// ExactPoint returns the first node, in insertion order, positioned exactly
// at pos.
func (g *Graph) ExactPoint(pos Point) (*Node, bool) {
	for _, n := range g.nodes {
		if n.pos == pos {
			return n, true
		}
	}
	return nil, false
}

// NearPoint returns the first node, in insertion order, whose position lies
// strictly within NearTolerance of pos on both axes. Candidates are not
// ranked by distance: the earliest inserted match wins.
func (g *Graph) NearPoint(pos Point) (*Node, bool) {
	for _, n := range g.nodes {
		if n.pos.Near(pos) {
			return n, true
		}
	}
	return nil, false
}
