// Package netwk provides the in-memory graph model behind the ntwk diagram
// editor.
//
// # Overview
//
// A [Graph] holds nodes placed on a 2D surface. Each [Node] owns an ordered
// list of [Connection] values; a connection points at a peer node and may
// carry a curve control point. Edges are always symmetric: connecting A to B
// stores one connection in A's list pointing at B and one in B's list pointing
// at A, both with the same attributes.
//
// # Basic Usage
//
// Nodes are created by [Graph.AddNode], which mints a monotonically increasing
// name for each. Editors usually resolve pointer coordinates to nodes with
// [Graph.ExactPoint] or [Graph.NearPoint] before linking them:
//
//	g := netwk.New()
//	g.AddNode(netwk.Pt(0, 0))
//	g.AddNode(netwk.Pt(100, 100))
//
//	a, _ := g.ExactPoint(netwk.Pt(0, 0))
//	b, _ := g.NearPoint(netwk.Pt(98, 102))
//	_ = g.AddEdge(a, b)                    // straight segment
//	_ = g.AddCurve(a, b, netwk.Pt(0, 100)) // quadratic curve through (0, 100)
//
// # Identity
//
// Two nodes are the same node iff both their names and positions match (see
// [Node.Equal]). Names are never reused within one graph, even after the
// node they were minted for is removed.
//
// # Removal
//
// [Graph.RemoveNode] detaches the node from every remaining node before
// dropping it, so no connection into a removed node survives. Callers may
// keep their own *Node pointer; the garbage collector reclaims the node once
// the last reference is gone. [Graph.RemoveEdge] removes both halves of every
// edge between a pair of nodes.
//
// Lookups and removals of things that are not there are silent no-ops.
// The only error in this package is [ErrSelfLoop].
//
// # Concurrency
//
// Graph and Node are not safe for concurrent use. The model is driven by a
// single owner issuing calls in response to discrete user gestures; callers
// that share a graph across goroutines must synchronize access themselves.
package netwk
