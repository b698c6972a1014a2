package netwk

// Node is a named point on the surface together with the connections it owns.
//
// Nodes are shared: the graph's node list and every peer's connections point
// at the same *Node. Position and name never change after creation; only the
// connection list is mutated, and only through Connect, Disconnect and the
// Graph methods built on them.
type Node struct {
	name  string
	pos   Point
	edges []Connection
}

// Connection is one half of a symmetric edge, stored in the owning node's
// connection list and pointing at the peer node.
//
// Weight is carried but unused by every operation in this package. When a
// control point is present the edge is drawn as a quadratic curve through
// it instead of a straight segment.
type Connection struct {
	dst       *Node
	weight    float32
	hasWeight bool
	ctl       Point
	hasCtl    bool
}

// ConnectOption sets optional attributes on both halves of a new edge.
type ConnectOption func(*Connection)

// WithControl makes the edge a quadratic curve through ctl.
func WithControl(ctl Point) ConnectOption {
	return func(c *Connection) { c.ctl, c.hasCtl = ctl, true }
}

// WithWeight attaches a weight to the edge.
func WithWeight(w float32) ConnectOption {
	return func(c *Connection) { c.weight, c.hasWeight = w, true }
}

// NewNode allocates a node with an empty connection list.
func NewNode(name string, pos Point) *Node {
	return &Node{name: name, pos: pos}
}

// Name returns the identifier minted for the node.
func (n *Node) Name() string { return n.name }

// Pos returns the node's position.
func (n *Node) Pos() Point { return n.pos }

// Edges returns the node's connections in insertion order, as modified by
// swap-removals. The slice is a view of the node's storage: callers must not
// modify it, and it is invalidated by the next mutation of the node.
func (n *Node) Edges() []Connection { return n.edges }

// Degree returns the number of connections owned by the node.
func (n *Node) Degree() int { return len(n.edges) }

// Equal reports whether n and other are the same node by identity, which is
// defined as equal name and equal position. A nil node equals only nil.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.name == other.name && n.pos == other.pos
}

// ConnectionsTo returns how many of the node's connections point at other.
func (n *Node) ConnectionsTo(other *Node) int {
	count := 0
	for _, c := range n.edges {
		if c.dst.Equal(other) {
			count++
		}
	}
	return count
}

// Connect links src and dst. It appends a connection to dst in src's list and
// a connection to src in dst's list, both with the same attributes.
//
// Connect is the only way edges are created. It does not reject self-loops;
// connecting a node to itself stores two connections in its own list.
// Graph.AddEdge and Graph.AddCurve apply the graph's self-loop policy first.
func Connect(src, dst *Node, opts ...ConnectOption) {
	var attrs Connection
	for _, opt := range opts {
		opt(&attrs)
	}

	forward := attrs
	forward.dst = dst
	src.edges = append(src.edges, forward)

	backward := attrs
	backward.dst = src
	dst.edges = append(dst.edges, backward)
}

// Disconnect removes from n's list every connection whose destination is
// identity-equal to other and returns how many were removed. Parallel edges
// are all removed. The order of the remaining connections is not preserved.
//
// Disconnect only touches n; the peer's half is left for the caller (see
// Graph.RemoveEdge for the symmetric operation).
func (n *Node) Disconnect(other *Node) int {
	removed := 0
	for i := 0; i < len(n.edges); {
		if !n.edges[i].dst.Equal(other) {
			i++
			continue
		}
		last := len(n.edges) - 1
		n.edges[i] = n.edges[last]
		n.edges[last] = Connection{}
		n.edges = n.edges[:last]
		removed++
	}
	return removed
}

// Destination returns the peer node this connection points at.
func (c Connection) Destination() *Node { return c.dst }

// Weight returns the connection's weight and whether one was set.
func (c Connection) Weight() (float32, bool) { return c.weight, c.hasWeight }

// Control returns the curve control point and whether the connection is
// curved.
func (c Connection) Control() (Point, bool) { return c.ctl, c.hasCtl }

// IsCurve reports whether the connection is drawn as a quadratic curve.
func (c Connection) IsCurve() bool { return c.hasCtl }
