package editor

import (
	"fmt"

	"github.com/ntwkui/ntwk/pkg/netwk"
)

// MessageKind identifies what a Message asks the editor to do.
type MessageKind int

const (
	// MsgAck acknowledges a click that only advanced gesture progress.
	MsgAck MessageKind = iota
	MsgChangeMode
	MsgAddNode
	MsgRemoveNode
	MsgAddEdge
	MsgAddCurve
	MsgRemoveEdge
	MsgClear
)

var messageNames = [...]string{
	MsgAck:        "ack",
	MsgChangeMode: "change-mode",
	MsgAddNode:    "add-node",
	MsgRemoveNode: "remove-node",
	MsgAddEdge:    "add-edge",
	MsgAddCurve:   "add-curve",
	MsgRemoveEdge: "remove-edge",
	MsgClear:      "clear",
}

func (k MessageKind) String() string {
	if int(k) >= 0 && int(k) < len(messageNames) {
		return messageNames[k]
	}
	return fmt.Sprintf("message(%d)", int(k))
}

// Message is a graph operation expressed in canvas coordinates. Endpoints
// are positions; Apply resolves them to nodes with exact-point lookup.
type Message struct {
	Kind MessageKind

	// Mode is the new pen mode for MsgChangeMode.
	Mode Mode

	// At is the position for MsgAddNode and MsgRemoveNode.
	At netwk.Point

	// From and To are the endpoints for edge messages.
	From netwk.Point
	To   netwk.Point

	// Control is the curve control point for MsgAddCurve.
	Control netwk.Point
}

// String describes the message for logs.
func (m Message) String() string {
	switch m.Kind {
	case MsgChangeMode:
		return fmt.Sprintf("%s %s", m.Kind, m.Mode)
	case MsgAddNode, MsgRemoveNode:
		return fmt.Sprintf("%s %v", m.Kind, m.At)
	case MsgAddEdge, MsgRemoveEdge:
		return fmt.Sprintf("%s %v-%v", m.Kind, m.From, m.To)
	case MsgAddCurve:
		return fmt.Sprintf("%s %v-%v via %v", m.Kind, m.From, m.To, m.Control)
	default:
		return m.Kind.String()
	}
}

// AddNode returns a message placing a node at p.
func AddNode(p netwk.Point) Message { return Message{Kind: MsgAddNode, At: p} }

// RemoveNode returns a message removing the node at p.
func RemoveNode(p netwk.Point) Message { return Message{Kind: MsgRemoveNode, At: p} }

// AddEdge returns a message linking the nodes at from and to.
func AddEdge(from, to netwk.Point) Message { return Message{Kind: MsgAddEdge, From: from, To: to} }

// AddCurve returns a message linking the nodes at from and to with a curve
// through ctl.
func AddCurve(from, to, ctl netwk.Point) Message {
	return Message{Kind: MsgAddCurve, From: from, To: to, Control: ctl}
}

// RemoveEdge returns a message removing every edge between the nodes at
// from and to.
func RemoveEdge(from, to netwk.Point) Message { return Message{Kind: MsgRemoveEdge, From: from, To: to} }

// ChangeMode returns a message switching the pen mode.
func ChangeMode(m Mode) Message { return Message{Kind: MsgChangeMode, Mode: m} }

// Clear returns a message replacing the graph with an empty one.
func Clear() Message { return Message{Kind: MsgClear} }
