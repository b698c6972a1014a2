package editor

import (
	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/netwk"
)

// Mode is the pen mode: what a click on the canvas does.
type Mode int

const (
	// ModeView ignores clicks.
	ModeView Mode = iota
	// ModePlaceNode places a node at the next click and returns to view.
	ModePlaceNode
	// ModePlaceEdge links two nodes picked by successive clicks.
	ModePlaceEdge
	// ModePlaceCurve picks two nodes, then takes a third click as the
	// curve's control point.
	ModePlaceCurve
	// ModeRemoveNode removes the node under the next click.
	ModeRemoveNode
	// ModeRemoveEdge removes every edge between two nodes picked by
	// successive clicks.
	ModeRemoveEdge
)

var modeNames = map[Mode]string{
	ModeView:       "view",
	ModePlaceNode:  "node",
	ModePlaceEdge:  "edge",
	ModePlaceCurve: "curve",
	ModeRemoveNode: "remove-node",
	ModeRemoveEdge: "remove-edge",
}

// ModeNames lists the accepted mode names in declaration order.
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for m := ModeView; m <= ModeRemoveEdge; m++ {
		names = append(names, modeNames[m])
	}
	return names
}

// String returns the mode's name as accepted by ParseMode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeView, errors.New(errors.ErrCodeInvalidMode, "unknown pen mode %q", s)
}

// Step is how far a multi-click gesture has progressed.
type Step int

const (
	// StepNone means no endpoint has been picked yet.
	StepNone Step = iota
	// StepFrom means the first endpoint is picked.
	StepFrom
	// StepTo means both endpoints are picked (curves only).
	StepTo
)

func (s Step) String() string {
	switch s {
	case StepFrom:
		return "from"
	case StepTo:
		return "to"
	default:
		return "none"
	}
}

// Progress records the endpoints picked so far in the current mode. Points
// are node positions as resolved by Graph.NearPoint, not raw click positions.
type Progress struct {
	Step Step
	From netwk.Point
	To   netwk.Point
}

// PenKind selects the preview shape drawn under the cursor.
type PenKind int

const (
	PenNone PenKind = iota
	PenDot
	PenLine
	PenCurve
)

// Pen is the preview geometry for the current mode at a cursor position:
// a dot for node placement, a rubber-band line once an endpoint is picked,
// and a curve bending towards the cursor once both curve endpoints are set.
type Pen struct {
	Kind    PenKind
	From    netwk.Point
	To      netwk.Point
	Control netwk.Point
}
