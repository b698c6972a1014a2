package editor

import (
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/observability"
)

// Editor is one editing session: a graph, the current pen mode and the
// progress of any multi-click gesture.
//
// The zero value is not usable; create editors with New. Editor is not safe
// for concurrent use.
type Editor struct {
	id       string
	graph    *netwk.Graph
	mode     Mode
	progress Progress
}

// New creates an editor with an empty graph in view mode.
func New() *Editor {
	return &Editor{
		id:    uuid.NewString(),
		graph: netwk.New(),
	}
}

// ID returns the session id, used to correlate log lines and output files.
func (e *Editor) ID() string { return e.id }

// Graph returns the graph being edited. The pointer changes after Clear.
func (e *Editor) Graph() *netwk.Graph { return e.graph }

// Mode returns the current pen mode.
func (e *Editor) Mode() Mode { return e.mode }

// Progress returns the current gesture progress.
func (e *Editor) Progress() Progress { return e.progress }

// SetMode switches the pen mode and discards any gesture in progress.
func (e *Editor) SetMode(m Mode) {
	e.mode = m
	e.progress = Progress{}
}

// Click feeds a pointer press at p through the pen-mode state machine.
//
// It returns the message the click produced and true, or false when the
// click had no effect. Endpoint picks resolve through NearPoint; a click that
// misses every node leaves the gesture where it was. Completing a gesture
// returns the pen to view mode. Click never mutates the graph: pass the
// message to Apply.
func (e *Editor) Click(p netwk.Point) (Message, bool) {
	switch e.mode {
	case ModePlaceNode:
		e.SetMode(ModeView)
		return AddNode(p), true

	case ModePlaceEdge, ModeRemoveEdge:
		return e.clickPair(p)

	case ModePlaceCurve:
		return e.clickCurve(p)

	case ModeRemoveNode:
		n, ok := e.graph.NearPoint(p)
		if !ok {
			return Message{}, false
		}
		e.SetMode(ModeView)
		return RemoveNode(n.Pos()), true
	}
	return Message{}, false
}

func (e *Editor) clickPair(p netwk.Point) (Message, bool) {
	n, hit := e.graph.NearPoint(p)

	if e.progress.Step == StepNone {
		if hit {
			e.progress = Progress{Step: StepFrom, From: n.Pos()}
		}
		return Message{Kind: MsgAck}, true
	}

	if !hit {
		return Message{}, false
	}
	from, mode := e.progress.From, e.mode
	e.SetMode(ModeView)
	if mode == ModeRemoveEdge {
		return RemoveEdge(from, n.Pos()), true
	}
	return AddEdge(from, n.Pos()), true
}

func (e *Editor) clickCurve(p netwk.Point) (Message, bool) {
	switch e.progress.Step {
	case StepNone:
		if n, ok := e.graph.NearPoint(p); ok {
			e.progress = Progress{Step: StepFrom, From: n.Pos()}
		}
		return Message{Kind: MsgAck}, true

	case StepFrom:
		if n, ok := e.graph.NearPoint(p); ok {
			e.progress.Step = StepTo
			e.progress.To = n.Pos()
		}
		return Message{Kind: MsgAck}, true

	default:
		from, to := e.progress.From, e.progress.To
		e.SetMode(ModeView)
		return AddCurve(from, to, p), true
	}
}

// Pending returns the preview geometry for the current mode with the cursor
// at p, or false when nothing should be drawn.
func (e *Editor) Pending(cursor netwk.Point) (Pen, bool) {
	switch e.mode {
	case ModePlaceNode:
		return Pen{Kind: PenDot, From: cursor}, true
	case ModePlaceEdge, ModeRemoveEdge:
		if e.progress.Step == StepFrom {
			return Pen{Kind: PenLine, From: e.progress.From, To: cursor}, true
		}
	case ModePlaceCurve:
		switch e.progress.Step {
		case StepFrom:
			return Pen{Kind: PenLine, From: e.progress.From, To: cursor}, true
		case StepTo:
			return Pen{Kind: PenCurve, From: e.progress.From, To: e.progress.To, Control: cursor}, true
		}
	}
	return Pen{}, false
}

// Clear replaces the graph with an empty one and returns to view mode.
func (e *Editor) Clear() {
	e.graph = netwk.New()
	e.SetMode(ModeView)
}

// Handle is Click followed by Apply of the resulting message, if any.
func (e *Editor) Handle(p netwk.Point) (Message, error) {
	msg, ok := e.Click(p)
	if !ok {
		return Message{Kind: MsgAck}, nil
	}
	return msg, e.Apply(msg)
}

// Apply performs msg against the graph.
//
// Edge endpoints are resolved with ExactPoint, so messages must carry node
// positions, as Click produces. A message whose endpoints do not resolve is
// a silent no-op. Linking a node to itself fails with ErrCodeInvalidInput
// wrapping netwk.ErrSelfLoop; non-finite coordinates fail with
// ErrCodeInvalidInput; unknown message kinds fail with ErrCodeUnsupported.
func (e *Editor) Apply(msg Message) error {
	err := e.apply(msg)
	hooks := observability.Editor()
	if msg.Kind != MsgAck {
		hooks.OnMessage(e.id, msg.Kind.String(), err)
	}
	if err == nil && mutates(msg.Kind) {
		hooks.OnGraphChanged(e.id, e.graph.NodeCount(), e.graph.EdgeCount())
	}
	return err
}

func (e *Editor) apply(msg Message) error {
	switch msg.Kind {
	case MsgAck:
		return nil

	case MsgChangeMode:
		if _, ok := modeNames[msg.Mode]; !ok {
			return errors.New(errors.ErrCodeInvalidMode, "unknown pen mode %d", int(msg.Mode))
		}
		e.SetMode(msg.Mode)
		return nil

	case MsgAddNode:
		if err := validatePoint(msg.At); err != nil {
			return err
		}
		e.graph.AddNode(msg.At)
		return nil

	case MsgRemoveNode:
		if n, ok := e.graph.ExactPoint(msg.At); ok {
			e.graph.RemoveNode(n)
		}
		return nil

	case MsgAddEdge, MsgAddCurve:
		return e.link(msg)

	case MsgRemoveEdge:
		from, okFrom := e.graph.ExactPoint(msg.From)
		to, okTo := e.graph.ExactPoint(msg.To)
		if okFrom && okTo {
			e.graph.RemoveEdge(from, to)
		}
		return nil

	case MsgClear:
		e.Clear()
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported message %s", msg.Kind)
}

func (e *Editor) link(msg Message) error {
	from, okFrom := e.graph.ExactPoint(msg.From)
	to, okTo := e.graph.ExactPoint(msg.To)
	if !okFrom || !okTo {
		return nil
	}

	var err error
	if msg.Kind == MsgAddCurve {
		if err := validatePoint(msg.Control); err != nil {
			return err
		}
		err = e.graph.AddCurve(from, to, msg.Control)
	} else {
		err = e.graph.AddEdge(from, to)
	}
	if stderrors.Is(err, netwk.ErrSelfLoop) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot link node %s to itself", from.Name())
	}
	return err
}

func mutates(k MessageKind) bool {
	switch k {
	case MsgAddNode, MsgRemoveNode, MsgAddEdge, MsgAddCurve, MsgRemoveEdge, MsgClear:
		return true
	}
	return false
}

func validatePoint(p netwk.Point) error {
	if err := errors.ValidateCoordinate("x", float64(p.X)); err != nil {
		return err
	}
	return errors.ValidateCoordinate("y", float64(p.Y))
}
