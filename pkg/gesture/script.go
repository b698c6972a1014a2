package gesture

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/netwk"
)

// Gesture is one scripted input. Exactly one field is set.
type Gesture struct {
	Mode  *string   `toml:"mode,omitempty"`
	Click []float64 `toml:"click,omitempty"`
	Clear *bool     `toml:"clear,omitempty"`
}

// Script is an ordered list of gestures.
type Script struct {
	Gestures []Gesture `toml:"gesture"`
}

// Stats summarizes a replay.
type Stats struct {
	Gestures int // gestures replayed
	Clicks   int // click gestures
	Messages int // graph messages applied, acknowledgements excluded
	Ignored  int // clicks that had no effect
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "gesture script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read gesture script")
	}
	return Parse(data)
}

// Parse decodes a TOML script and checks every gesture.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse gesture script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every gesture sets exactly one action, names a known
// mode and clicks at a finite two-dimensional point.
func (s *Script) Validate() error {
	for i, g := range s.Gestures {
		if err := g.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "gesture %d", i)
		}
	}
	return nil
}

func (g Gesture) validate() error {
	set := 0
	if g.Mode != nil {
		set++
	}
	if g.Click != nil {
		set++
	}
	if g.Clear != nil {
		set++
	}
	if set != 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "want exactly one of mode, click, clear; got %d", set)
	}

	switch {
	case g.Mode != nil:
		if _, err := editor.ParseMode(*g.Mode); err != nil {
			return err
		}
	case g.Click != nil:
		if len(g.Click) != 2 {
			return errors.New(errors.ErrCodeInvalidFormat, "click needs [x, y], got %d values", len(g.Click))
		}
		for i, axis := range []string{"x", "y"} {
			if err := errors.ValidateCoordinate(axis, g.Click[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Mode appends a mode switch.
func (s *Script) Mode(m editor.Mode) {
	name := m.String()
	s.Gestures = append(s.Gestures, Gesture{Mode: &name})
}

// Click appends a click at p.
func (s *Script) Click(p netwk.Point) {
	s.Gestures = append(s.Gestures, Gesture{Click: []float64{float64(p.X), float64(p.Y)}})
}

// Clear appends a canvas clear.
func (s *Script) Clear() {
	yes := true
	s.Gestures = append(s.Gestures, Gesture{Clear: &yes})
}

// Len returns the number of gestures.
func (s *Script) Len() int { return len(s.Gestures) }

// Encode writes the script as TOML.
func (s *Script) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode gesture script")
	}
	return nil
}

// Save writes the script to path.
func (s *Script) Save(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Replay feeds every gesture to e in order and stops at the first error.
// The script is validated first, so a bad gesture changes nothing.
func (s *Script) Replay(e *editor.Editor) (Stats, error) {
	var st Stats
	if err := s.Validate(); err != nil {
		return st, err
	}

	for i, g := range s.Gestures {
		if err := replayOne(e, g, &st); err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return st, errors.Wrap(code, err, "replay gesture %d", i)
		}
		st.Gestures++
	}
	return st, nil
}

func replayOne(e *editor.Editor, g Gesture, st *Stats) error {
	switch {
	case g.Mode != nil:
		m, _ := editor.ParseMode(*g.Mode)
		st.Messages++
		return e.Apply(editor.ChangeMode(m))

	case g.Clear != nil:
		if !*g.Clear {
			return nil
		}
		st.Messages++
		return e.Apply(editor.Clear())

	default:
		st.Clicks++
		msg, ok := e.Click(netwk.Pt(float32(g.Click[0]), float32(g.Click[1])))
		if !ok {
			st.Ignored++
			return nil
		}
		err := e.Apply(msg)
		switch {
		case stderrors.Is(err, netwk.ErrSelfLoop):
			// The live editor rejected this click the same way; the
			// gesture already moved the pen back to view.
			st.Ignored++
			return nil
		case err != nil:
			return err
		}
		if msg.Kind != editor.MsgAck {
			st.Messages++
		}
		return nil
	}
}
