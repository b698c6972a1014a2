package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ntwkui/ntwk/pkg/config"
	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/gesture"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// moveTo points the mouse at a grid cell without clicking.
func moveTo(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col + 1, Y: row + headerLines + 1, Action: tea.MouseActionMotion}
}

func pressAt(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col + 1, Y: row + headerLines + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func send(t *testing.T, m EditorModel, msgs ...tea.Msg) EditorModel {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(EditorModel)
}

func newTestModel() EditorModel {
	return NewEditorModel(editor.New(), config.DefaultConfig())
}

func TestEditorModelPlacesAndLinks(t *testing.T) {
	m := newTestModel()
	m.Record = &gesture.Script{}

	m = send(t, m,
		keyMsg("n"), moveTo(10, 5), keyMsg(" "),
		keyMsg("n"), pressAt(40, 15),
		keyMsg("e"), pressAt(10, 5), pressAt(40, 15),
	)

	g := m.Editor().Graph()
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("graph = %d nodes, %d edges, want 2, 1", g.NodeCount(), g.EdgeCount())
	}
	if m.Editor().Mode() != editor.ModeView {
		t.Errorf("mode = %s, want view after the edge", m.Editor().Mode())
	}
	if got := m.Record.Len(); got != 7 {
		t.Errorf("recorded %d gestures, want 7", got)
	}

	// the recording rebuilds the same network
	replayed := editor.New()
	if _, err := m.Record.Replay(replayed); err != nil {
		t.Fatal(err)
	}
	if rg := replayed.Graph(); rg.NodeCount() != 2 || rg.EdgeCount() != 1 {
		t.Errorf("replayed = %d nodes, %d edges, want 2, 1", rg.NodeCount(), rg.EdgeCount())
	}
}

func TestEditorModelCursorKeys(t *testing.T) {
	tests := []struct {
		name         string
		keys         []string
		wantX, wantY int
	}{
		{"start", nil, 0, 0},
		{"right and down", []string{"right", "down", "l", "j"}, 2, 2},
		{"jump", []string{"L", "J"}, 5, 5},
		{"clamped at origin", []string{"h", "k", "H", "K"}, 0, 0},
		{"back", []string{"L", "h"}, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			for _, k := range tt.keys {
				m = send(t, m, keyMsg(k))
			}
			if m.cx != tt.wantX || m.cy != tt.wantY {
				t.Errorf("cursor = (%d, %d), want (%d, %d)", m.cx, m.cy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestEditorModelResize(t *testing.T) {
	m := newTestModel()
	m = send(t, m, moveTo(50, 20), tea.WindowSizeMsg{Width: 30, Height: 12})

	if m.cols != 28 || m.rows != minRows {
		t.Errorf("grid = %dx%d, want 28x%d", m.cols, m.rows, minRows)
	}
	if m.cx != 27 || m.cy != minRows-1 {
		t.Errorf("cursor = (%d, %d), want clamped to (27, %d)", m.cx, m.cy, minRows-1)
	}

	// clicks outside the grid are ignored
	m = send(t, m, keyMsg("n"), pressAt(100, 100))
	if n := m.Editor().Graph().NodeCount(); n != 0 {
		t.Errorf("nodes = %d after an off-grid click, want 0", n)
	}
}

func TestEditorModelSelfLoopError(t *testing.T) {
	m := newTestModel()
	m.Record = &gesture.Script{}
	m = send(t, m, keyMsg("n"), pressAt(3, 3), keyMsg("e"), pressAt(3, 3), pressAt(3, 3))

	if m.err == nil {
		t.Fatal("expected an error linking a node to itself")
	}
	if !strings.Contains(m.View(), "itself") {
		t.Errorf("view does not show the error:\n%s", m.View())
	}

	// a mode change clears the error
	m = send(t, m, keyMsg("v"))
	if m.err != nil {
		t.Errorf("err = %v after mode change, want nil", m.err)
	}

	// the rejected click is in the recording and replays as ignored
	replayed := editor.New()
	st, err := m.Record.Replay(replayed)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if st.Ignored != 1 {
		t.Errorf("Ignored = %d, want 1", st.Ignored)
	}
	if rg := replayed.Graph(); rg.NodeCount() != 1 || rg.EdgeCount() != 0 {
		t.Errorf("replayed = %d nodes, %d edges, want 1, 0", rg.NodeCount(), rg.EdgeCount())
	}
}

func TestEditorModelMiss(t *testing.T) {
	m := newTestModel()
	m = send(t, m, keyMsg("x"), pressAt(5, 5))
	if m.status != "nothing here" {
		t.Errorf("status = %q, want %q", m.status, "nothing here")
	}
	if m.Editor().Mode() != editor.ModeRemoveNode {
		t.Errorf("mode = %s, want remove-node kept after a miss", m.Editor().Mode())
	}
}

func TestEditorModelClear(t *testing.T) {
	m := newTestModel()
	m.Record = &gesture.Script{}
	m = send(t, m, keyMsg("n"), pressAt(1, 1), keyMsg("C"))

	if n := m.Editor().Graph().NodeCount(); n != 0 {
		t.Errorf("nodes = %d after clear, want 0", n)
	}
	last := m.Record.Gestures[m.Record.Len()-1]
	if last.Clear == nil || !*last.Clear {
		t.Errorf("last recorded gesture = %+v, want clear", last)
	}
}

func TestEditorModelView(t *testing.T) {
	m := newTestModel()
	m = send(t, m, keyMsg("n"), pressAt(10, 10), keyMsg("e"), pressAt(10, 10))

	view := m.View()
	for _, want := range []string{appName, "edge (from)", "1 node · 0 edges", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEditorModelQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			msg := keyMsg(k)
			if k == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}
			_, cmd := newTestModel().Update(msg)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
			}
		})
	}
}
