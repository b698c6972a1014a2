package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ntwkui/ntwk/pkg/config"
	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/gesture"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/render"
	"github.com/ntwkui/ntwk/pkg/render/raster"
)

// Canvas frame layout: one title line and a blank line above the bordered
// grid, help and status below it.
const (
	headerLines = 2
	footerLines = 3
	minCols     = 20
	minRows     = 8
)

// Styles
var (
	tuiBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	tuiCursorStyle = lipgloss.NewStyle().Reverse(true)
	tuiModeStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// editorKeyMap holds the canvas key bindings.
type editorKeyMap struct {
	Node, Edge, Curve, RemoveNode, RemoveEdge, View key.Binding

	Up, Down, Left, Right                 key.Binding
	JumpUp, JumpDown, JumpLeft, JumpRight key.Binding

	Click, Clear, Quit key.Binding
}

var editorKeys = editorKeyMap{
	Node:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "node")),
	Edge:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edge")),
	Curve:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "curve")),
	RemoveNode: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove node")),
	RemoveEdge: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove edge")),
	View:       key.NewBinding(key.WithKeys("v", "esc"), key.WithHelp("v", "view")),

	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("arrows/hjkl", "move")),
	Down:  key.NewBinding(key.WithKeys("down", "j")),
	Left:  key.NewBinding(key.WithKeys("left", "h")),
	Right: key.NewBinding(key.WithKeys("right", "l")),

	JumpUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("HJKL", "jump")),
	JumpDown:  key.NewBinding(key.WithKeys("J")),
	JumpLeft:  key.NewBinding(key.WithKeys("H")),
	JumpRight: key.NewBinding(key.WithKeys("L")),

	Click: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "click")),
	Clear: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// modeBindings pairs mode keys with the pen mode they select.
var modeBindings = []struct {
	binding key.Binding
	mode    editor.Mode
}{
	{editorKeys.Node, editor.ModePlaceNode},
	{editorKeys.Edge, editor.ModePlaceEdge},
	{editorKeys.Curve, editor.ModePlaceCurve},
	{editorKeys.RemoveNode, editor.ModeRemoveNode},
	{editorKeys.RemoveEdge, editor.ModeRemoveEdge},
	{editorKeys.View, editor.ModeView},
}

// ShortHelp lists the mode and session keys.
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Node, k.Edge, k.Curve, k.RemoveNode, k.RemoveEdge, k.View, k.Clear, k.Quit}
}

// FullHelp groups the bindings into help lines, cursor keys last.
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.JumpUp, k.Click}}
}

// =============================================================================
// EditorModel - Interactive canvas
// =============================================================================

// EditorModel is the bubbletea model for the terminal canvas. The cursor
// addresses grid cells; a click lands on a node when one is drawn in the
// cursor's cell, otherwise on the cell center.
type EditorModel struct {
	ed     *editor.Editor
	width  float32
	height float32

	cols, rows int
	cx, cy     int

	status string
	err    error
	help   help.Model

	// Record, when non-nil, receives every input for later replay.
	Record *gesture.Script
}

// NewEditorModel creates a canvas model sized from cfg.
func NewEditorModel(ed *editor.Editor, cfg *config.Config) EditorModel {
	return EditorModel{
		ed:     ed,
		width:  float32(cfg.Canvas.Width),
		height: float32(cfg.Canvas.Height),
		cols:   60,
		rows:   24,
		status: "n: place a node",
		help:   help.New(),
	}
}

// Editor returns the edited session.
func (m EditorModel) Editor() *editor.Editor { return m.ed }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		col, row := msg.X-1, msg.Y-headerLines-1
		if col < 0 || row < 0 || col >= m.cols || row >= m.rows {
			return m, nil
		}
		m.cx, m.cy = col, row
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click()
		}

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, minCols)
		m.rows = max(msg.Height-headerLines-footerLines-2, minRows)
		m.cx, m.cy = min(m.cx, m.cols-1), min(m.cy, m.rows-1)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, mb := range modeBindings {
		if key.Matches(msg, mb.binding) {
			m.setMode(mb.mode)
			return m, nil
		}
	}

	k := editorKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.cy = max(m.cy-1, 0)
	case key.Matches(msg, k.Down):
		m.cy = min(m.cy+1, m.rows-1)
	case key.Matches(msg, k.Left):
		m.cx = max(m.cx-1, 0)
	case key.Matches(msg, k.Right):
		m.cx = min(m.cx+1, m.cols-1)
	case key.Matches(msg, k.JumpUp):
		m.cy = max(m.cy-5, 0)
	case key.Matches(msg, k.JumpDown):
		m.cy = min(m.cy+5, m.rows-1)
	case key.Matches(msg, k.JumpLeft):
		m.cx = max(m.cx-5, 0)
	case key.Matches(msg, k.JumpRight):
		m.cx = min(m.cx+5, m.cols-1)
	case key.Matches(msg, k.Click):
		m.click()
	case key.Matches(msg, k.Clear):
		m.apply(editor.Clear())
		if m.Record != nil && m.err == nil {
			m.Record.Clear()
		}
	}
	return m, nil
}

func (m *EditorModel) setMode(mode editor.Mode) {
	m.apply(editor.ChangeMode(mode))
	if m.Record != nil && m.err == nil {
		m.Record.Mode(mode)
	}
}

func (m *EditorModel) click() {
	p := m.cursorPoint()
	if m.Record != nil {
		m.Record.Click(p)
	}
	msg, ok := m.ed.Click(p)
	if !ok {
		m.status, m.err = "nothing here", nil
		return
	}
	m.apply(msg)
}

func (m *EditorModel) apply(msg editor.Message) {
	m.err = m.ed.Apply(msg)
	if m.err == nil {
		m.status = msg.String()
	}
}

func (m EditorModel) grid() *raster.Grid {
	return raster.New(m.cols, m.rows, m.width, m.height)
}

// cursorPoint resolves the cursor cell to a canvas point.
func (m EditorModel) cursorPoint() netwk.Point {
	g := m.grid()
	for _, n := range m.ed.Graph().Nodes() {
		if col, row, ok := g.Cell(n.Pos()); ok && col == m.cx && row == m.cy {
			return n.Pos()
		}
	}
	return g.Point(m.cx, m.cy)
}

func (m EditorModel) View() string {
	var b strings.Builder

	graph := m.ed.Graph()
	mode := m.ed.Mode().String()
	if step := m.ed.Progress().Step; step != editor.StepNone {
		mode += " (" + step.String() + ")"
	}
	b.WriteString(StyleTitle.Render(appName) + "  " + tuiModeStyle.Render(mode) + "  ")
	b.WriteString(StyleDim.Render(formatStats(graph.NodeCount(), graph.EdgeCount())))
	b.WriteString("\n\n")

	scene := render.FromEditor(m.ed, m.cursorPoint())
	lines := raster.Render(scene, m.cols, m.rows, m.width, m.height).Lines()
	if m.cy < len(lines) {
		row := []rune(lines[m.cy])
		if m.cx < len(row) {
			lines[m.cy] = string(row[:m.cx]) + tuiCursorStyle.Render(string(row[m.cx])) + string(row[m.cx+1:])
		}
	}
	b.WriteString(tuiBorderStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	for _, group := range editorKeys.FullHelp() {
		b.WriteString(m.help.ShortHelpView(group))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(tuiErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
	} else {
		b.WriteString(StyleDim.Render(iconInfo + " " + m.status))
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// tuiCommand creates the tui command for interactive editing.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		load    string
		record  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a network interactively in the terminal",
		Long: `Edit a network interactively in the terminal.

Pick a pen mode with a key, move the cursor with the arrow keys or the
mouse, and click with space, enter or the left mouse button. Edges and
curves take their endpoints from the nodes under successive clicks; a
curve's third click sets its control point.`,
		Example: `  # Start with an empty canvas and save the session
  ntwk tui --record session.toml

  # Continue from a saved session
  ntwk tui --load session.toml --record session.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := editor.New()
			m := NewEditorModel(ed, c.Config)

			if record != "" {
				if err := errors.ValidatePath(record); err != nil {
					return err
				}
				m.Record = &gesture.Script{}
			}
			if load != "" {
				script, err := gesture.Load(load)
				if err != nil {
					return err
				}
				if _, err := script.Replay(ed); err != nil {
					return err
				}
				if m.Record != nil {
					m.Record.Gestures = append(m.Record.Gestures, script.Gestures...)
				}
			}

			// the alternate screen owns the terminal; keep log lines out of it
			restore, err := c.redirectLogs(logFile)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			).Run()
			restore()
			if err != nil {
				return err
			}

			fm := final.(EditorModel)
			g := fm.Editor().Graph()
			printSuccess("Session %s", StyleHighlight.Render(short(fm.Editor().ID())))
			printStats(g.NodeCount(), g.EdgeCount())

			if fm.Record != nil {
				if err := fm.Record.Save(record); err != nil {
					return err
				}
				printFile(record)
				printNextStep("Render it", "ntwk render "+record)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&load, "load", "", "replay a gesture script before editing")
	cmd.Flags().StringVar(&record, "record", "", "save the session as a gesture script on exit")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the editor runs")
	return cmd
}

// redirectLogs sends log output to path, or discards it when path is
// empty, until the returned function is called.
func (c *CLI) redirectLogs(path string) (func(), error) {
	if path == "" {
		c.Logger.SetOutput(io.Discard)
		return func() { c.Logger.SetOutput(os.Stderr) }, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file")
	}
	c.Logger.SetOutput(f)
	return func() {
		c.Logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
