package raster

import (
	"math"
	"strings"
	"testing"

	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/render"
)

func TestNewClampsSize(t *testing.T) {
	g := New(0, -2, 0, 0)
	if cols, rows := g.Size(); cols != 1 || rows != 1 {
		t.Errorf("Size() = %d, %d; want 1, 1", cols, rows)
	}
}

func TestCell(t *testing.T) {
	g := New(10, 5, 100, 50)

	tests := []struct {
		name     string
		p        netwk.Point
		col, row int
		ok       bool
	}{
		{"origin", netwk.Pt(0, 0), 0, 0, true},
		{"middle", netwk.Pt(55, 25), 5, 2, true},
		{"last cell", netwk.Pt(99.9, 49.9), 9, 4, true},
		{"right edge", netwk.Pt(100, 10), 0, 0, false},
		{"negative", netwk.Pt(-1, 10), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := g.Cell(tt.p)
			if ok != tt.ok || col != tt.col || row != tt.row {
				t.Errorf("Cell(%v) = %d, %d, %v; want %d, %d, %v", tt.p, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}
}

func TestPointRoundTrip(t *testing.T) {
	g := New(10, 5, 100, 50)
	for col := 0; col < 10; col++ {
		for row := 0; row < 5; row++ {
			c, r, ok := g.Cell(g.Point(col, row))
			if !ok || c != col || r != row {
				t.Errorf("Cell(Point(%d, %d)) = %d, %d, %v", col, row, c, r, ok)
			}
		}
	}
}

func TestRenderHorizontalEdge(t *testing.T) {
	gr := netwk.New()
	a := gr.AddNode(netwk.Pt(5, 25))
	b := gr.AddNode(netwk.Pt(95, 25))
	_ = gr.AddEdge(a, b)

	g := Render(render.FromGraph(gr), 10, 5, 100, 50)
	want := string(NodeDot) + strings.Repeat(string(Edge), 8) + string(NodeDot)
	if got := g.Lines()[2]; got != want {
		t.Errorf("row 2 = %q, want %q", got, want)
	}
	for _, row := range []int{0, 1, 3, 4} {
		if got := strings.TrimSpace(g.Lines()[row]); got != "" {
			t.Errorf("row %d = %q, want blank", row, got)
		}
	}
}

func TestRenderDiagonal(t *testing.T) {
	s := render.Scene{Strokes: []render.Stroke{{From: netwk.Pt(0, 0), To: netwk.Pt(40, 40)}}}
	g := Render(s, 4, 4, 40, 40)
	// (40, 40) lies outside the canvas and is clipped
	for i := 0; i < 4; i++ {
		if g.At(i, i) != Edge {
			t.Errorf("At(%d, %d) = %q, want %q", i, i, g.At(i, i), Edge)
		}
	}
}

func TestRenderFarEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		stroke render.Stroke
		row    string
	}{
		{
			name:   "far right",
			stroke: render.Stroke{From: netwk.Pt(10, 10), To: netwk.Pt(1e30, 10)},
			row:    " " + strings.Repeat(string(Edge), 9),
		},
		{
			name:   "both ends beyond float32 range",
			stroke: render.Stroke{From: netwk.Pt(-math.MaxFloat32, 10), To: netwk.Pt(math.MaxFloat32, 10)},
			row:    strings.Repeat(string(Edge), 10),
		},
		{
			name:   "outside on one side",
			stroke: render.Stroke{From: netwk.Pt(-1e30, -1e30), To: netwk.Pt(1e30, -1e30)},
			row:    strings.Repeat(" ", 10),
		},
		{
			name: "far control point",
			stroke: render.Stroke{
				From: netwk.Pt(10, 10), To: netwk.Pt(90, 10), Control: netwk.Pt(1e30, 1e30), Curved: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Render(render.Scene{Strokes: []render.Stroke{tt.stroke}}, 10, 5, 100, 50)
			if tt.row != "" && g.Lines()[1] != tt.row {
				t.Errorf("row 1 = %q, want %q", g.Lines()[1], tt.row)
			}
		})
	}
}

func TestRenderCurveBends(t *testing.T) {
	s := render.Scene{Strokes: []render.Stroke{{
		From: netwk.Pt(5, 5), To: netwk.Pt(95, 5), Control: netwk.Pt(50, 95), Curved: true,
	}}}
	g := Render(s, 10, 10, 100, 100)

	// the curve peaks halfway to the control point
	if g.At(5, 5) != Edge && g.At(4, 5) != Edge {
		t.Errorf("curve should pass through row 5:\n%s", g)
	}
	if strings.Contains(g.Lines()[9], string(Edge)) {
		t.Errorf("curve should not reach the control point:\n%s", g)
	}
}

func TestRenderPen(t *testing.T) {
	pen := editor.Pen{Kind: editor.PenDot, From: netwk.Pt(15, 15)}
	g := Render(render.Scene{Pen: &pen}, 10, 10, 100, 100)
	if g.At(1, 1) != PenDot {
		t.Errorf("At(1, 1) = %q, want %q", g.At(1, 1), PenDot)
	}

	pen = editor.Pen{Kind: editor.PenLine, From: netwk.Pt(5, 5), To: netwk.Pt(95, 5)}
	g = Render(render.Scene{Pen: &pen, Dots: []render.Dot{{Center: netwk.Pt(5, 5)}}}, 10, 10, 100, 100)
	if g.At(0, 0) != NodeDot {
		t.Errorf("node should cover the pen line, got %q", g.At(0, 0))
	}
	if g.At(5, 0) != PenLine {
		t.Errorf("At(5, 0) = %q, want %q", g.At(5, 0), PenLine)
	}
}

func TestAtOutside(t *testing.T) {
	g := New(2, 2, 10, 10)
	if g.At(-1, 0) != Empty || g.At(2, 0) != Empty {
		t.Error("At outside grid should be Empty")
	}
}
