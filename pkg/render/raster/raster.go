// Package raster draws a scene onto a grid of terminal cells.
//
// Canvas coordinates are scaled onto the grid, so a 500x600 canvas fits in
// whatever size the terminal offers. Connections are drawn with Bresenham
// lines; curves are flattened first. Nodes are drawn last and always win
// over strokes in the same cell.
package raster

import (
	"math"
	"strings"

	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/render"
)

const (
	Empty   = ' '
	NodeDot = '●'
	Edge    = '·'
	PenDot  = '○'
	PenLine = '+'
)

// curveSegments is how finely curves are flattened before rasterizing.
const curveSegments = 24

// Grid is a rendered frame: rows of cells plus the scale used to map canvas
// coordinates onto them.
type Grid struct {
	cols, rows int
	width      float32
	height     float32
	cells      [][]rune
}

// New returns an empty grid of cols x rows cells covering a w x h canvas.
// Sizes below 1 are raised to 1.
func New(cols, rows int, w, h float32) *Grid {
	cols, rows = max(cols, 1), max(rows, 1)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(string(Empty), cols))
	}
	return &Grid{cols: cols, rows: rows, width: w, height: h, cells: cells}
}

// Render draws s onto a new grid.
func Render(s render.Scene, cols, rows int, w, h float32) *Grid {
	g := New(cols, rows, w, h)
	for _, st := range s.Strokes {
		g.stroke(st, Edge)
	}
	if s.Pen != nil {
		g.pen(*s.Pen)
	}
	for _, d := range s.Dots {
		g.Set(d.Center, NodeDot)
	}
	return g
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// Cell maps a canvas point to the cell containing it. ok is false when the
// point lies outside the canvas.
func (g *Grid) Cell(p netwk.Point) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
		return 0, 0, false
	}
	col = min(int(p.X*float32(g.cols)/g.width), g.cols-1)
	row = min(int(p.Y*float32(g.rows)/g.height), g.rows-1)
	return col, row, true
}

// Point maps a cell back to the canvas point at its center.
func (g *Grid) Point(col, row int) netwk.Point {
	cw := g.width / float32(g.cols)
	ch := g.height / float32(g.rows)
	return netwk.Pt((float32(col)+0.5)*cw, (float32(row)+0.5)*ch)
}

// At returns the rune in a cell, or Empty outside the grid.
func (g *Grid) At(col, row int) rune {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return Empty
	}
	return g.cells[row][col]
}

// Set draws r in the cell containing p. Points outside the canvas are
// ignored.
func (g *Grid) Set(p netwk.Point, r rune) {
	if col, row, ok := g.Cell(p); ok {
		g.cells[row][col] = r
	}
}

// Lines returns the rows as strings.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		lines[i] = string(row)
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

func (g *Grid) stroke(st render.Stroke, r rune) {
	if !st.Curved {
		g.line(st.From, st.To, r)
		return
	}
	pts := render.Flatten(st.From, st.Control, st.To, curveSegments)
	for i := 1; i < len(pts); i++ {
		g.line(pts[i-1], pts[i], r)
	}
}

func (g *Grid) pen(p editor.Pen) {
	switch p.Kind {
	case editor.PenDot:
		g.Set(p.From, PenDot)
	case editor.PenLine:
		g.stroke(render.Stroke{From: p.From, To: p.To}, PenLine)
	case editor.PenCurve:
		g.stroke(render.Stroke{From: p.From, To: p.To, Control: p.Control, Curved: true}, PenLine)
	}
}

// line rasterizes the segment with Bresenham's algorithm in cell space.
// The segment is clipped to the grid first, so the walk is bounded by the
// grid size however far away the endpoints are.
func (g *Grid) line(a, b netwk.Point, r rune) {
	ax, ay := g.scale(a)
	bx, by := g.scale(b)
	ax, ay, bx, by, ok := clip(ax, ay, bx, by, float64(g.cols), float64(g.rows))
	if !ok {
		return
	}
	x0, y0 := floor(ax), floor(ay)
	x1, y1 := floor(bx), floor(by)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < g.cols && y0 < g.rows {
			g.cells[y0][x0] = r
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// scale maps p into continuous cell space without clipping.
func (g *Grid) scale(p netwk.Point) (float64, float64) {
	x := float64(p.X) * float64(g.cols) / float64(g.width)
	y := float64(p.Y) * float64(g.rows) / float64(g.height)
	return x, y
}

// clip trims the segment (x0,y0)-(x1,y1) to the box [0,w]x[0,h] using
// Liang-Barsky. ok is false when no part of the segment is inside, or when
// an endpoint is not finite.
func clip(x0, y0, x1, y1, w, h float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	for _, v := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, edge := range [...][2]float64{{-dx, x0}, {dx, w - x0}, {-dy, y0}, {dy, h - y0}} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func floor(v float64) int {
	return int(math.Floor(v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
