package sketch

import (
	"bytes"
	"fmt"

	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/render"
)

const (
	DefaultWidth       = 500
	DefaultHeight      = 600
	DefaultNodeRadius  = 5.0
	DefaultStrokeWidth = 2.0
)

type Option func(*renderer)

type renderer struct {
	width, height float64
	radius        float64
	strokeWidth   float64
	nodeColor     string
	edgeColor     string
	background    string
	preview       bool
}

func WithSize(w, h float64) Option      { return func(r *renderer) { r.width, r.height = w, h } }
func WithNodeRadius(rad float64) Option { return func(r *renderer) { r.radius = rad } }
func WithStrokeWidth(w float64) Option  { return func(r *renderer) { r.strokeWidth = w } }
func WithPreview() Option               { return func(r *renderer) { r.preview = true } }

// WithColors sets node fill, edge stroke and background colors. Empty
// strings keep the current value.
func WithColors(node, edge, background string) Option {
	return func(r *renderer) {
		if node != "" {
			r.nodeColor = node
		}
		if edge != "" {
			r.edgeColor = edge
		}
		if background != "" {
			r.background = background
		}
	}
}

// RenderSVG draws the scene. Strokes are drawn before dots so nodes sit on
// top of their connections. The pen preview is drawn only with WithPreview.
func RenderSVG(s render.Scene, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		r.width, r.height, r.background, r.edgeColor, r.strokeWidth)

	buf.WriteString(`  <g class="edges" fill="none">` + "\n")
	for _, st := range s.Strokes {
		r.renderStroke(&buf, st, "")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, d := range s.Dots {
		fmt.Fprintf(&buf, `    <circle id="node-%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			d.Name, d.Center.X, d.Center.Y, r.radius, r.nodeColor)
	}
	buf.WriteString("  </g>\n")

	if r.preview && s.Pen != nil {
		r.renderPen(&buf, *s.Pen)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:       DefaultWidth,
		height:      DefaultHeight,
		radius:      DefaultNodeRadius,
		strokeWidth: DefaultStrokeWidth,
		nodeColor:   "#000000",
		edgeColor:   "#000000",
		background:  "#ffffff",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *renderer) renderStroke(buf *bytes.Buffer, st render.Stroke, extra string) {
	if st.Curved {
		fmt.Fprintf(buf, `    <path d="M %.1f %.1f Q %.1f %.1f %.1f %.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			st.From.X, st.From.Y, st.Control.X, st.Control.Y, st.To.X, st.To.Y, r.edgeColor, r.strokeWidth, extra)
		return
	}
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		st.From.X, st.From.Y, st.To.X, st.To.Y, r.edgeColor, r.strokeWidth, extra)
}

func (r *renderer) renderPen(buf *bytes.Buffer, pen editor.Pen) {
	const dashed = ` stroke-dasharray="4 3" opacity="0.6"`
	buf.WriteString(`  <g class="preview" fill="none">` + "\n")
	switch pen.Kind {
	case editor.PenDot:
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>`+"\n",
			pen.From.X, pen.From.Y, r.radius, r.nodeColor, dashed)
	case editor.PenLine:
		r.renderStroke(buf, render.Stroke{From: pen.From, To: pen.To}, dashed)
	case editor.PenCurve:
		r.renderStroke(buf, render.Stroke{From: pen.From, To: pen.To, Control: pen.Control, Curved: true}, dashed)
	}
	buf.WriteString("  </g>\n")
}
