package sketch

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/render"
)

// RenderPNG rasterizes the scene in-process. A scale of 2.0 produces a 2x
// resolution image. It draws the same marks as RenderSVG and needs no
// external tools.
func RenderPNG(s render.Scene, scale float64, opts ...Option) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	r := newRenderer(opts...)

	w, h := int(r.width*scale+0.5), int(r.height*scale+0.5)
	if w < 1 || h < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas too small: %dx%d px", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)
	dc.SetHexColor(r.background)
	dc.Clear()

	dc.SetLineWidth(r.strokeWidth)
	dc.SetHexColor(r.edgeColor)
	dc.DrawRectangle(0, 0, r.width, r.height)
	dc.Stroke()

	for _, st := range s.Strokes {
		r.pathStroke(dc, st)
		dc.Stroke()
	}

	dc.SetHexColor(r.nodeColor)
	for _, d := range s.Dots {
		dc.DrawCircle(float64(d.Center.X), float64(d.Center.Y), r.radius)
		dc.Fill()
	}

	if r.preview && s.Pen != nil {
		r.drawPen(dc, *s.Pen)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *renderer) pathStroke(dc *gg.Context, st render.Stroke) {
	dc.MoveTo(float64(st.From.X), float64(st.From.Y))
	if st.Curved {
		dc.QuadraticTo(float64(st.Control.X), float64(st.Control.Y), float64(st.To.X), float64(st.To.Y))
		return
	}
	dc.LineTo(float64(st.To.X), float64(st.To.Y))
}

func (r *renderer) drawPen(dc *gg.Context, pen editor.Pen) {
	dc.Push()
	defer dc.Pop()

	dc.SetDash(4, 3)
	dc.SetHexColor(r.edgeColor)
	switch pen.Kind {
	case editor.PenDot:
		dc.DrawCircle(float64(pen.From.X), float64(pen.From.Y), r.radius)
		dc.Stroke()
	case editor.PenLine:
		r.pathStroke(dc, render.Stroke{From: pen.From, To: pen.To})
		dc.Stroke()
	case editor.PenCurve:
		r.pathStroke(dc, render.Stroke{From: pen.From, To: pen.To, Control: pen.Control, Curved: true})
		dc.Stroke()
	}
}
