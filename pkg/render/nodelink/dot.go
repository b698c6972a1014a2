package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels prints node names inside the nodes. When false, nodes are
	// small filled dots like on the canvas.
	Labels bool
}

// ToDOT converts a graph to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *netwk.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.14];\n")
	}
	buf.WriteString("\n")

	nodes := g.Nodes()
	index := make(map[*netwk.Node]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name(), strings.Join(fmtAttrs(n, opts.Labels), ", "))
	}

	buf.WriteString("\n")
	for i, n := range nodes {
		selfHalf := false
		for _, c := range n.Edges() {
			j, ok := index[c.Destination()]
			if !ok || j < i {
				continue
			}
			if j == i {
				// both halves of a self-loop sit on the same node
				selfHalf = !selfHalf
				if !selfHalf {
					continue
				}
			}
			fmt.Fprintf(&buf, "  %q -- %q%s;\n", n.Name(), c.Destination().Name(), fmtEdgeAttrs(c))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *netwk.Node, labels bool) []string {
	p := n.Pos()
	attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(p.X), fmtCoord(0 - p.Y))}
	if labels {
		attrs = append(attrs, fmt.Sprintf("label=%q", n.Name()))
	}
	return attrs
}

func fmtEdgeAttrs(c netwk.Connection) string {
	ctl, ok := c.Control()
	if !ok {
		return ""
	}
	return fmt.Sprintf(" [comment=\"ctl=%s,%s\"]", fmtCoord(ctl.X), fmtCoord(ctl.Y))
}

func fmtCoord(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the neato layout.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a unitless one
// so the diagram scales like the canvas SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
