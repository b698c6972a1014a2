// Package nodelink renders network graphs as Graphviz node-link diagrams.
//
// # Overview
//
// Nodes keep the positions they were placed at: [ToDOT] pins every node
// with pos="x,y!" and [RenderSVG] lays the graph out with neato, which
// honors pinned positions. Canvas y grows downwards, Graphviz y grows
// upwards, so y is negated on the way out.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The graph is undirected (graph G, edges written with --). Each edge is
// written once even though both endpoints hold it. Graphviz has no notion
// of a quadratic control point, so curved edges are drawn straight and keep
// their control point in a comment="ctl=x,y" attribute for other tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
