// Package render turns a network graph into drawable output.
//
// # Overview
//
// [FromGraph] flattens a [netwk.Graph] into a [Scene]: one [Dot] per node
// and one [Stroke] per connection. Every output format is drawn from a
// scene, so they all agree on what is on the canvas:
//
//   - Hand-drawn canvas SVG (in [sketch] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//   - Character grids for terminals (in [raster] subpackage)
//
// Connections are stored on both endpoints, and the scene strokes each one
// from its owner, so an edge between two nodes appears twice. Curved strokes
// are quadratic Béziers; [QuadAt] evaluates one and [Flatten] samples it
// into a polyline for renderers without native curves.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sketch.RenderSVG(render.FromGraph(g))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [sketch]: github.com/ntwkui/ntwk/pkg/render/sketch
// [nodelink]: github.com/ntwkui/ntwk/pkg/render/nodelink
// [raster]: github.com/ntwkui/ntwk/pkg/render/raster
package render
