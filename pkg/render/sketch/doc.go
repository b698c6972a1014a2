// Package sketch renders a scene as the editor canvas looks: filled dots
// for nodes, straight or quadratic strokes for connections, an outline
// around the canvas and, optionally, the pen preview.
//
//	svg := sketch.RenderSVG(render.FromGraph(g),
//	    sketch.WithSize(500, 600),
//	    sketch.WithNodeRadius(5),
//	)
//
// The output is plain SVG 1.1 with no scripts, suitable for [render.ToPDF]
// and [render.ToPNG].
//
// [render.ToPDF]: github.com/ntwkui/ntwk/pkg/render.ToPDF
// [render.ToPNG]: github.com/ntwkui/ntwk/pkg/render.ToPNG
package sketch
