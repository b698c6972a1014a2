package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ntwkui/ntwk/pkg/config"
	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/errors"
	"github.com/ntwkui/ntwk/pkg/gesture"
	"github.com/ntwkui/ntwk/pkg/netwk"
	"github.com/ntwkui/ntwk/pkg/observability"
	"github.com/ntwkui/ntwk/pkg/render"
	"github.com/ntwkui/ntwk/pkg/render/nodelink"
	"github.com/ntwkui/ntwk/pkg/render/raster"
	"github.com/ntwkui/ntwk/pkg/render/sketch"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
	formatDOT = "dot"
	formatTXT = "txt"
)

// Drawing styles for svg, png and pdf.
const (
	styleSketch   = "sketch"
	styleNodelink = "nodelink"
)

var (
	renderFormats = []string{formatSVG, formatPNG, formatPDF, formatDOT, formatTXT}
	renderStyles  = []string{styleSketch, styleNodelink}
)

// renderOpts holds options for the render command.
type renderOpts struct {
	output string
	format string
	style  string
	scale  float64
	cols   int
	rows   int
	labels bool
}

// renderCommand creates the render command for replaying gesture scripts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: formatSVG,
		style:  styleSketch,
		scale:  2.0,
		cols:   80,
		rows:   40,
	}

	cmd := &cobra.Command{
		Use:   "render [script]",
		Short: "Replay a gesture script and render the resulting network",
		Long: `Replay a gesture script and render the resulting network.

The script is a TOML file of [[gesture]] entries (mode, click or clear),
as saved by "ntwk tui --record" or the canvas server.

Formats:
  svg   Canvas drawing (default)
  png   Canvas drawing rasterized in-process (sketch) or via librsvg (nodelink)
  pdf   Canvas drawing converted with librsvg
  dot   Graphviz source with pinned node positions
  txt   Character grid, as shown in the terminal editor`,
		Example: `  # Render a script as SVG next to it
  ntwk render triangle.toml

  # Graphviz diagram as PNG
  ntwk render triangle.toml -f png --style nodelink -o triangle.png

  # Print a text preview to stdout
  ntwk render triangle.toml -f txt -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: script name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(renderFormats, ", "))
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "drawing style: "+strings.Join(renderStyles, ", "))
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png scale factor")
	cmd.Flags().IntVar(&opts.cols, "cols", opts.cols, "txt grid width in characters")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "txt grid height in characters")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "print node names (nodelink style)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	if err := validateRenderOpts(opts); err != nil {
		return err
	}

	script, err := gesture.Load(path)
	if err != nil {
		return err
	}

	ed := editor.New()
	logger := sessionLogger(loggerFromContext(ctx), ed.ID())
	replay := startStage(logger)
	stats, err := script.Replay(ed)
	if err != nil {
		return err
	}
	replay.done("Replayed script", "gestures", stats.Gestures, "messages", stats.Messages, "ignored", stats.Ignored)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	if opts.output != "-" {
		spinner.Start()
	}
	draw := startStage(logger)
	data, err := renderGraph(ctx, ed.Graph(), c.Config, opts)
	if err != nil {
		if opts.output != "-" {
			spinner.StopWithError(fmt.Sprintf("Rendering %s failed", opts.format))
		}
		return err
	}
	if opts.output != "-" {
		spinner.Stop()
	}
	draw.done("Rendered "+opts.format, "nodes", ed.Graph().NodeCount(), "bytes", len(data))

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}
	if err := errors.ValidatePath(out); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
	}

	printSuccess("Rendered %s", StyleHighlight.Render(opts.format))
	printFile(out)
	printStats(ed.Graph().NodeCount(), ed.Graph().EdgeCount())
	return nil
}

func validateRenderOpts(opts renderOpts) error {
	if err := errors.ValidateFormat(opts.format, renderFormats); err != nil {
		return err
	}
	if err := errors.ValidateFormat(opts.style, renderStyles); err != nil {
		return err
	}
	if opts.format == formatPNG && opts.scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--scale must be positive")
	}
	if opts.format == formatTXT && (opts.cols < 1 || opts.rows < 1) {
		return errors.New(errors.ErrCodeInvalidInput, "--cols and --rows must be positive")
	}
	return nil
}

// renderGraph produces the requested format, reporting to the render hooks.
func renderGraph(ctx context.Context, g *netwk.Graph, cfg *config.Config, opts renderOpts) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.format, g.NodeCount())
	start := time.Now()

	data, err := renderFormat(ctx, g, cfg, opts)

	hooks.OnRenderComplete(ctx, opts.format, len(data), time.Since(start), err)
	return data, err
}

func renderFormat(ctx context.Context, g *netwk.Graph, cfg *config.Config, opts renderOpts) ([]byte, error) {
	switch opts.format {
	case formatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Labels: opts.labels})), nil
	case formatTXT:
		grid := raster.Render(render.FromGraph(g), opts.cols, opts.rows,
			float32(cfg.Canvas.Width), float32(cfg.Canvas.Height))
		return []byte(grid.String() + "\n"), nil
	}

	if opts.style == styleNodelink {
		dot := nodelink.ToDOT(g, nodelink.Options{Labels: opts.labels})
		switch opts.format {
		case formatPNG:
			return nodelink.RenderPNG(ctx, dot, opts.scale)
		case formatPDF:
			return nodelink.RenderPDF(ctx, dot)
		default:
			return nodelink.RenderSVG(ctx, dot)
		}
	}

	scene := render.FromGraph(g)
	sketchOpts := sketchOptions(cfg)
	switch opts.format {
	case formatPNG:
		return sketch.RenderPNG(scene, opts.scale, sketchOpts...)
	case formatPDF:
		return render.ToPDF(ctx, sketch.RenderSVG(scene, sketchOpts...))
	default:
		return sketch.RenderSVG(scene, sketchOpts...), nil
	}
}

// sketchOptions maps config settings onto canvas drawing options.
func sketchOptions(cfg *config.Config) []sketch.Option {
	return []sketch.Option{
		sketch.WithSize(cfg.Canvas.Width, cfg.Canvas.Height),
		sketch.WithNodeRadius(cfg.Canvas.NodeRadius),
		sketch.WithStrokeWidth(cfg.Canvas.StrokeWidth),
		sketch.WithColors(cfg.Style.NodeColor, cfg.Style.EdgeColor, cfg.Style.Background),
	}
}
