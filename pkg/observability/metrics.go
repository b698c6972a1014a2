package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records editor and render events as Prometheus series and passes
// every event on to the hooks it wraps. It implements both EditorHooks and
// RenderHooks.
type Metrics struct {
	messages      *prometheus.CounterVec
	nodes         prometheus.Gauge
	edges         prometheus.Gauge
	renders       *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	renderBytes   *prometheus.CounterVec

	editor EditorHooks
	render RenderHooks
}

// NewMetrics creates the ntwk series, registers them with reg and forwards
// events to editor and render. Nil hooks are replaced with no-ops.
func NewMetrics(reg prometheus.Registerer, editor EditorHooks, render RenderHooks) *Metrics {
	if editor == nil {
		editor = NoopEditorHooks{}
	}
	if render == nil {
		render = NoopRenderHooks{}
	}

	m := &Metrics{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntwk_editor_messages_total",
				Help: "Editor messages applied, by kind and result",
			},
			[]string{"kind", "result"},
		),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ntwk_graph_nodes",
			Help: "Nodes in the most recently changed graph",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ntwk_graph_edges",
			Help: "Edges in the most recently changed graph",
		}),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntwk_renders_total",
				Help: "Renders completed, by format and result",
			},
			[]string{"format", "result"},
		),
		renderSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ntwk_render_duration_seconds",
				Help:    "Render latency by format",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"format"},
		),
		renderBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntwk_render_bytes_total",
				Help: "Bytes of rendered output by format",
			},
			[]string{"format"},
		),
		editor: editor,
		render: render,
	}

	reg.MustRegister(m.messages, m.nodes, m.edges, m.renders, m.renderSeconds, m.renderBytes)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnMessage(session, kind string, err error) {
	m.messages.WithLabelValues(kind, result(err)).Inc()
	m.editor.OnMessage(session, kind, err)
}

func (m *Metrics) OnGraphChanged(session string, nodes, edges int) {
	m.nodes.Set(float64(nodes))
	m.edges.Set(float64(edges))
	m.editor.OnGraphChanged(session, nodes, edges)
}

func (m *Metrics) OnRenderStart(ctx context.Context, format string, nodeCount int) {
	m.render.OnRenderStart(ctx, format, nodeCount)
}

func (m *Metrics) OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		m.renderSeconds.WithLabelValues(format).Observe(duration.Seconds())
		m.renderBytes.WithLabelValues(format).Add(float64(size))
	}
	m.render.OnRenderComplete(ctx, format, size, duration, err)
}
