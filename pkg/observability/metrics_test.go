package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type countingHooks struct {
	messages, changes, starts, completes int
}

func (c *countingHooks) OnMessage(string, string, error)            { c.messages++ }
func (c *countingHooks) OnGraphChanged(string, int, int)            { c.changes++ }
func (c *countingHooks) OnRenderStart(context.Context, string, int) { c.starts++ }
func (c *countingHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
	c.completes++
}

// sample returns the value of the series name with the given label values,
// reading counters, gauges and histogram sample counts alike.
func sample(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("series %s%v not found", name, labels)
	return 0
}

func TestMetricsEditorEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	next := &countingHooks{}
	m := NewMetrics(reg, next, nil)

	m.OnMessage("s", "add-node", nil)
	m.OnMessage("s", "add-node", nil)
	m.OnMessage("s", "add-edge", errors.New("self loop"))
	m.OnGraphChanged("s", 2, 0)

	tests := []struct {
		name   string
		series string
		labels map[string]string
		want   float64
	}{
		{"ok messages", "ntwk_editor_messages_total", map[string]string{"kind": "add-node", "result": "ok"}, 2},
		{"failed messages", "ntwk_editor_messages_total", map[string]string{"kind": "add-edge", "result": "error"}, 1},
		{"nodes", "ntwk_graph_nodes", nil, 2},
		{"edges", "ntwk_graph_edges", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sample(t, reg, tt.series, tt.labels); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.series, got, tt.want)
			}
		})
	}

	if next.messages != 3 || next.changes != 1 {
		t.Errorf("forwarded %d messages, %d changes, want 3, 1", next.messages, next.changes)
	}
}

func TestMetricsRenderEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	next := &countingHooks{}
	m := NewMetrics(reg, nil, next)
	ctx := context.Background()

	m.OnRenderStart(ctx, "svg", 3)
	m.OnRenderComplete(ctx, "svg", 1000, 2*time.Millisecond, nil)
	m.OnRenderStart(ctx, "pdf", 3)
	m.OnRenderComplete(ctx, "pdf", 0, time.Millisecond, errors.New("no rsvg"))

	if got := sample(t, reg, "ntwk_renders_total", map[string]string{"format": "svg", "result": "ok"}); got != 1 {
		t.Errorf("svg renders = %v, want 1", got)
	}
	if got := sample(t, reg, "ntwk_renders_total", map[string]string{"format": "pdf", "result": "error"}); got != 1 {
		t.Errorf("failed pdf renders = %v, want 1", got)
	}
	if got := sample(t, reg, "ntwk_render_bytes_total", map[string]string{"format": "svg"}); got != 1000 {
		t.Errorf("svg bytes = %v, want 1000", got)
	}
	if got := sample(t, reg, "ntwk_render_duration_seconds", map[string]string{"format": "svg"}); got != 1 {
		t.Errorf("svg latency samples = %v, want 1", got)
	}
	if next.starts != 2 || next.completes != 2 {
		t.Errorf("forwarded %d starts, %d completes, want 2, 2", next.starts, next.completes)
	}
}

func TestMetricsAsGlobalHooks(t *testing.T) {
	Reset()
	defer Reset()

	m := NewMetrics(prometheus.NewRegistry(), Editor(), Render())
	SetEditorHooks(m)
	SetRenderHooks(m)

	if Editor() != EditorHooks(m) || Render() != RenderHooks(m) {
		t.Error("metrics should be installable as both hook kinds")
	}
}
