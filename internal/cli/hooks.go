package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ntwkui/ntwk/pkg/observability"
)

// logHooks reports editor and render events to the CLI logger at debug
// level; failures are logged as warnings.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetEditorHooks(h)
	observability.SetRenderHooks(h)
}

func (h logHooks) OnMessage(session, kind string, err error) {
	if err != nil {
		h.logger.Warn("message rejected", "session", short(session), "kind", kind, "err", err)
		return
	}
	h.logger.Debug("message", "session", short(session), "kind", kind)
}

func (h logHooks) OnGraphChanged(session string, nodes, edges int) {
	h.logger.Debug("graph changed", "session", short(session), "nodes", nodes, "edges", edges)
}

func (h logHooks) OnRenderStart(_ context.Context, format string, nodeCount int) {
	h.logger.Debug("render start", "format", format, "nodes", nodeCount)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render done", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

// short trims a session uuid to its first block for log lines.
func short(session string) string {
	if len(session) > 8 {
		return session[:8]
	}
	return session
}
