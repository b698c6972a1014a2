// Package observability provides hooks for logging and metrics around the
// editor and the renderers.
//
// The graph model and the editor stay free of any logging backend: they
// report events to the hooks registered here, and the application decides at
// startup what to do with them.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, "svg", nodeCount)
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, "svg", len(out), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from an editor session.
//
// Editor calls are synchronous and carry no context; the session id
// identifies which editor emitted the event.
type EditorHooks interface {
	// OnMessage records a message applied to the graph and its outcome.
	OnMessage(session, kind string, err error)

	// OnGraphChanged records the graph size after a mutation.
	OnGraphChanged(session string, nodes, edges int)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the output renderers.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnMessage(string, string, error) {}
func (NoopEditorHooks) OnGraphChanged(string, int, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup before any editor is used.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	renderHooks = NoopRenderHooks{}
}
