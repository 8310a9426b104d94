// Package observability provides hooks for render metrics.
//
// Library packages report events through the registered hooks without
// depending on a metrics backend. The server registers a Prometheus-backed
// implementation at startup; everything else sees the no-op default.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	ax, err := chart.Plot(nil, opts)
//	observability.Render().OnPlot(ctx, chart.Len(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	// OnPlot records drawing a chart of the given number of bars.
	OnPlot(ctx context.Context, bars int, duration time.Duration, err error)

	// OnExport records exporting a figure in one format.
	OnExport(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnPlot(context.Context, int, time.Duration, error)           {}
func (NoopRenderHooks) OnExport(context.Context, string, int, time.Duration, error) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores the no-op hooks. It exists for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
}
