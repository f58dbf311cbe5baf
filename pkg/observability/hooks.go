// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about card placement, scene input, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages
// never import a logging or metrics backend through this package.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacementHooks(&myPlacementHooks{})
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	pos, err := engine.FindPosition(w, h, placed, params)
//	observability.Placement().OnSearch(ctx, err == nil, pos.Attempts)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from the card set.
type PlacementHooks interface {
	// OnSearch records one position search and how many samples it drew.
	OnSearch(ctx context.Context, found bool, attempts int)

	// OnEvict records the removal of the oldest card.
	OnEvict(ctx context.Context, cardID string)
}

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from the scene controller.
type SceneHooks interface {
	// OnScroll records a scroll event and whether the throttle let it through.
	OnScroll(ctx context.Context, accepted bool)

	// OnResize records a resize event and whether the throttle let it through.
	OnResize(ctx context.Context, accepted bool, width, height float64)

	// OnRelayout records a completed relayout pass.
	OnRelayout(ctx context.Context, moved, total int, duration time.Duration)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from output sinks.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, cards int)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnSearch(context.Context, bool, int) {}
func (NoopPlacementHooks) OnEvict(context.Context, string)     {}

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnScroll(context.Context, bool)                      {}
func (NoopSceneHooks) OnResize(context.Context, bool, float64, float64)    {}
func (NoopSceneHooks) OnRelayout(context.Context, int, int, time.Duration) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                      {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placementHooks PlacementHooks = NoopPlacementHooks{}
	sceneHooks     SceneHooks     = NoopSceneHooks{}
	renderHooks    RenderHooks    = NoopRenderHooks{}
	hooksMu        sync.RWMutex
)

// SetPlacementHooks registers custom placement hooks.
// This should be called once at application startup before any cards are placed.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// SetSceneHooks registers custom scene hooks.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
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

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
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
	placementHooks = NoopPlacementHooks{}
	sceneHooks = NoopSceneHooks{}
	renderHooks = NoopRenderHooks{}
}
