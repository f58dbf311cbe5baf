package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbitcards/pkg/observability"
)

// logHooks reports observability events as debug logs.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PlacementHooks = (*logHooks)(nil)
	_ observability.SceneHooks     = (*logHooks)(nil)
	_ observability.RenderHooks    = (*logHooks)(nil)
)

func (h *logHooks) OnSearch(_ context.Context, found bool, attempts int) {
	h.logger.Debug("placement search", "found", found, "attempts", attempts)
}

func (h *logHooks) OnEvict(_ context.Context, cardID string) {
	h.logger.Debug("card evicted", "id", cardID)
}

func (h *logHooks) OnScroll(_ context.Context, accepted bool) {
	h.logger.Debug("scroll", "accepted", accepted)
}

func (h *logHooks) OnResize(_ context.Context, accepted bool, width, height float64) {
	h.logger.Debug("resize", "accepted", accepted, "width", width, "height", height)
}

func (h *logHooks) OnRelayout(_ context.Context, moved, total int, d time.Duration) {
	h.logger.Debug("relayout", "moved", moved, "cards", total, "took", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string, cards int) {
	h.logger.Debug("render start", "format", format, "cards", cards)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "took", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "took", d)
}
