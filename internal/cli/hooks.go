package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// debugHooks writes observability events to the debug log.
type debugHooks struct {
	logger *log.Logger
}

func (h *debugHooks) OnBuildStart(_ context.Context, kind string) {
	h.logger.Debug("build started", "kind", kind)
}

func (h *debugHooks) OnBuildComplete(_ context.Context, kind string, items int, d time.Duration, err error) {
	h.logger.Debug("build finished", "kind", kind, "items", items, "duration", d, "error", err)
}

func (h *debugHooks) OnRenderStart(_ context.Context, kind, format string) {
	h.logger.Debug("render started", "kind", kind, "format", format)
}

func (h *debugHooks) OnRenderComplete(_ context.Context, kind, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render finished", "kind", kind, "format", format, "bytes", size, "duration", d, "error", err)
}

func (h *debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *debugHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request started", "method", method, "route", route)
}

func (h *debugHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("request finished", "method", method, "route", route, "status", status, "duration", d)
}

func (h *debugHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Debug("request failed", "method", method, "route", route, "error", err)
}

func (h *debugHooks) OnMeasure(id, n, cut int) {
	h.logger.Debug("tag layout", "widget", id, "tags", n, "cut", cut)
}
