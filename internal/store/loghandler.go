package store

import (
	"context"
	"log/slog"
	"strings"
)

// LogHandler forwards records to next and also persists records at or above
// min into a LogStore, so /api/health can show recent failures.
type LogHandler struct {
	next  slog.Handler
	store *LogStore
	min   slog.Level
	attrs []slog.Attr
}

// NewLogHandler wraps next. Records at min or above are also written to store.
func NewLogHandler(next slog.Handler, store *LogStore, min slog.Level) *LogHandler {
	return &LogHandler{next: next, store: store, min: min}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.min || h.next.Enabled(ctx, level)
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}
	if r.Level < h.min || h.store == nil {
		return err
	}

	component := "app"
	var detail []string
	visit := func(a slog.Attr) bool {
		switch a.Key {
		case "component":
			component = a.Value.String()
		case "error", "details":
			detail = append(detail, a.Value.String())
		}
		return true
	}
	for _, a := range h.attrs {
		visit(a)
	}
	r.Attrs(visit)

	msg := r.Message
	if len(detail) > 0 {
		msg += ": " + strings.Join(detail, "; ")
	}
	_ = h.store.Log(strings.ToLower(r.Level.String()), component, msg)
	return err
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogHandler{next: h.next.WithAttrs(attrs), store: h.store, min: h.min, attrs: merged}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{next: h.next.WithGroup(name), store: h.store, min: h.min, attrs: h.attrs}
}
