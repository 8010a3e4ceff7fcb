package event

import (
	"context"
	"time"
)

// Meta identifies the event a listener is handling.
type Meta struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type metaCtx struct{}

// WithEventMeta attaches the ID, name and creation time of evt to the context.
// Dispatch calls it before invoking listeners.
func WithEventMeta(ctx context.Context, evt *Event) context.Context {
	return context.WithValue(ctx, metaCtx{}, Meta{
		ID:        evt.ID(),
		Name:      evt.Name(),
		CreatedAt: evt.CreatedAt(),
	})
}

// MetaFromContext returns the event metadata attached by WithEventMeta.
func MetaFromContext(ctx context.Context) (Meta, bool) {
	m, ok := ctx.Value(metaCtx{}).(Meta)
	return m, ok
}

// EventID returns the ID of the event being handled, or "".
func EventID(ctx context.Context) string {
	m, _ := MetaFromContext(ctx)
	return m.ID
}

// EventName returns the name of the event being handled, or "".
func EventName(ctx context.Context) string {
	m, _ := MetaFromContext(ctx)
	return m.Name
}

// EventTime returns the creation time of the event being handled,
// or the zero time.
func EventTime(ctx context.Context) time.Time {
	m, _ := MetaFromContext(ctx)
	return m.CreatedAt
}
