package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/reqkit/core/logger"
)

// Listener reacts to dispatched events.
type Listener interface {
	Handle(ctx context.Context, evt *Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, evt *Event) error

// Handle calls f(ctx, evt).
func (f ListenerFunc) Handle(ctx context.Context, evt *Event) error {
	return f(ctx, evt)
}

// Middleware wraps a Listener to add additional functionality.
type Middleware func(Listener) Listener

// chainMiddleware wraps l so that the first middleware runs first.
func chainMiddleware(l Listener, middleware []Middleware) Listener {
	for i := len(middleware) - 1; i >= 0; i-- {
		l = middleware[i](l)
	}
	return l
}

// LoggingMiddleware logs each listener invocation with its duration and error.
//
//	d := event.NewDispatcher(
//	    event.WithMiddleware(event.LoggingMiddleware(log)),
//	)
func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(next Listener) Listener {
		return ListenerFunc(func(ctx context.Context, evt *Event) error {
			start := time.Now()

			err := next.Handle(ctx, evt)

			attrs := []slog.Attr{
				logger.Component("event"),
				logger.Event(evt.Name()),
				logger.EventID(evt.ID()),
				logger.Elapsed(start),
			}
			if err != nil {
				log.LogAttrs(ctx, slog.LevelError, "event listener failed", append(attrs, logger.Error(err))...)
				return err
			}

			log.LogAttrs(ctx, slog.LevelDebug, "event listener completed", attrs...)
			return nil
		})
	}
}
