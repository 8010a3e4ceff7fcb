package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/reqkit/core/logger"
)

// Wildcard registers a listener for every event. Wildcard listeners run after
// the listeners registered for the event's name.
const Wildcard = "*"

// Dispatcher delivers events to listeners synchronously, one listener at a
// time, in registration order. Registration is safe for concurrent use;
// a single event must not be dispatched concurrently.
type Dispatcher struct {
	mu         sync.RWMutex
	listeners  map[string][]Listener
	middleware []Middleware
	logger     *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.logger = log
		}
	}
}

// WithMiddleware wraps every listener registered after this option is applied.
// The first middleware is the outermost.
func WithMiddleware(middleware ...Middleware) DispatcherOption {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, middleware...)
	}
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		listeners: make(map[string][]Listener),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Listen registers listeners for the named event, or for all events when name is Wildcard.
// Nil listeners are ignored.
func (d *Dispatcher) Listen(name string, listeners ...Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, l := range listeners {
		if l == nil {
			continue
		}
		d.listeners[name] = append(d.listeners[name], chainMiddleware(l, d.middleware))
	}
}

// ListenFunc registers fn for the named event.
func (d *Dispatcher) ListenFunc(name string, fn func(ctx context.Context, evt *Event) error) {
	if fn == nil {
		return
	}
	d.Listen(name, ListenerFunc(fn))
}

// HasListeners reports whether any listener, wildcard included, would receive an event named name.
func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.listeners[name]) > 0 || len(d.listeners[Wildcard]) > 0
}

// Dispatch invokes the listeners for evt in order.
//
// After each listener the stop flag is checked and dispatch ends once it is
// set; an event stopped before dispatch reaches no listener. Listener errors
// do not interrupt propagation and are returned joined. A panicking listener
// is recovered and reported as ErrListenerPanic. A cancelled context ends
// dispatch before the next listener and its error is included in the result.
func (d *Dispatcher) Dispatch(ctx context.Context, evt *Event) error {
	if evt == nil {
		return ErrNilEvent
	}

	listeners := d.listenersFor(evt.Name())
	if len(listeners) == 0 || evt.IsStopped() {
		return nil
	}

	ctx = WithEventMeta(ctx, evt)

	var errs []error
	for i, l := range listeners {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := d.invoke(ctx, l, evt); err != nil {
			errs = append(errs, err)
		}

		if evt.IsStopped() {
			d.logger.LogAttrs(ctx, slog.LevelDebug, "event propagation stopped",
				logger.Component("event"),
				logger.Event(evt.Name()),
				logger.EventID(evt.ID()),
				logger.Count("skipped", len(listeners)-i-1),
			)
			break
		}
	}

	if len(errs) > 0 {
		d.logger.LogAttrs(ctx, slog.LevelError, "event dispatch failed",
			logger.Component("event"),
			logger.Event(evt.Name()),
			logger.EventID(evt.ID()),
			logger.Errors(errs...),
		)
	}

	return errors.Join(errs...)
}

func (d *Dispatcher) listenersFor(name string) []Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()

	named := d.listeners[name]
	var wildcard []Listener
	if name != Wildcard {
		wildcard = d.listeners[Wildcard]
	}

	out := make([]Listener, 0, len(named)+len(wildcard))
	out = append(out, named...)
	return append(out, wildcard...)
}

func (d *Dispatcher) invoke(ctx context.Context, l Listener, evt *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrListenerPanic, evt.Name(), r)
		}
	}()
	return l.Handle(ctx, evt)
}
