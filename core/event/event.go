package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reqkit/core/params"
)

// Event is a named notification carrying a parameter payload and a stop flag.
// Listeners read and modify the payload; once a listener calls Stop the
// dispatcher invokes no further listeners.
//
// An Event is not safe for concurrent use.
type Event struct {
	id        string
	name      string
	createdAt time.Time
	stopped   bool
	params    *params.Store
}

// New creates an event with a generated ID and creation timestamp.
// Payload keys are stored in sorted order; values are converted with params.ValueOf.
//
//	evt := event.New("user.created", map[string]any{"id": 42})
func New(name string, payload map[string]any) *Event {
	return &Event{
		id:        uuid.New().String(),
		name:      name,
		createdAt: time.Now(),
		params:    params.FromMap(payload),
	}
}

// ID returns the unique event identifier.
func (e *Event) ID() string { return e.id }

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// CreatedAt returns when the event was created.
func (e *Event) CreatedAt() time.Time { return e.createdAt }

// Stop marks the event as stopped and returns it. Calling Stop again has no effect.
func (e *Event) Stop() *Event {
	e.stopped = true
	return e
}

// IsStopped reports whether Stop has been called.
func (e *Event) IsStopped() bool { return e.stopped }

// Params returns a read-only view of the payload.
func (e *Event) Params() params.Reader { return e.params.ReadOnly() }

// ============================================================================
// Payload
// ============================================================================

// Get returns the payload value for key, or def when absent.
func (e *Event) Get(key string, def params.Value) params.Value { return e.params.Get(key, def) }

// Lookup returns the payload value for key and whether it is present.
func (e *Event) Lookup(key string) (params.Value, bool) { return e.params.Lookup(key) }

// All returns a snapshot of the payload in order.
func (e *Event) All() []params.Entry { return e.params.All() }

// Names returns the payload keys in order.
func (e *Event) Names() []string { return e.params.Names() }

// Has reports whether key is present in the payload.
func (e *Event) Has(key string) bool { return e.params.Has(key) }

// HasAny reports whether the payload holds at least one entry.
func (e *Event) HasAny() bool { return e.params.HasAny() }

// Set stores value under key.
func (e *Event) Set(key string, value params.Value) { e.params.Set(key, value) }

// Remove deletes key from the payload.
func (e *Event) Remove(key string) { e.params.Remove(key) }

// RemoveAll clears the payload.
func (e *Event) RemoveAll() { e.params.RemoveAll() }

// Replace merges values into the payload, overwriting existing keys.
func (e *Event) Replace(values map[string]params.Value) { e.params.Replace(values) }
