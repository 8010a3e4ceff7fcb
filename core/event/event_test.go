package event_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/core/event"
	"github.com/dmitrymomot/reqkit/core/params"
)

func TestNew(t *testing.T) {
	t.Parallel()

	before := time.Now()
	evt := event.New("user.created", map[string]any{"name": "alice", "id": 7})

	assert.Equal(t, "user.created", evt.Name())
	_, err := uuid.Parse(evt.ID())
	require.NoError(t, err)
	assert.False(t, evt.CreatedAt().Before(before))
	assert.Equal(t, []string{"id", "name"}, evt.Names())
	assert.Equal(t, "7", evt.Get("id", params.Null()).String())

	other := event.New("user.created", nil)
	assert.NotEqual(t, evt.ID(), other.ID())
	assert.False(t, other.HasAny())
}

func TestStop(t *testing.T) {
	t.Parallel()

	evt := event.New("x", nil)
	assert.False(t, evt.IsStopped())

	assert.Same(t, evt, evt.Stop())
	assert.True(t, evt.IsStopped())

	evt.Stop()
	evt.Set("k", params.String("v"))
	evt.Remove("k")
	evt.Replace(map[string]params.Value{"a": params.Int(1)})
	evt.RemoveAll()
	assert.True(t, evt.IsStopped(), "payload mutations do not clear the stop flag")
}

func TestPayloadAccessors(t *testing.T) {
	t.Parallel()

	evt := event.New("x", map[string]any{"a": 1})

	t.Run("missing key returns default", func(t *testing.T) {
		def := params.String("fallback")
		assert.Equal(t, def, evt.Get("missing", def))
		assert.False(t, evt.Has("missing"))
		_, ok := evt.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		evt.Set("b", params.Bool(true))
		assert.True(t, evt.Has("b"))
		b, ok := evt.Get("b", params.Null()).AsBool()
		assert.True(t, ok)
		assert.True(t, b)
	})

	t.Run("replace merges", func(t *testing.T) {
		evt.Replace(map[string]params.Value{"a": params.Int(2), "c": params.Null()})
		assert.Equal(t, "2", evt.Get("a", params.Null()).String())
		assert.True(t, evt.Has("c"))
		assert.True(t, evt.Has("b"))
	})

	t.Run("all is a snapshot", func(t *testing.T) {
		all := evt.All()
		require.NotEmpty(t, all)
		all[0].Value = params.String("changed")
		assert.NotEqual(t, "changed", evt.Get(all[0].Key, params.Null()).String())
	})

	t.Run("params view is read only", func(t *testing.T) {
		view := evt.Params()
		assert.Equal(t, evt.Names(), view.Names())
		_, isStore := view.(*params.Store)
		assert.False(t, isStore)
	})

	t.Run("remove all twice", func(t *testing.T) {
		evt.RemoveAll()
		assert.False(t, evt.HasAny())
		evt.RemoveAll()
		assert.False(t, evt.HasAny())
		assert.Empty(t, evt.Names())
	})
}
