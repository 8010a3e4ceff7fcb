package params_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/core/params"
)

func TestStore_GetMissingKey(t *testing.T) {
	t.Parallel()

	s := params.New(map[string]params.Value{"a": params.String("1")})

	tests := []struct {
		key string
		def params.Value
	}{
		{"missing", params.String("fallback")},
		{"other", params.Null()},
		{"", params.Int(7)},
	}

	for _, tt := range tests {
		assert.True(t, tt.def.Equal(s.Get(tt.key, tt.def)), "key %q", tt.key)
		assert.False(t, s.Has(tt.key))
		_, ok := s.Lookup(tt.key)
		assert.False(t, ok)
	}
}

func TestStore_SetGetRemove(t *testing.T) {
	t.Parallel()

	s := params.New(nil)
	assert.False(t, s.HasAny())

	s.Set("name", params.String("alice"))
	got := s.Get("name", params.Null())
	str, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "alice", str)
	assert.True(t, s.Has("name"))
	assert.True(t, s.HasAny())

	s.Remove("name")
	assert.False(t, s.Has("name"))
	assert.False(t, s.HasAny())

	// removing an absent key is a no-op
	s.Remove("name")
	assert.Equal(t, 0, s.Len())
}

func TestStore_NullIsDistinguishableOnlyByHas(t *testing.T) {
	t.Parallel()

	s := params.New(nil)
	s.Set("empty", params.Null())

	assert.True(t, s.Get("empty", params.Null()).IsNull())
	assert.True(t, s.Get("absent", params.Null()).IsNull())
	assert.True(t, s.Has("empty"))
	assert.False(t, s.Has("absent"))
}

func TestStore_OrderPreserved(t *testing.T) {
	t.Parallel()

	s := params.FromEntries(
		params.Entry{Key: "c", Value: params.Int(1)},
		params.Entry{Key: "a", Value: params.Int(2)},
		params.Entry{Key: "b", Value: params.Int(3)},
	)
	assert.Equal(t, []string{"c", "a", "b"}, s.Names())

	// overwrite keeps position
	s.Set("a", params.Int(20))
	assert.Equal(t, []string{"c", "a", "b"}, s.Names())

	// insert appends
	s.Set("d", params.Int(4))
	assert.Equal(t, []string{"c", "a", "b", "d"}, s.Names())

	s.Remove("a")
	assert.Equal(t, []string{"c", "b", "d"}, s.Names())

	for _, name := range s.Names() {
		assert.True(t, s.Has(name))
	}
	assert.Len(t, s.Names(), s.Len())
}

func TestStore_ReplaceMerges(t *testing.T) {
	t.Parallel()

	s := params.FromEntries(
		params.Entry{Key: "keep", Value: params.String("k")},
		params.Entry{Key: "over", Value: params.String("old")},
	)

	s.Replace(map[string]params.Value{
		"over": params.String("new"),
		"z":    params.Int(1),
		"y":    params.Int(2),
	})

	assert.Equal(t, []string{"keep", "over", "y", "z"}, s.Names())
	assert.Equal(t, "k", s.Get("keep", params.Null()).String())
	assert.Equal(t, "new", s.Get("over", params.Null()).String())
}

func TestStore_ReplaceEmptyIsNoop(t *testing.T) {
	t.Parallel()

	s := params.FromEntries(params.Entry{Key: "a", Value: params.Int(1)})
	s.Replace(map[string]params.Value{})
	s.Replace(nil)

	assert.Equal(t, []string{"a"}, s.Names())
	assert.Equal(t, "1", s.Get("a", params.Null()).String())
}

func TestStore_RemoveAllIdempotent(t *testing.T) {
	t.Parallel()

	s := params.FromMap(map[string]any{"a": 1, "b": "two"})
	require.Equal(t, 2, s.Len())

	s.RemoveAll()
	assert.False(t, s.HasAny())
	assert.Empty(t, s.Names())

	s.RemoveAll()
	assert.False(t, s.HasAny())
	assert.Empty(t, s.Names())

	s.Set("c", params.Bool(true))
	assert.Equal(t, []string{"c"}, s.Names())
}

func TestStore_Merge(t *testing.T) {
	t.Parallel()

	dst := params.FromEntries(params.Entry{Key: "a", Value: params.Int(1)})
	src := params.FromEntries(
		params.Entry{Key: "z", Value: params.Int(26)},
		params.Entry{Key: "a", Value: params.Int(100)},
		params.Entry{Key: "m", Value: params.Int(13)},
	)

	dst.Merge(src)
	dst.Merge(nil)

	assert.Equal(t, []string{"a", "z", "m"}, dst.Names())
	assert.Equal(t, "100", dst.Get("a", params.Null()).String())
}

func TestStore_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	nested := params.FromEntries(params.Entry{Key: "x", Value: params.Int(1)})
	s := params.FromEntries(params.Entry{Key: "nested", Value: params.Map(nested)})

	all := s.All()
	require.Len(t, all, 1)
	m, ok := all[0].Value.AsMap()
	require.True(t, ok)
	m.Set("x", params.Int(2))
	m.Set("y", params.Int(3))

	live, _ := s.Get("nested", params.Null()).AsMap()
	assert.Equal(t, []string{"x"}, live.Names())
	assert.Equal(t, "1", live.Get("x", params.Null()).String())

	snap := s.Map()
	delete(snap, "nested")
	assert.True(t, s.Has("nested"))

	names := s.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"nested"}, s.Names())
}

func TestStore_ReadOnly(t *testing.T) {
	t.Parallel()

	s := params.FromMap(map[string]any{"session": "abc"})
	r := s.ReadOnly()

	_, isStore := r.(*params.Store)
	assert.False(t, isStore, "read-only view must not expose the store")
	assert.True(t, r.Has("session"))
	assert.Equal(t, "abc", r.Get("session", params.Null()).String())

	s.Set("theme", params.String("dark"))
	assert.True(t, r.Has("theme"), "view reflects the underlying store")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"session":"abc","theme":"dark"}`, string(data))
}

func TestStore_FromValues(t *testing.T) {
	t.Parallel()

	s := params.FromValues(url.Values{
		"b":    {"2"},
		"a":    {"1"},
		"tags": {"x", "y"},
	})

	assert.Equal(t, []string{"a", "b", "tags"}, s.Names())
	assert.Equal(t, params.KindString, s.Get("a", params.Null()).Kind())

	tags, ok := s.Get("tags", params.Null()).AsList()
	require.True(t, ok)
	require.Len(t, tags, 2)
	assert.Equal(t, "x", tags[0].String())
	assert.Equal(t, "y", tags[1].String())
}

func TestStore_JSON(t *testing.T) {
	t.Parallel()

	s := params.FromEntries(
		params.Entry{Key: "z", Value: params.Int(1)},
		params.Entry{Key: "a", Value: params.Strings("x", "y")},
		params.Entry{Key: "n", Value: params.Null()},
	)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":["x","y"],"n":null}`, string(data))

	var decoded params.Store
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"z", "a", "n"}, decoded.Names())
	assert.True(t, decoded.Get("n", params.String("x")).IsNull())

	err = json.Unmarshal([]byte(`[1,2]`), &decoded)
	require.ErrorIs(t, err, params.ErrNotObject)
}

func TestStore_ZeroValueUsable(t *testing.T) {
	t.Parallel()

	var s params.Store
	assert.False(t, s.HasAny())
	s.Set("a", params.Int(1))
	assert.True(t, s.Has("a"))
	s.RemoveAll()
	assert.False(t, s.Has("a"))
}
