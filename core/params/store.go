package params

import (
	"bytes"
	"encoding/json"
	"net/url"
	"slices"
	"sort"
)

// Entry is a single key/value pair of a Store.
type Entry struct {
	Key   string
	Value Value
}

// Reader is the read-only view of a Store.
type Reader interface {
	Get(key string, def Value) Value
	Lookup(key string) (Value, bool)
	All() []Entry
	Map() map[string]Value
	Names() []string
	Has(key string) bool
	HasAny() bool
	Len() int
}

// Store is an ordered mapping from string keys to values.
// Keys are unique and enumerate in insertion order.
// A Store is not safe for concurrent use.
type Store struct {
	keys   []string
	values map[string]Value
}

var _ Reader = (*Store)(nil)

// New creates a store holding the given mapping.
// Keys are inserted in sorted order since Go maps are unordered.
func New(initial map[string]Value) *Store {
	s := &Store{values: make(map[string]Value, len(initial))}
	s.Replace(initial)
	return s
}

// FromEntries creates a store from ordered entries.
// A repeated key overwrites the earlier value and keeps its position.
func FromEntries(entries ...Entry) *Store {
	s := &Store{values: make(map[string]Value, len(entries))}
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
	return s
}

// FromMap creates a store from plain Go values converted with ValueOf.
func FromMap(initial map[string]any) *Store {
	s := &Store{values: make(map[string]Value, len(initial))}
	for _, k := range sortedKeys(initial) {
		s.Set(k, ValueOf(initial[k]))
	}
	return s
}

// FromValues creates a store from url.Values.
// Single values become strings, repeated values become lists of strings.
func FromValues(values url.Values) *Store {
	s := &Store{values: make(map[string]Value, len(values))}
	for _, k := range sortedKeys(values) {
		vs := values[k]
		switch len(vs) {
		case 0:
			s.Set(k, String(""))
		case 1:
			s.Set(k, String(vs[0]))
		default:
			s.Set(k, Strings(vs...))
		}
	}
	return s
}

// Get returns the value stored under key, or def if the key is absent.
// A stored null is returned as null; use Has to tell it apart from absence.
func (s *Store) Get(key string, def Value) Value {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Lookup returns the value stored under key and whether it was present.
func (s *Store) Lookup(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// All returns an ordered snapshot of the store.
// Values are deep-copied: changing the snapshot never affects the store.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.keys))
	for i, k := range s.keys {
		out[i] = Entry{Key: k, Value: s.values[k].Clone()}
	}
	return out
}

// Map returns an unordered deep-copied snapshot of the store.
func (s *Store) Map() map[string]Value {
	out := make(map[string]Value, len(s.keys))
	for _, k := range s.keys {
		out[k] = s.values[k].Clone()
	}
	return out
}

// Names returns the keys in insertion order.
func (s *Store) Names() []string {
	return slices.Clone(s.keys)
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// HasAny reports whether the store holds at least one key.
func (s *Store) HasAny() bool {
	return len(s.keys) > 0
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return len(s.keys)
}

// Set stores value under key. Overwriting keeps the key's position,
// inserting appends it.
func (s *Store) Set(key string, value Value) {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	if i := slices.Index(s.keys, key); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
	}
}

// RemoveAll empties the store.
func (s *Store) RemoveAll() {
	s.keys = s.keys[:0]
	clear(s.values)
}

// Replace merges values into the store, overwriting on key collision.
// Keys not in values are kept: this is a merge, not a reset.
// New keys are appended in sorted order.
func (s *Store) Replace(values map[string]Value) {
	for _, k := range sortedKeys(values) {
		s.Set(k, values[k])
	}
}

// Merge merges another store into s with Replace semantics,
// appending new keys in the other store's order.
func (s *Store) Merge(other Reader) {
	if other == nil {
		return
	}
	for _, e := range other.All() {
		s.Set(e.Key, e.Value)
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	return FromEntries(s.All()...)
}

// ReadOnly returns a view of s that exposes only the Reader methods.
func (s *Store) ReadOnly() Reader {
	return readOnly{s: s}
}

// MarshalJSON encodes the store as a JSON object in key order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := s.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the store, replacing its content.
func (s *Store) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	m, ok := v.AsMap()
	if !ok {
		return ErrNotObject
	}
	*s = *m
	return nil
}

// entries returns the live entries without copying values.
func (s *Store) entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.keys))
	for i, k := range s.keys {
		out[i] = Entry{Key: k, Value: s.values[k]}
	}
	return out
}

type readOnly struct {
	s *Store
}

func (r readOnly) Get(key string, def Value) Value { return r.s.Get(key, def) }
func (r readOnly) Lookup(key string) (Value, bool) { return r.s.Lookup(key) }
func (r readOnly) All() []Entry                    { return r.s.All() }
func (r readOnly) Map() map[string]Value           { return r.s.Map() }
func (r readOnly) Names() []string                 { return r.s.Names() }
func (r readOnly) Has(key string) bool             { return r.s.Has(key) }
func (r readOnly) HasAny() bool                    { return r.s.HasAny() }
func (r readOnly) Len() int                        { return r.s.Len() }

func (r readOnly) MarshalJSON() ([]byte, error) { return r.s.MarshalJSON() }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
