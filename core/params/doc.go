// Package params provides an ordered key/value store used for request headers,
// query and body parameters, cookies and event payloads.
//
// Values are held as Value, a tagged variant of JSON-compatible types
// (null, string, number, bool, nested mapping, list), which keeps every store
// serializable without resorting to untyped interfaces.
//
// # Basic Usage
//
//	s := params.New(nil)
//	s.Set("page", params.Int(2))
//	s.Set("sort", params.String("name"))
//
//	page := s.Get("page", params.Int(1))  // 2
//	limit := s.Get("limit", params.Int(20)) // 20, key absent
//	s.Names()                              // ["page", "sort"]
//
// Get never fails: a missing key yields the caller's default. Use Has or
// Lookup to tell an absent key apart from a stored null.
//
// # Replace Merges
//
// Replace merges a mapping into the store and overwrites colliding keys.
// It does not reset the store; call RemoveAll first for that:
//
//	s.Replace(map[string]params.Value{"sort": params.String("date")})
//	// "page" is still present
//
// # Snapshots
//
// All and Map return deep copies. Nested mappings returned by Value.AsMap are
// shared with the stored value.
//
// # Encoding
//
// Store and Value implement json.Marshaler and yaml.Marshaler (gopkg.in/yaml.v3)
// together with their decoding counterparts. Both formats keep key order in
// either direction.
//
// # Read-Only Views
//
// ReadOnly exposes a store through the Reader interface only. Containers use
// it to hand out data their callers must not modify, such as request cookies.
package params
