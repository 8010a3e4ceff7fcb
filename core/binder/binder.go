package binder

import (
	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/core/request"
)

// Binder binds request data to a Go value.
type Binder func(req *request.Request, v any) error

// Query creates a binder for query parameters.
//
// Fields are matched with the `query` tag, or the lowercase field name:
//
//	type SearchRequest struct {
//		Query  string   `query:"q"`
//		Page   int      `query:"page"`
//		Tags   []string `query:"tags"`   // ?tags=go&tags=web or ?tags=go,web
//		Active *bool    `query:"active"` // optional
//		Skip   string   `query:"-"`
//	}
func Query() Binder {
	return func(req *request.Request, v any) error {
		return Params(req.Query(), "query", v, ErrFailedToParseQuery)
	}
}

// Data creates a binder for body parameters, matched with the `form` tag.
// It sees form fields merged by request.FromHTTP and request.Request.LoadBody.
func Data() Binder {
	return func(req *request.Request, v any) error {
		return Params(req.Data(), "form", v, ErrFailedToParseForm)
	}
}

// Params binds entries of src to the struct pointed to by v using tagName.
// Nested maps bind to struct fields; lists bind to slices.
// Failures are wrapped with bindErr.
func Params(src params.Reader, tagName string, v any, bindErr error) error {
	return bindToStruct(v, tagName, src, bindErr)
}
