package request

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/reqkit/core/params"
)

// Input holds the raw request data a Request is built from.
type Input struct {
	Headers map[string]any
	Query   map[string]any
	Data    map[string]any
	Cookies map[string]any
}

// Request is a read-mostly view of one inbound HTTP request: its URI, headers,
// query and body parameters, cookies, and facts derived from server variables.
//
// The URI is computed once at construction. Headers, query and data parameters
// are exposed as mutable stores; cookies are read-only to callers.
// A Request is not safe for concurrent use.
type Request struct {
	env         Env
	trust       trustPolicy
	maxBodySize int64

	uri     string
	headers *params.Store
	query   *params.Store
	data    *params.Store
	cookies *params.Store

	bodyLoaded bool
}

// New builds a Request from server variables and raw request data.
// It fails only when env is nil or the trusted proxy configuration is invalid.
//
// New does not read the request body; call LoadBody for that.
func New(env Env, in Input, opts ...Option) (*Request, error) {
	if env == nil {
		return nil, ErrNilEnv
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	trust, err := newTrustPolicy(s)
	if err != nil {
		return nil, err
	}

	r := &Request{
		env:         env,
		trust:       trust,
		maxBodySize: s.maxBodySize,
		headers:     params.FromMap(in.Headers),
		query:       params.FromMap(in.Query),
		data:        params.FromMap(in.Data),
		cookies:     params.FromMap(in.Cookies),
	}
	r.uri = r.detectURI()

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(env Env, in Input, opts ...Option) *Request {
	r, err := New(env, in, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ServerParam returns the server variable name, or def when it is not set.
func (r *Request) ServerParam(name, def string) string {
	if v, ok := r.env.Lookup(name); ok {
		return v
	}
	return def
}

// ============================================================================
// Headers
// ============================================================================

// Headers returns the header store.
func (r *Request) Headers() *params.Store {
	return r.headers
}

// Header returns the header value as text, or def when absent.
// The name is tried verbatim first, then in canonical MIME form.
func (r *Request) Header(name, def string) string {
	if v, ok := r.headers.Lookup(name); ok {
		return v.String()
	}
	if v, ok := r.headers.Lookup(http.CanonicalHeaderKey(name)); ok {
		return v.String()
	}
	return def
}

// HasHeader reports whether the header is present, verbatim or canonical.
func (r *Request) HasHeader(name string) bool {
	return r.headers.Has(name) || r.headers.Has(http.CanonicalHeaderKey(name))
}

// ============================================================================
// Query and data parameters
// ============================================================================

// Query returns the query parameter store.
func (r *Request) Query() *params.Store {
	return r.query
}

// QueryParam returns the query parameter name, or def when absent.
func (r *Request) QueryParam(name string, def params.Value) params.Value {
	return r.query.Get(name, def)
}

// Data returns the body (data) parameter store.
func (r *Request) Data() *params.Store {
	return r.data
}

// DataParam returns the body parameter name, or def when absent.
func (r *Request) DataParam(name string, def params.Value) params.Value {
	return r.data.Get(name, def)
}

// ============================================================================
// Cookies
// ============================================================================

// Cookies returns a read-only view of the request cookies.
// Cookies are client-supplied state and cannot be rewritten by callers.
func (r *Request) Cookies() params.Reader {
	return r.cookies.ReadOnly()
}

// Cookie returns the cookie value as text, or def when absent.
func (r *Request) Cookie(name, def string) string {
	if v, ok := r.cookies.Lookup(name); ok {
		return v.String()
	}
	return def
}

// HasCookie reports whether the cookie is present.
func (r *Request) HasCookie(name string) bool {
	return r.cookies.Has(name)
}

func (r *Request) setCookie(name string, value params.Value) {
	r.cookies.Set(name, value)
}

func (r *Request) removeCookie(name string) {
	r.cookies.Remove(name)
}

func (r *Request) replaceCookies(cookies map[string]params.Value) {
	r.cookies.Replace(cookies)
}

func (r *Request) removeAllCookies() {
	r.cookies.RemoveAll()
}

// ============================================================================
// Context
// ============================================================================

type requestContextKey struct{}

// WithContext returns a copy of ctx carrying r.
func WithContext(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, requestContextKey{}, r)
}

// FromContext returns the Request stored in ctx.
func FromContext(ctx context.Context) (*Request, bool) {
	r, ok := ctx.Value(requestContextKey{}).(*Request)
	return r, ok && r != nil
}
