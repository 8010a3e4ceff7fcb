package request_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/core/request"
)

func newRequest(t *testing.T, env request.MapEnv, in request.Input, opts ...request.Option) *request.Request {
	t.Helper()
	r, err := request.New(env, in, opts...)
	require.NoError(t, err)
	return r
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNew_NilEnv(t *testing.T) {
	t.Parallel()

	r, err := request.New(nil, request.Input{})
	require.ErrorIs(t, err, request.ErrNilEnv)
	assert.Nil(t, r)

	assert.Panics(t, func() {
		request.MustNew(nil, request.Input{})
	})
}

func TestNew_InvalidTrustedProxy(t *testing.T) {
	t.Parallel()

	_, err := request.New(request.MapEnv{}, request.Input{}, request.WithTrustedProxies("not-a-cidr/x"))
	require.ErrorIs(t, err, request.ErrInvalidProxy)
}

func TestNew_Stores(t *testing.T) {
	t.Parallel()

	r := newRequest(t, request.MapEnv{}, request.Input{
		Headers: map[string]any{"Accept": "application/json"},
		Query:   map[string]any{"page": "2"},
		Data:    map[string]any{"name": "alice"},
		Cookies: map[string]any{"session": "abc"},
	})

	assert.Equal(t, "application/json", r.Header("Accept", ""))
	assert.Equal(t, "application/json", r.Header("accept", ""), "falls back to canonical form")
	assert.Equal(t, "fallback", r.Header("X-Missing", "fallback"))
	assert.True(t, r.HasHeader("accept"))

	assert.Equal(t, "2", r.QueryParam("page", params.Null()).String())
	assert.True(t, r.QueryParam("missing", params.Int(1)).Equal(params.Int(1)))

	assert.Equal(t, "alice", r.DataParam("name", params.Null()).String())

	assert.Equal(t, "abc", r.Cookie("session", ""))
	assert.Equal(t, "none", r.Cookie("missing", "none"))
	assert.True(t, r.HasCookie("session"))
	assert.Equal(t, []string{"session"}, r.Cookies().Names())

	r.Query().Set("sort", params.String("name"))
	assert.True(t, r.Query().Has("sort"))
}

func TestCookies_ReadOnly(t *testing.T) {
	t.Parallel()

	r := newRequest(t, request.MapEnv{}, request.Input{
		Cookies: map[string]any{"session": "abc"},
	})

	cookies := r.Cookies()
	_, mutable := cookies.(*params.Store)
	assert.False(t, mutable)

	all := cookies.All()
	all[0].Value = params.String("forged")
	assert.Equal(t, "abc", r.Cookie("session", ""))
}

func TestServerParam(t *testing.T) {
	t.Parallel()

	r := newRequest(t, request.MapEnv{"SERVER_NAME": "api"}, request.Input{})
	assert.Equal(t, "api", r.ServerParam("SERVER_NAME", ""))
	assert.Equal(t, "x", r.ServerParam("MISSING", "x"))
}

// =============================================================================
// URI Tests
// =============================================================================

func TestURI(t *testing.T) {
	t.Parallel()

	r := newRequest(t, request.MapEnv{
		"HTTP_HOST":    "example.com",
		"PATH_INFO":    "/a/b",
		"QUERY_STRING": "x=1",
	}, request.Input{})

	assert.Equal(t, "http://example.com/a/b?x=1", r.URI(true, true))
	assert.Equal(t, "http://example.com/a/b?x=1", r.FullURI())
	assert.Equal(t, "/a/b?x=1", r.URI(false, true))
	assert.Equal(t, "http://example.com/a/b", r.URI(true, false))
	assert.Equal(t, "/a/b", r.URI(false, false))
	assert.Equal(t, "/a/b", r.Path())
}

func TestURI_Detection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  request.MapEnv
		want string
	}{
		{
			name: "default http port omitted",
			env:  request.MapEnv{"HTTP_HOST": "example.com", "SERVER_PORT": "80", "PATH_INFO": "/"},
			want: "http://example.com/",
		},
		{
			name: "non default port rendered",
			env:  request.MapEnv{"HTTP_HOST": "example.com", "SERVER_PORT": "8080", "PATH_INFO": "/x"},
			want: "http://example.com:8080/x",
		},
		{
			name: "https default port omitted",
			env:  request.MapEnv{"HTTPS": "on", "HTTP_HOST": "example.com", "SERVER_PORT": "443", "PATH_INFO": "/"},
			want: "https://example.com/",
		},
		{
			name: "port 80 rendered for https",
			env:  request.MapEnv{"HTTPS": "ON", "HTTP_HOST": "example.com", "SERVER_PORT": "80", "PATH_INFO": "/"},
			want: "https://example.com:80/",
		},
		{
			name: "forwarded proto selects https",
			env:  request.MapEnv{"HTTP_X_FORWARDED_PROTO": "https", "HTTP_HOST": "example.com", "PATH_INFO": "/"},
			want: "https://example.com/",
		},
		{
			name: "request uri fallback drops its own query",
			env:  request.MapEnv{"HTTP_HOST": "example.com", "REQUEST_URI": "/legacy?y=2", "QUERY_STRING": "y=2"},
			want: "http://example.com/legacy?y=2",
		},
		{
			name: "host with port and no server port",
			env:  request.MapEnv{"HTTP_HOST": "example.com:3000", "PATH_INFO": "/"},
			want: "http://example.com:3000/",
		},
		{
			name: "host port kept over server port",
			env:  request.MapEnv{"HTTP_HOST": "localhost:3000", "SERVER_PORT": "80", "PATH_INFO": "/a"},
			want: "http://localhost:3000/a",
		},
		{
			name: "host port not duplicated",
			env:  request.MapEnv{"HTTP_HOST": "example.com:8080", "SERVER_PORT": "8080", "PATH_INFO": "/"},
			want: "http://example.com:8080/",
		},
		{
			name: "ipv6 host",
			env:  request.MapEnv{"HTTP_HOST": "[::1]:8080", "PATH_INFO": "/"},
			want: "http://[::1]:8080/",
		},
		{
			name: "degenerate environment",
			env:  request.MapEnv{},
			want: "http://",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newRequest(t, tt.env, request.Input{})
			assert.Equal(t, tt.want, r.FullURI())
		})
	}
}

func TestURI_FrozenAtConstruction(t *testing.T) {
	t.Parallel()

	env := request.MapEnv{"HTTP_HOST": "example.com", "PATH_INFO": "/a"}
	r := newRequest(t, env, request.Input{})

	env["PATH_INFO"] = "/changed"
	env["HTTP_HOST"] = "other.com"

	assert.Equal(t, "http://example.com/a", r.FullURI())
}

func TestURI_RelativeWithoutPath(t *testing.T) {
	t.Parallel()

	r := newRequest(t, request.MapEnv{"HTTP_HOST": "example.com", "PATH_INFO": "", "QUERY_STRING": "q=1"}, request.Input{})
	assert.Equal(t, "?q=1", r.URI(false, true))
	assert.Equal(t, "", r.URI(false, false))
}

// =============================================================================
// Method Tests
// =============================================================================

func TestMethod_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		env   request.MapEnv
		query map[string]any
		data  map[string]any
		want  string
	}{
		{
			name:  "query wins over data and transport",
			env:   request.MapEnv{"REQUEST_METHOD": "POST"},
			query: map[string]any{"_method": "DELETE"},
			data:  map[string]any{"_method": "PUT"},
			want:  "DELETE",
		},
		{
			name: "data wins over transport",
			env:  request.MapEnv{"REQUEST_METHOD": "POST"},
			data: map[string]any{"_method": "PUT"},
			want: "PUT",
		},
		{
			name: "transport method",
			env:  request.MapEnv{"REQUEST_METHOD": "POST"},
			want: "POST",
		},
		{
			name: "defaults to GET",
			env:  request.MapEnv{},
			want: "GET",
		},
		{
			name:  "null override falls through",
			env:   request.MapEnv{"REQUEST_METHOD": "POST"},
			query: map[string]any{"_method": nil},
			data:  map[string]any{"_method": "PATCH"},
			want:  "PATCH",
		},
		{
			name:  "lowercase override normalised",
			env:   request.MapEnv{"REQUEST_METHOD": "POST"},
			query: map[string]any{"_method": "delete"},
			want:  "DELETE",
		},
		{
			name:  "empty override ignored",
			env:   request.MapEnv{"REQUEST_METHOD": "POST"},
			query: map[string]any{"_method": ""},
			want:  "POST",
		},
		{
			name:  "blank query override falls through to data",
			env:   request.MapEnv{"REQUEST_METHOD": "POST"},
			query: map[string]any{"_method": "  "},
			data:  map[string]any{"_method": "patch"},
			want:  "PATCH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newRequest(t, tt.env, request.Input{Query: tt.query, Data: tt.data})
			assert.Equal(t, tt.want, r.Method())
		})
	}
}

func TestMethod_Predicates(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*request.Request) bool{
		"HEAD":   (*request.Request).IsHead,
		"GET":    (*request.Request).IsGet,
		"POST":   (*request.Request).IsPost,
		"PUT":    (*request.Request).IsPut,
		"PATCH":  (*request.Request).IsPatch,
		"DELETE": (*request.Request).IsDelete,
	}

	for method := range cases {
		r := newRequest(t, request.MapEnv{"REQUEST_METHOD": method}, request.Input{})
		for other, pred := range cases {
			assert.Equal(t, method == other, pred(r), "method %s, predicate %s", method, other)
		}
	}

	r := newRequest(t, request.MapEnv{"REQUEST_METHOD": "POST"}, request.Input{
		Data: map[string]any{"_method": "PUT"},
	})
	assert.True(t, r.IsPut())
	assert.False(t, r.IsPost())
	assert.Equal(t, "POST", r.TransportMethod())
}

// =============================================================================
// Transport Facts Tests
// =============================================================================

func TestIsSecure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  request.MapEnv
		want bool
	}{
		{"https on", request.MapEnv{"HTTPS": "on"}, true},
		{"https upper", request.MapEnv{"HTTPS": "ON"}, true},
		{"https mixed", request.MapEnv{"HTTPS": "oN"}, true},
		{"https off", request.MapEnv{"HTTPS": "off"}, false},
		{"forwarded proto", request.MapEnv{"HTTP_X_FORWARDED_PROTO": "HTTPS"}, true},
		{"forwarded proto lower", request.MapEnv{"HTTP_X_FORWARDED_PROTO": "https"}, true},
		{"forwarded http", request.MapEnv{"HTTP_X_FORWARDED_PROTO": "http"}, false},
		{"neither header", request.MapEnv{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newRequest(t, tt.env, request.Input{})
			assert.Equal(t, tt.want, r.IsSecure())
		})
	}
}

func TestIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  request.MapEnv
		want string
	}{
		{"forwarded chain", request.MapEnv{"HTTP_X_FORWARDED_FOR": "1.2.3.4, 5.6.7.8"}, "1.2.3.4"},
		{"client ip first", request.MapEnv{"HTTP_CLIENT_IP": "9.9.9.9", "HTTP_X_FORWARDED_FOR": "1.2.3.4", "REMOTE_ADDR": "10.0.0.1"}, "9.9.9.9"},
		{"forwarded before remote", request.MapEnv{"HTTP_X_FORWARDED_FOR": "1.2.3.4", "REMOTE_ADDR": "10.0.0.1"}, "1.2.3.4"},
		{"remote addr", request.MapEnv{"REMOTE_ADDR": "10.0.0.1"}, "10.0.0.1"},
		{"empty values skipped", request.MapEnv{"HTTP_CLIENT_IP": "", "REMOTE_ADDR": "10.0.0.1"}, "10.0.0.1"},
		{"none", request.MapEnv{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newRequest(t, tt.env, request.Input{})
			assert.Equal(t, tt.want, r.IP())
		})
	}
}

func TestTrustPolicy(t *testing.T) {
	t.Parallel()

	forged := request.MapEnv{
		"HTTP_X_FORWARDED_FOR":   "6.6.6.6",
		"HTTP_CLIENT_IP":         "7.7.7.7",
		"HTTP_X_FORWARDED_PROTO": "https",
		"REMOTE_ADDR":            "203.0.113.5",
		"HTTP_HOST":              "example.com",
		"PATH_INFO":              "/",
	}

	t.Run("proxy headers disabled", func(t *testing.T) {
		t.Parallel()
		r := newRequest(t, forged, request.Input{}, request.WithoutProxyHeaders())
		assert.Equal(t, "203.0.113.5", r.IP())
		assert.False(t, r.IsSecure())
		assert.Equal(t, "http://example.com/", r.FullURI())
	})

	t.Run("untrusted peer", func(t *testing.T) {
		t.Parallel()
		r := newRequest(t, forged, request.Input{}, request.WithTrustedProxies("10.0.0.0/8"))
		assert.Equal(t, "203.0.113.5", r.IP())
		assert.False(t, r.IsSecure())
	})

	t.Run("trusted peer", func(t *testing.T) {
		t.Parallel()
		env := request.MapEnv{
			"HTTP_X_FORWARDED_FOR":   "1.2.3.4, 10.0.0.2",
			"HTTP_X_FORWARDED_PROTO": "https",
			"REMOTE_ADDR":            "10.0.0.2",
		}
		r := newRequest(t, env, request.Input{}, request.WithTrustedProxies("10.0.0.0/8"))
		assert.Equal(t, "1.2.3.4", r.IP())
		assert.True(t, r.IsSecure())
	})

	t.Run("https variable always trusted", func(t *testing.T) {
		t.Parallel()
		r := newRequest(t, request.MapEnv{"HTTPS": "on"}, request.Input{}, request.WithoutProxyHeaders())
		assert.True(t, r.IsSecure())
	})

	t.Run("config", func(t *testing.T) {
		t.Parallel()
		cfg := request.DefaultConfig()
		cfg.TrustedProxies = []string{"203.0.113.0/24"}
		r := newRequest(t, forged, request.Input{}, request.WithConfig(cfg))
		assert.Equal(t, "7.7.7.7", r.IP())
	})
}

func TestIsAjax(t *testing.T) {
	t.Parallel()

	ajax := newRequest(t, request.MapEnv{}, request.Input{
		Headers: map[string]any{"X-Requested-With": "XMLHttpRequest"},
	})
	assert.True(t, ajax.IsAjax())

	lower := newRequest(t, request.MapEnv{}, request.Input{
		Headers: map[string]any{"X-Requested-With": "xmlhttprequest"},
	})
	assert.False(t, lower.IsAjax(), "value comparison is exact")

	plain := newRequest(t, request.MapEnv{}, request.Input{})
	assert.False(t, plain.IsAjax())
}

// =============================================================================
// Context Tests
// =============================================================================

func TestContext(t *testing.T) {
	t.Parallel()

	r := newRequest(t, request.MapEnv{}, request.Input{})
	ctx := request.WithContext(context.Background(), r)

	got, ok := request.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = request.FromContext(context.Background())
	assert.False(t, ok)
}
