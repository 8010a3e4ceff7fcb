package request

import (
	"maps"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/dmitrymomot/reqkit/pkg/clientip"
)

// Server variable names read by Request.
const (
	VarServerPort     = "SERVER_PORT"
	VarHTTPHost       = "HTTP_HOST"
	VarPathInfo       = "PATH_INFO"
	VarRequestURI     = "REQUEST_URI"
	VarQueryString    = "QUERY_STRING"
	VarRequestMethod  = "REQUEST_METHOD"
	VarHTTPS          = "HTTPS"
	VarForwardedProto = "HTTP_X_FORWARDED_PROTO"
	VarClientIP       = "HTTP_CLIENT_IP"
	VarForwardedFor   = "HTTP_X_FORWARDED_FOR"
	VarRemoteAddr     = "REMOTE_ADDR"
)

// Env is a read-only source of server variables.
// Missing variables report false; a lookup never fails.
type Env interface {
	Lookup(name string) (string, bool)
}

// MapEnv is an Env backed by a map.
type MapEnv map[string]string

// Lookup implements Env.
func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Names implements Lister.
func (m MapEnv) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Lister is implemented by environment sources that can enumerate their
// variables. FromCGI needs it to recover request headers.
type Lister interface {
	Names() []string
}

// ProcessEnv reads server variables from the process environment,
// as set by a CGI gateway. Only bootstraps should use it.
type ProcessEnv struct{}

// Lookup implements Env.
func (ProcessEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Names implements Lister.
func (ProcessEnv) Names() []string {
	environ := os.Environ()
	names := make([]string, 0, len(environ))
	for _, kv := range environ {
		if name, _, ok := strings.Cut(kv, "="); ok && name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// HTTPEnv derives CGI-style server variables from a net/http request.
// Every request header is exposed as HTTP_<NAME>, multiple values joined with ", ".
func HTTPEnv(r *http.Request) MapEnv {
	env := MapEnv{
		VarRequestMethod:  r.Method,
		VarHTTPHost:       r.Host,
		VarRequestURI:     r.RequestURI,
		VarQueryString:    r.URL.RawQuery,
		VarRemoteAddr:     clientip.StripPort(r.RemoteAddr),
		"SERVER_PROTOCOL": r.Proto,
	}

	if env[VarRequestURI] == "" {
		env[VarRequestURI] = r.URL.RequestURI()
	}

	path := r.URL.EscapedPath()
	if path == "" {
		path = "/"
	}
	env[VarPathInfo] = path

	if r.TLS != nil {
		env[VarHTTPS] = "on"
	}

	if port := serverPort(r); port != "" {
		env[VarServerPort] = port
	}

	if _, port, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		env["REMOTE_PORT"] = port
	}

	for name, values := range r.Header {
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		env[key] = strings.Join(values, ", ")
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		env["CONTENT_TYPE"] = ct
	}
	if r.ContentLength > 0 {
		env["CONTENT_LENGTH"] = r.Header.Get("Content-Length")
	}

	return env
}

// serverPort resolves the port the request arrived on: the Host header first,
// then the listener address.
func serverPort(r *http.Request) string {
	if _, port, err := net.SplitHostPort(r.Host); err == nil && port != "" {
		return port
	}
	if addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		if _, port, err := net.SplitHostPort(addr.String()); err == nil {
			return port
		}
	}
	return ""
}
