package request

import (
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/pkg/clientip"
)

// HTTP methods recognised by the method predicates.
const (
	MethodHead   = http.MethodHead
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodPatch  = http.MethodPatch
	MethodDelete = http.MethodDelete
)

// MethodParam is the reserved query/body parameter that overrides the transport method.
const MethodParam = "_method"

// ============================================================================
// URI
// ============================================================================

// URI returns the request URI as computed at construction.
// With absolute false the scheme and host are removed, leaving path and query.
// With includeQuery false everything from the first '?' is removed.
func (r *Request) URI(absolute, includeQuery bool) string {
	uri := r.uri

	if !absolute {
		if i := strings.Index(uri, "://"); i >= 0 {
			rest := uri[i+3:]
			if j := strings.IndexAny(rest, "/?"); j >= 0 {
				uri = rest[j:]
			} else {
				uri = ""
			}
		}
	}

	if !includeQuery {
		if i := strings.IndexByte(uri, '?'); i >= 0 {
			uri = uri[:i]
		}
	}

	return uri
}

// FullURI returns the absolute URI including the query string.
func (r *Request) FullURI() string {
	return r.uri
}

// Path returns the URI path without scheme, host or query.
func (r *Request) Path() string {
	return r.URI(false, false)
}

// detectURI assembles scheme://host[:port]path[?query] from server variables.
func (r *Request) detectURI() string {
	secure := r.IsSecure()

	scheme, defaultPort := "http", "80"
	if secure {
		scheme, defaultPort = "https", "443"
	}

	host := r.ServerParam(VarHTTPHost, "")

	// HTTP_HOST is used unchanged; SERVER_PORT is appended only when the host
	// does not already name a port.
	portPart := ""
	if _, _, err := net.SplitHostPort(host); err != nil {
		if port := r.ServerParam(VarServerPort, ""); port != "" && strings.TrimLeft(port, "0") != defaultPort {
			portPart = ":" + port
		}
	}

	path, ok := r.env.Lookup(VarPathInfo)
	if !ok {
		path = r.ServerParam(VarRequestURI, "")
		// REQUEST_URI carries its own query string; QUERY_STRING is appended below.
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
	}

	query := r.ServerParam(VarQueryString, "")
	if query != "" {
		query = "?" + query
	}

	return scheme + "://" + host + portPart + path + query
}

// ============================================================================
// Method
// ============================================================================

// Method resolves the HTTP method: the _method query parameter first, then the
// _method body parameter, then REQUEST_METHOD, defaulting to GET.
//
// Two rules go beyond a plain first-non-null lookup. Overrides are trimmed and
// upper-cased, so "patch" resolves to PATCH. An empty or whitespace override
// does not stop the search: it falls through to the next source instead of
// resolving to "". TransportMethod returns REQUEST_METHOD as sent.
func (r *Request) Method() string {
	if m, ok := methodOverride(r.query.Lookup(MethodParam)); ok {
		return m
	}
	if m, ok := methodOverride(r.data.Lookup(MethodParam)); ok {
		return m
	}
	return r.TransportMethod()
}

// TransportMethod returns REQUEST_METHOD without considering overrides.
func (r *Request) TransportMethod() string {
	if m, ok := r.env.Lookup(VarRequestMethod); ok && m != "" {
		return m
	}
	return MethodGet
}

func methodOverride(v params.Value, ok bool) (string, bool) {
	if !ok || v.IsNull() {
		return "", false
	}
	m := strings.ToUpper(strings.TrimSpace(v.String()))
	return m, m != ""
}

// IsHead reports whether the resolved method is HEAD.
func (r *Request) IsHead() bool { return r.Method() == MethodHead }

// IsGet reports whether the resolved method is GET.
func (r *Request) IsGet() bool { return r.Method() == MethodGet }

// IsPost reports whether the resolved method is POST.
func (r *Request) IsPost() bool { return r.Method() == MethodPost }

// IsPut reports whether the resolved method is PUT.
func (r *Request) IsPut() bool { return r.Method() == MethodPut }

// IsPatch reports whether the resolved method is PATCH.
func (r *Request) IsPatch() bool { return r.Method() == MethodPatch }

// IsDelete reports whether the resolved method is DELETE.
func (r *Request) IsDelete() bool { return r.Method() == MethodDelete }

// ============================================================================
// Transport facts
// ============================================================================

// IsSecure reports whether the request arrived over HTTPS: HTTPS is "on", or a
// trusted proxy set X-Forwarded-Proto to "https". Comparisons ignore case.
func (r *Request) IsSecure() bool {
	checks := []struct {
		name  string
		value string
		proxy bool
	}{
		{VarHTTPS, "on", false},
		{VarForwardedProto, "https", true},
	}

	for _, c := range checks {
		v, ok := r.lookup(c.name, c.proxy)
		if ok && strings.EqualFold(v, c.value) {
			return true
		}
	}
	return false
}

// IP returns the client address from HTTP_CLIENT_IP, HTTP_X_FORWARDED_FOR or
// REMOTE_ADDR, in that order. Address chains yield their first entry.
// Proxy variables are skipped unless the trust policy allows them.
// Returns "" when no address is available.
func (r *Request) IP() string {
	sources := []struct {
		name  string
		proxy bool
	}{
		{VarClientIP, true},
		{VarForwardedFor, true},
		{VarRemoteAddr, false},
	}

	for _, src := range sources {
		v, ok := r.lookup(src.name, src.proxy)
		if !ok || v == "" {
			continue
		}
		return clientip.First(v)
	}
	return ""
}

// IsAjax reports whether X-Requested-With is exactly "XMLHttpRequest".
func (r *Request) IsAjax() bool {
	return r.Header("X-Requested-With", "") == "XMLHttpRequest"
}

// lookup reads a server variable, hiding proxy-supplied ones the policy rejects.
func (r *Request) lookup(name string, proxy bool) (string, bool) {
	if proxy && !r.trust.allows(r.ServerParam(VarRemoteAddr, "")) {
		return "", false
	}
	return r.env.Lookup(name)
}
