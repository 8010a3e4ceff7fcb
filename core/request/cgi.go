package request

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/reqkit/core/params"
)

// FromCGI builds a Request from CGI meta-variables and the request body,
// as handed to a CGI program on its environment and standard input.
//
// Headers are recovered from HTTP_* variables (plus CONTENT_TYPE and
// CONTENT_LENGTH) when env implements Lister. Query parameters come from
// QUERY_STRING and cookies from HTTP_COOKIE. A urlencoded POST or PATCH body
// fills the data parameters; PUT bodies go through LoadBody. Malformed input
// is skipped; a body over the size limit fails with ErrBodyTooLarge.
func FromCGI(env Env, body io.Reader, opts ...Option) (*Request, error) {
	r, err := New(env, Input{}, opts...)
	if err != nil {
		return nil, err
	}

	if l, ok := env.(Lister); ok {
		for _, name := range l.Names() {
			header, ok := cgiHeaderName(name)
			if !ok {
				continue
			}
			if v, ok := env.Lookup(name); ok {
				r.headers.Set(header, params.String(v))
			}
		}
	}

	if q := r.ServerParam(VarQueryString, ""); q != "" {
		values, _ := url.ParseQuery(q)
		r.query.Merge(params.FromValues(values))
	}

	if raw := r.ServerParam("HTTP_COOKIE", ""); raw != "" {
		for _, part := range strings.Split(raw, ";") {
			cookies, err := http.ParseCookie(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			for _, c := range cookies {
				if !r.cookies.Has(c.Name) {
					r.setCookie(c.Name, params.String(c.Value))
				}
			}
		}
	}

	switch r.TransportMethod() {
	case http.MethodPost, http.MethodPatch:
		if body == nil || !isURLEncoded(r.ServerParam("CONTENT_TYPE", "")) {
			break
		}
		values, err := readForm(body, r.maxBodySize)
		if err != nil {
			return nil, err
		}
		r.data.Merge(params.FromValues(values))
	}

	if err := r.LoadBody(body); err != nil {
		return nil, err
	}

	return r, nil
}

// cgiHeaderName maps a meta-variable to its HTTP header name.
func cgiHeaderName(name string) (string, bool) {
	switch name {
	case "CONTENT_TYPE":
		return "Content-Type", true
	case "CONTENT_LENGTH":
		return "Content-Length", true
	}
	rest, ok := strings.CutPrefix(name, "HTTP_")
	if !ok || rest == "" {
		return "", false
	}
	return http.CanonicalHeaderKey(strings.ReplaceAll(rest, "_", "-")), true
}

func isURLEncoded(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}
