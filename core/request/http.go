package request

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/reqkit/core/params"
)

// FromHTTP builds a Request from a net/http request and loads its body.
//
// Server variables come from HTTPEnv. Query parameters come from the URL;
// data parameters from urlencoded or multipart POST and PATCH bodies, and
// from PUT bodies through LoadBody. Malformed bodies yield empty data
// parameters rather than an error; a body over the size limit fails with
// ErrBodyTooLarge whatever the method.
func FromHTTP(hr *http.Request, opts ...Option) (*Request, error) {
	r, err := New(HTTPEnv(hr), Input{}, opts...)
	if err != nil {
		return nil, err
	}

	for _, name := range sortedHeaderNames(hr.Header) {
		r.headers.Set(name, params.String(strings.Join(hr.Header[name], ", ")))
	}
	if hr.Host != "" && !r.headers.Has("Host") {
		r.headers.Set("Host", params.String(hr.Host))
	}

	r.query.Merge(params.FromValues(hr.URL.Query()))

	for _, c := range hr.Cookies() {
		if !r.cookies.Has(c.Name) {
			r.setCookie(c.Name, params.String(c.Value))
		}
	}

	switch hr.Method {
	case http.MethodPost, http.MethodPatch:
		values, err := formValues(hr, r.maxBodySize)
		if err != nil {
			return nil, err
		}
		r.data.Merge(params.FromValues(values))
	}

	if err := r.LoadBody(hr.Body); err != nil {
		return nil, err
	}

	return r, nil
}

// formValues parses urlencoded and multipart bodies, returning only body fields.
// Bodies over limit fail with ErrBodyTooLarge; other parse errors yield nil.
func formValues(hr *http.Request, limit int64) (map[string][]string, error) {
	if hr.Body == nil {
		return nil, nil
	}

	mediaType, _, err := mime.ParseMediaType(hr.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil
	}

	hr.Body = http.MaxBytesReader(nil, hr.Body, limit)

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := hr.ParseForm(); err != nil {
			return nil, bodyTooLarge(err)
		}
		return hr.PostForm, nil
	case strings.HasPrefix(mediaType, "multipart/form-data"):
		if err := hr.ParseMultipartForm(limit); err != nil || hr.MultipartForm == nil {
			return nil, bodyTooLarge(err)
		}
		return hr.MultipartForm.Value, nil
	}
	return nil, nil
}

// bodyTooLarge maps a size-limit failure to ErrBodyTooLarge and drops any other error.
func bodyTooLarge(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, mbe.Limit)
	}
	return nil
}

func sortedHeaderNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
