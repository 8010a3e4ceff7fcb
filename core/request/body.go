package request

import (
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrymomot/reqkit/core/params"
)

// LoadBody reads a PUT request body as a URL-encoded form and merges the
// fields into the data parameters, overwriting colliding keys.
// For any other method LoadBody does nothing.
//
// The body is read in full up to the configured size limit; larger bodies fail
// with ErrBodyTooLarge and leave the data parameters untouched. Malformed pairs
// are skipped. LoadBody may be called once per request.
func (r *Request) LoadBody(body io.Reader) error {
	if r.bodyLoaded {
		return ErrBodyLoaded
	}
	r.bodyLoaded = true

	if body == nil || !r.IsPut() {
		return nil
	}

	values, err := readForm(body, r.maxBodySize)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	r.data.Replace(params.FromValues(values).Map())
	return nil
}

// readForm reads a URL-encoded body of at most limit bytes.
func readForm(body io.Reader, limit int64) (url.Values, error) {
	raw, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}

	// ParseQuery keeps every well-formed pair and reports only the first bad one.
	values, _ := url.ParseQuery(string(raw))
	return values, nil
}

// BodyLoaded reports whether LoadBody has been called.
func (r *Request) BodyLoaded() bool {
	return r.bodyLoaded
}
