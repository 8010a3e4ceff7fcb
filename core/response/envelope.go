package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/params"
)

// ContentTypeJSON is the media type of every JSON envelope.
const ContentTypeJSON = "application/json"

// JSON is a response envelope whose content is stored as JSON text.
// Structured values passed to SetContent are encoded immediately and not retained.
type JSON struct {
	content string
	status  int
}

// JSONOption configures a JSON envelope.
type JSONOption func(*JSON)

// WithStatus sets the HTTP status written by Render. Zero keeps 200 OK.
func WithStatus(code int) JSONOption {
	return func(j *JSON) {
		if code > 0 {
			j.status = code
		}
	}
}

// NewJSON creates an envelope holding content encoded as JSON.
func NewJSON(content any, opts ...JSONOption) (*JSON, error) {
	j := &JSON{
		content: "null",
		status:  http.StatusOK,
	}

	for _, opt := range opts {
		opt(j)
	}

	if err := j.SetContent(content); err != nil {
		return nil, err
	}

	return j, nil
}

// SetContent encodes v and replaces the stored JSON text.
// On failure the previous content is kept.
func (j *JSON) SetContent(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	j.content = string(b)
	return nil
}

// Content returns the stored JSON text.
func (j *JSON) Content() string {
	return j.content
}

// Decode parses the stored JSON text.
// With asMap true objects decode to map[string]any and arrays to []any;
// otherwise the result is a params.Value that keeps object key order.
func (j *JSON) Decode(asMap bool) (any, error) {
	if asMap {
		var v any
		if err := json.Unmarshal([]byte(j.content), &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return v, nil
	}

	v, err := params.Parse([]byte(j.content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return v, nil
}

// Get queries the stored document with a gjson path such as "user.name" or "items.#".
func (j *JSON) Get(path string) gjson.Result {
	return gjson.Get(j.content, path)
}

// Set writes v at path in the stored document, creating intermediate objects as needed.
func (j *JSON) Set(path string, v any) error {
	if path == "" {
		return ErrInvalidPath
	}
	out, err := sjson.Set(j.content, path, v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPath, path, err)
	}
	j.content = out
	return nil
}

// Delete removes the value at path. Missing paths are not an error.
func (j *JSON) Delete(path string) error {
	out, err := sjson.Delete(j.content, path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPath, path, err)
	}
	j.content = out
	return nil
}

// ContentType returns the media type written by Render.
func (j *JSON) ContentType() string {
	return ContentTypeJSON
}

// Status returns the HTTP status written by Render.
func (j *JSON) Status() int {
	return j.status
}

// Render writes the Content-Type header, the status and the stored JSON text.
// 204 No Content and 304 Not Modified are written without a body.
func (j *JSON) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", j.ContentType())
	w.WriteHeader(j.status)

	switch j.status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	}

	_, err := w.Write([]byte(j.content))
	return err
}

// Response adapts the envelope to a handler response.
func (j *JSON) Response() handler.Response {
	return j.Render
}

// JSONWithStatus creates a handler response that renders v with the given status.
// Encoding failures are passed to the error handler.
func JSONWithStatus(v any, status int) handler.Response {
	j, err := NewJSON(v, WithStatus(status))
	if err != nil {
		return Error(err)
	}
	return j.Response()
}
