package handler

import (
	"net/http"

	"github.com/dmitrymomot/reqkit/core/request"
)

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are passed to the adapter's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles one request built by the adapter and returns the response to render.
type HandlerFunc func(req *request.Request) Response

// ErrorHandler handles errors returned by handlers or responses.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps h with middlewares. The first middleware is the outermost.
func Chain(h HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			h = middlewares[i](h)
		}
	}
	return h
}
