package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// DefaultRequestIDHeader is the header carrying the request ID.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting keeps a request ID sent by the client
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
func RequestID() handler.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
//
// The ID is written into the request's header store so later middleware and
// the handler read it with req.Header, stored in the render context for
// GetRequestID, and echoed in the response headers.
func RequestIDWithConfig(cfg RequestIDConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultRequestIDHeader
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(req *request.Request) handler.Response {
			if cfg.Skip != nil && cfg.Skip(req) {
				return next(req)
			}

			var requestID string
			if cfg.UseExisting {
				requestID = req.Header(cfg.HeaderName, "")
			}
			if requestID == "" {
				requestID = cfg.Generator()
			}

			req.Headers().Set(http.CanonicalHeaderKey(cfg.HeaderName), params.String(requestID))

			resp := next(req)
			if resp == nil {
				resp = response.NoContent()
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(cfg.HeaderName, requestID)
				r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey{}, requestID))
				return resp(w, r)
			}
		}
	}
}

// GetRequestID retrieves the request ID stored by RequestID from a render context.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
