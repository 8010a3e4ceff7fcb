package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

type clientIPContextKey struct{}

// ClientIPConfig configures the client IP middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// StoreInContext stores the IP in the render context for GetClientIP
	StoreInContext bool
	// HeaderName specifies the response header name for the client IP (default: "X-Client-IP")
	HeaderName string
	// StoreInHeader includes the IP in the response headers
	StoreInHeader bool
	// ValidateFunc rejects requests with 403 Forbidden when it returns an error
	ValidateFunc func(req *request.Request, ip string) error
}

// ClientIP creates a client IP middleware that stores the IP in the render context.
func ClientIP() handler.Middleware {
	return ClientIPWithConfig(ClientIPConfig{
		StoreInContext: true,
	})
}

// ClientIPWithConfig creates a client IP middleware with custom configuration.
// The IP is resolved with request.Request.IP, so it follows the request's
// proxy trust policy.
func ClientIPWithConfig(cfg ClientIPConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	if !cfg.StoreInContext && !cfg.StoreInHeader && cfg.ValidateFunc == nil {
		cfg.StoreInContext = true
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(req *request.Request) handler.Response {
			if cfg.Skip != nil && cfg.Skip(req) {
				return next(req)
			}

			ip := req.IP()

			if cfg.ValidateFunc != nil {
				if err := cfg.ValidateFunc(req, ip); err != nil {
					return response.Error(response.ErrForbidden.WithError(err))
				}
			}

			resp := next(req)
			if resp == nil || (!cfg.StoreInContext && !cfg.StoreInHeader) {
				return resp
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				if cfg.StoreInHeader {
					w.Header().Set(cfg.HeaderName, ip)
				}
				if cfg.StoreInContext {
					r = r.WithContext(context.WithValue(r.Context(), clientIPContextKey{}, ip))
				}
				return resp(w, r)
			}
		}
	}
}

// GetClientIP retrieves the client IP stored by ClientIP from a render context.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
