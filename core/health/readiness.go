package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
// Checks run with the request context when the response is rendered.
//
//	mux.Handle("/health/ready", srv.Handler(health.Readiness(log, db.Ping)))
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc {
	return func(*request.Request) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			for _, check := range checks {
				if err := check(r.Context()); err != nil {
					log.ErrorContext(r.Context(), "readiness check failed",
						logger.Component("health"),
						logger.Error(err),
					)
					return response.ErrServiceUnavailable
				}
			}
			return response.String("READY")(w, r)
		}
	}
}
