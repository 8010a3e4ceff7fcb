package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogHeaders adds request headers to the record (default: false)
	LogHeaders bool

	// SensitiveHeaders are redacted when LogHeaders is set (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging creates a logging middleware that writes one record per request.
func Logging(log *slog.Logger) handler.Middleware {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a logging middleware with custom configuration.
//
// The record is written after the response has been rendered and carries the
// resolved method, URI, client IP, scheme, status, size and duration. 5xx
// responses are logged at error level, 4xx and slow requests at warning level.
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(req *request.Request) handler.Response {
			if cfg.Skip != nil && cfg.Skip(req) {
				return next(req)
			}

			start := time.Now()

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(req.Method()),
				logger.URI(req.URI(false, true)),
				logger.ClientIP(req.IP()),
				logger.Secure(req.IsSecure()),
			}

			if id := req.Header(DefaultRequestIDHeader, ""); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}

			if cfg.LogHeaders {
				attrs = append(attrs, headerAttrs(req, cfg.SensitiveHeaders))
			}

			resp := next(req)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

				var err error
				if resp != nil {
					err = resp(wrapped, r)
				}

				duration := time.Since(start)

				status := wrapped.statusCode
				if err != nil && !wrapped.headerWritten {
					status = response.AsHTTPError(err).Status
				}

				attrs := append(slices.Clip(attrs),
					logger.StatusCode(status),
					slog.Int("bytes_out", wrapped.size),
					logger.Duration(duration),
				)

				level := cfg.LogLevel
				switch {
				case status >= 500:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= 400:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "http request", attrs...)
				return err
			}
		}
	}
}

func headerAttrs(req *request.Request, sensitive []string) slog.Attr {
	entries := req.Headers().All()
	attrs := make([]slog.Attr, 0, len(entries))
	for _, e := range entries {
		if slices.ContainsFunc(sensitive, func(s string) bool { return http.CanonicalHeaderKey(s) == http.CanonicalHeaderKey(e.Key) }) {
			attrs = append(attrs, slog.String(e.Key, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.String(e.Key, e.Value.String()))
	}
	return logger.Group("headers", attrs...)
}

// responseWriter wraps http.ResponseWriter to capture the status and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
