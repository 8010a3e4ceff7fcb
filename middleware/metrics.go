package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/reqkit/core/event"
	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *request.Request) bool
	// Registerer receives the collectors (default: prometheus.DefaultRegisterer)
	Registerer prometheus.Registerer
	// Namespace prefixes every metric name (default: "reqkit")
	Namespace string
	// Buckets for the request duration histogram (default: prometheus.DefBuckets)
	Buckets []float64
}

// Metrics creates a middleware that records request counts and durations.
//
// Exported series:
//
//	<ns>_http_requests_total{method,status}
//	<ns>_http_request_duration_seconds{method}
//
// The method label is the resolved method, so _method overrides are counted
// under the overriding verb. Verbs outside the standard set are counted as
// "OTHER" to keep label cardinality bounded. Collectors already registered under the same
// names are reused.
func Metrics(cfg MetricsConfig) handler.Middleware {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "reqkit"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}

	requests := register(cfg.Registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests by resolved method and status code.",
	}, []string{"method", "status"}))

	durations := register(cfg.Registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds by resolved method.",
		Buckets:   cfg.Buckets,
	}, []string{"method"}))

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(req *request.Request) handler.Response {
			if cfg.Skip != nil && cfg.Skip(req) {
				return next(req)
			}

			start := time.Now()
			method := methodLabel(req.Method())
			resp := next(req)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

				var err error
				if resp != nil {
					err = resp(wrapped, r)
				}

				status := wrapped.statusCode
				switch {
				case err != nil && !wrapped.headerWritten:
					status = response.AsHTTPError(err).Status
				case resp == nil:
					status = http.StatusNoContent
				}

				requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
				durations.WithLabelValues(method).Observe(time.Since(start).Seconds())
				return err
			}
		}
	}
}

// methodLabel maps a resolved method onto a fixed label set.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "OTHER"
}

// EventMetrics creates a dispatcher middleware counting listener invocations
// by event name and outcome ("ok" or "error").
//
//	d := event.NewDispatcher(event.WithMiddleware(middleware.EventMetrics(reg, "")))
func EventMetrics(reg prometheus.Registerer, namespace string) event.Middleware {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "reqkit"
	}

	handled := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "event",
		Name:      "listener_calls_total",
		Help:      "Number of event listener invocations by event name and outcome.",
	}, []string{"event", "outcome"}))

	return func(next event.Listener) event.Listener {
		return event.ListenerFunc(func(ctx context.Context, evt *event.Event) error {
			err := next.Handle(ctx, evt)
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			handled.WithLabelValues(evt.Name(), outcome).Inc()
			return err
		})
	}
}

// register adds c to reg, returning the existing collector when one with the
// same descriptor is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
