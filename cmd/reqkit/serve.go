package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reqkit/core/config"
	"github.com/dmitrymomot/reqkit/core/event"
	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/health"
	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
	"github.com/dmitrymomot/reqkit/core/server"
	"github.com/dmitrymomot/reqkit/middleware"
)

type appConfig struct {
	Server server.Config
	Log    logger.Config

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
	MetricsPath    string  `env:"METRICS_PATH" envDefault:"/metrics"`
}

const eventRequestReceived = "request.received"

var errNoListeners = errors.New("no request listeners registered")

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Echo every HTTP request back as a JSON request view",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg appConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, prometheus.DefaultRegisterer)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SERVER_ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg appConfig, reg prometheus.Registerer) error {
	log := logger.NewFromConfig(cfg.Log)

	dispatcher := newDispatcher(log, reg)

	srv, err := server.NewFromConfig(cfg.Server,
		server.WithLogger(log),
		server.WithMiddleware(
			middleware.RequestID(),
			middleware.ClientIP(),
			middleware.Logging(log),
			middleware.Metrics(middleware.MetricsConfig{Registerer: reg}),
			middleware.RateLimit(middleware.RateLimitConfig{
				RPS:        cfg.RateLimitRPS,
				Burst:      cfg.RateLimitBurst,
				SetHeaders: true,
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.MetricsPath, promhttp.Handler())
	mux.Handle("/health/live", srv.Handler(health.Liveness))
	mux.Handle("/health/ready", srv.Handler(health.Readiness(log, func(context.Context) error {
		if !dispatcher.HasListeners(eventRequestReceived) {
			return errNoListeners
		}
		return nil
	})))
	mux.Handle("/", srv.Handler(echo(dispatcher, log)))

	return srv.Run(ctx, mux)()
}

func newDispatcher(log *slog.Logger, reg prometheus.Registerer) *event.Dispatcher {
	d := event.NewDispatcher(
		event.WithLogger(log),
		event.WithMiddleware(
			event.LoggingMiddleware(log),
			middleware.EventMetrics(reg, ""),
		),
	)
	d.ListenFunc(eventRequestReceived, flagInsecureWrites)
	return d
}

// flagInsecureWrites marks state-changing requests that arrived over plain HTTP.
func flagInsecureWrites(ctx context.Context, evt *event.Event) error {
	secure, _ := evt.Get("secure", params.Bool(false)).AsBool()
	method := evt.Get("method", params.Null()).String()
	if !secure && method != request.MethodGet && method != request.MethodHead {
		evt.Set("warning", params.String("state-changing request over plain HTTP"))
	}
	return nil
}

func echo(dispatcher *event.Dispatcher, log *slog.Logger) handler.HandlerFunc {
	return func(req *request.Request) handler.Response {
		evt := event.New(eventRequestReceived, map[string]any{
			"method": req.Method(),
			"uri":    req.FullURI(),
			"ip":     req.IP(),
			"secure": req.IsSecure(),
			"ajax":   req.IsAjax(),
		})

		return func(w http.ResponseWriter, r *http.Request) error {
			if err := dispatcher.Dispatch(r.Context(), evt); err != nil {
				log.WarnContext(r.Context(), "request listeners failed", logger.Error(err))
			}

			env, err := response.NewJSON(evt.Params())
			if err != nil {
				return err
			}
			if err := env.Set("query", req.Query()); err != nil {
				return err
			}
			if err := env.Set("data", req.Data()); err != nil {
				return err
			}
			if err := env.Set("cookies", req.Cookies().Names()); err != nil {
				return err
			}
			if id, ok := middleware.GetRequestID(r.Context()); ok {
				if err := env.Set("request_id", id); err != nil {
					return err
				}
			}

			return env.Render(w, r)
		}
	}
}
