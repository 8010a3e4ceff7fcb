// Package health provides handlers for liveness and readiness probes.
//
//	mux.Handle("/health/live", srv.Handler(health.Liveness))
//	mux.Handle("/health/ready", srv.Handler(health.Readiness(log, db.PingContext)))
//	mux.Handle("/ping", srv.Handler(health.NoContent))
//
// Readiness checks have the signature func(context.Context) error and run
// with the request context.
package health
