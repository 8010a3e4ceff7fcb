package health

import (
	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
//	mux.Handle("/health/live", srv.Handler(health.Liveness))
func Liveness(*request.Request) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns HTTP 204 without body.
//
//	mux.Handle("/ping", srv.Handler(health.NoContent))
func NoContent(*request.Request) handler.Response {
	return response.NoContent()
}
