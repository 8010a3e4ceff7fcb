// Package middleware provides handler.Middleware for request IDs, client IP
// handling, request logging, rate limiting and Prometheus metrics.
//
// Each middleware has a default constructor and a WithConfig variant:
//
//	srv := server.New(":8080", server.WithMiddleware(
//		middleware.RequestID(),
//		middleware.ClientIPWithConfig(middleware.ClientIPConfig{
//			StoreInHeader: true,
//			ValidateFunc: func(req *request.Request, ip string) error {
//				if blocked(ip) {
//					return errors.New("address blocked")
//				}
//				return nil
//			},
//		}),
//		middleware.Logging(log),
//	))
//
// Values for the handler are written into the request itself (RequestID sets
// the X-Request-ID header in the request's header store). Values for the
// render phase are stored in the http.Request context and read with
// GetRequestID and GetClientIP.
//
// ClientIP and the default RateLimit key resolve the address with
// request.Request.IP, so the proxy trust settings of the request apply.
//
// EventMetrics is an event.Middleware rather than a handler one; install it on
// an event.Dispatcher to count listener calls.
package middleware
