// Package server runs reqkit handlers on net/http with graceful shutdown.
//
// Server.Handler adapts a handler.HandlerFunc: it builds a request.Request
// from the incoming *http.Request, runs the middleware chain and the handler,
// renders the returned response and passes errors to the error handler. The
// default error handler logs server errors and renders every error as a JSON
// envelope.
//
//	cfg := server.DefaultConfig()
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	srv, err := server.NewFromConfig(cfg,
//		server.WithLogger(log),
//		server.WithMiddleware(middleware.Logging(log)),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle("/users", srv.Handler(listUsers))
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//
// Config reads SERVER_* variables for the listener and REQUEST_* variables
// for request construction (proxy trust and body size limit).
//
// # TLS
//
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE load a static key pair.
// Without them, SERVER_AUTOCERT_DOMAINS enables Let's Encrypt certificates
// through golang.org/x/crypto/acme/autocert (see AutoCertTLS). Requests served
// over TLS report HTTPS=on, so request.Request.IsSecure holds for them.
package server
