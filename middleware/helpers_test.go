package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/server"
)

// serve runs h behind mws through the server adapter and returns the recorded response.
func serve(hr *http.Request, h handler.HandlerFunc, mws ...handler.Middleware) *httptest.ResponseRecorder {
	srv := server.New(":0",
		server.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		server.WithMiddleware(mws...),
	)
	w := httptest.NewRecorder()
	srv.Handler(h).ServeHTTP(w, hr)
	return w
}

func ok(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("ok"))
	return err
}
