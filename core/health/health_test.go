package health_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/health"
	"github.com/dmitrymomot/reqkit/core/server"
)

func serve(h handler.HandlerFunc) *httptest.ResponseRecorder {
	srv := server.New(":0", server.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	w := httptest.NewRecorder()
	srv.Handler(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	w := serve(health.Liveness)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	w := serve(health.NoContent)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("db unreachable") }

	w := serve(health.Readiness(log, healthy))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())

	w = serve(health.Readiness(log, healthy, broken))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, logs.String(), "db unreachable")
}
