package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqkit/core/handler"
	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/core/request"
	"github.com/dmitrymomot/reqkit/core/response"
)

// Handler adapts h to net/http using the server's request options, middleware
// and error handler.
//
// Each call builds a request.Request with request.FromHTTP, stores it in the
// http.Request context, runs h and renders the returned response.
// Construction failures are answered with 413 for oversized bodies, 400 for
// unreadable bodies and 500 otherwise. A nil response is written as 204.
func (s *Server) Handler(h handler.HandlerFunc) http.Handler {
	return &adapter{
		h:            handler.Chain(h, s.middlewares...),
		requestOpts:  s.requestOpts,
		errorHandler: s.errorHandler,
		logger:       s.logger,
	}
}

type adapter struct {
	h            handler.HandlerFunc
	requestOpts  []request.Option
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
}

func (a *adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			a.errorHandler(w, r, fmt.Errorf("panic: %v", rec))
		}
	}()

	req, err := request.FromHTTP(r, a.requestOpts...)
	if err != nil {
		a.errorHandler(w, r, requestError(err))
		return
	}

	r = r.WithContext(request.WithContext(r.Context(), req))

	resp := a.h(req)
	if resp == nil {
		resp = response.NoContent()
	}

	if err := resp(w, r); err != nil {
		a.errorHandler(w, r, err)
	}
}

func requestError(err error) error {
	switch {
	case errors.Is(err, request.ErrBodyTooLarge):
		return response.ErrRequestEntityTooLarge.WithError(err)
	case errors.Is(err, request.ErrReadBody):
		return response.ErrBadRequest.WithError(err)
	default:
		return err
	}
}

// logErrors returns the default error handler: server errors are logged,
// then every error is rendered with response.JSONErrorHandler.
func logErrors(log *slog.Logger) handler.ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		httpErr := response.AsHTTPError(err)
		if httpErr.Status >= http.StatusInternalServerError {
			log.LogAttrs(r.Context(), slog.LevelError, "request failed",
				logger.Component("server"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(httpErr.Status),
				logger.Error(err),
			)
		}
		response.JSONErrorHandler(w, r, httpErr)
	}
}
