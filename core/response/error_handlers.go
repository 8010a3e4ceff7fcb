package response

import (
	"errors"
	"net/http"
)

type statusCoder interface {
	StatusCode() int
}

// AsHTTPError converts err to an HTTPError.
// HTTPError values in the chain are returned as is. Errors implementing
// StatusCode() int keep their status with the status text as message.
// Everything else becomes a 500. The original error is kept as the "cause" detail.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError

	var sc statusCoder
	if errors.As(err, &sc) {
		if s := sc.StatusCode(); s >= 400 && s < 600 {
			status = s
		}
	}

	return NewHTTPError(status, "").WithError(err)
}

// ErrorHandler writes errors as text/plain responses.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	_ = StringWithStatus(httpErr.Message, httpErr.Status)(w, r)
}

// JSONErrorHandler writes errors as JSON envelopes of the form
// {"code": "...", "message": "...", "details": {...}}.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := AsHTTPError(err)
	_ = JSONWithStatus(httpErr, httpErr.Status)(w, r)
}
