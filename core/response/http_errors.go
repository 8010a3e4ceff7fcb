package response

import (
	"net/http"
	"strings"
)

// HTTPError is an error carrying the status and body of an error response.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewHTTPError creates an error for status with a code derived from the status text.
// An empty message defaults to the status text.
func NewHTTPError(status int, message string) HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return HTTPError{
		Status:  status,
		Code:    statusCode(status),
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with err recorded as the "cause" detail.
func (e HTTPError) WithError(err error) HTTPError {
	if err == nil {
		return e
	}
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Predefined errors for the statuses a request handler commonly answers with.
var (
	ErrBadRequest            = NewHTTPError(http.StatusBadRequest, "")
	ErrUnauthorized          = NewHTTPError(http.StatusUnauthorized, "")
	ErrForbidden             = NewHTTPError(http.StatusForbidden, "")
	ErrNotFound              = NewHTTPError(http.StatusNotFound, "")
	ErrMethodNotAllowed      = NewHTTPError(http.StatusMethodNotAllowed, "")
	ErrConflict              = NewHTTPError(http.StatusConflict, "")
	ErrRequestEntityTooLarge = NewHTTPError(http.StatusRequestEntityTooLarge, "")
	ErrUnsupportedMediaType  = NewHTTPError(http.StatusUnsupportedMediaType, "")
	ErrUnprocessableEntity   = NewHTTPError(http.StatusUnprocessableEntity, "")
	ErrTooManyRequests       = NewHTTPError(http.StatusTooManyRequests, "")
	ErrInternalServerError   = NewHTTPError(http.StatusInternalServerError, "")
	ErrNotImplemented        = NewHTTPError(http.StatusNotImplemented, "")
	ErrServiceUnavailable    = NewHTTPError(http.StatusServiceUnavailable, "")
)

// statusCode turns "Request Entity Too Large" into "request_entity_too_large".
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	text = strings.ToLower(text)
	text = strings.NewReplacer("'", "", "-", "_", " ", "_").Replace(text)
	return text
}
