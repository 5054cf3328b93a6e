package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a typed client error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrCapacity           = New("CAPACITY_EXCEEDED", http.StatusBadRequest, "selection capacity exceeded")
	ErrInFlight           = New("REQUEST_IN_FLIGHT", http.StatusConflict, "a submission is already in flight")
	ErrTransport          = New("TRANSPORT_ERROR", http.StatusBadGateway, "request failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// remotePayload covers the error body shapes the API is known to return.
type remotePayload struct {
	Message string `json:"message"`
	ErrText string `json:"error"`
	Nested  *struct {
		Message string `json:"message"`
	} `json:"data"`
}

// FromResponse normalises a failed HTTP exchange into an *Error. The message is
// chosen by precedence: server message field, server error field, transport error
// text, then the caller-supplied fallback.
func FromResponse(status int, body []byte, transportErr error, fallback string) *Error {
	message := ""

	if len(body) > 0 {
		var payload remotePayload
		if err := json.Unmarshal(body, &payload); err == nil {
			switch {
			case strings.TrimSpace(payload.Message) != "":
				message = payload.Message
			case strings.TrimSpace(payload.ErrText) != "":
				message = payload.ErrText
			case payload.Nested != nil && strings.TrimSpace(payload.Nested.Message) != "":
				message = payload.Nested.Message
			}
		}
	}

	if message == "" && transportErr != nil {
		message = transportErr.Error()
	}
	if message == "" {
		message = fallback
	}
	if message == "" {
		message = ErrTransport.Message
	}

	code := codeForStatus(status)
	if status == 0 {
		status = ErrTransport.Status
	}
	return &Error{Code: code, Status: status, Message: message, Err: transportErr}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized.Code
	case http.StatusNotFound:
		return ErrNotFound.Code
	case http.StatusConflict:
		return ErrConflict.Code
	case http.StatusBadRequest:
		return ErrValidation.Code
	case 0:
		return ErrTransport.Code
	default:
		return "API_ERROR"
	}
}
