package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the common interface of every typed error in the service.
// Handlers read Category and HTTPStatus from it to build the response body.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// --- Domain errors ---

// ValidationError reports bad input from the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("validation error: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError creates a validation error.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError reports a missing or invalid session.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("unauthorized: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError creates an authentication error.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("resource not found: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError creates a not-found error.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError reports a state conflict (duplicate resource, order already shipped...).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("state conflict: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError creates a conflict error.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// StaleError is returned when a listing response was superseded by a newer
// request from the same viewer before it completed.
type StaleError struct {
	Token  uint64
	Latest uint64
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("stale response: request %d superseded by %d", e.Token, e.Latest)
}
func (e *StaleError) Category() string { return "STALE_RESPONSE" }
func (e *StaleError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *StaleError) Unwrap() error    { return nil }

// NewStaleError creates a stale-response error.
func NewStaleError(token, latest uint64) AppError {
	return &StaleError{Token: token, Latest: latest}
}

// --- Infrastructure errors ---

// UpstreamError wraps a failure of the remote catalog API (transport, status or payload).
type UpstreamError struct {
	Msg    string
	Status int // status returned by the remote API, 0 on transport failure
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("upstream error: %s", e.Msg)
}
func (e *UpstreamError) Category() string { return "UPSTREAM_ERROR" }
func (e *UpstreamError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *UpstreamError) Unwrap() error    { return e.Err }

// NewUpstreamError creates an upstream error.
func NewUpstreamError(msg string, status int, err error) AppError {
	return &UpstreamError{Msg: msg, Status: status, Err: err}
}

// InternalError reports an unexpected failure inside the service.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("internal error: %s", e.Msg)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError creates an internal error.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError is a shortcut for an InternalError raised by the database layer.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB)", msg), err)
}

// MapToHTTPStatus translates an error into status, category and message.
// Wrapped chains are searched, so fmt.Errorf("...: %w", appErr) keeps its status.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			// Server side details stay in the logs.
			return appErr.HTTPStatus(), appErr.Category(), publicMessage(appErr)
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "an unexpected error occurred"
}

func publicMessage(err AppError) string {
	switch err.(type) {
	case *UpstreamError:
		return "error loading data from the catalog service"
	default:
		return "an unexpected error occurred"
	}
}
