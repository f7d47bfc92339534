package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// Unauthorized: caller is not admin / not pendingAdmin / not the
	// timelock itself.
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// BadRequest covers malformed input and out-of-bounds parameters
	// such as a delay outside the allowed window.
	BadRequest ErrorCode = "BAD_REQUEST"
	// PreconditionFailed: the operation is well formed but the current
	// state rejects it (not queued, not matured, stale).
	PreconditionFailed ErrorCode = "PRECONDITION_FAILED"
	// ExternalCallError: a downstream invocation (administrative call,
	// burn, value transfer) reported failure.
	ExternalCallError ErrorCode = "EXTERNAL_CALL_ERROR"
	// NotFound is returned when a requested entity does not exist.
	NotFound ErrorCode = "NOT_FOUND"
	// InternalServiceError is the catch-all for storage and wiring
	// failures.
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

// Error carries an HTTP status code and a service error code alongside the
// underlying error so handlers can map failures without string matching.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewUnauthorizedError(err error) *Error {
	return NewError(http.StatusUnauthorized, Unauthorized, err)
}

func NewBadRequestError(err error) *Error {
	return NewError(http.StatusBadRequest, BadRequest, err)
}

func NewPreconditionFailedError(err error) *Error {
	return NewError(http.StatusPreconditionFailed, PreconditionFailed, err)
}

func NewExternalCallError(err error) *Error {
	return NewError(http.StatusBadGateway, ExternalCallError, err)
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// HasErrorCode reports whether err is a *types.Error carrying the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	var serviceErr *Error
	if !errors.As(err, &serviceErr) {
		return false
	}
	return serviceErr.ErrorCode == code
}
