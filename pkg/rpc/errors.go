package rpc

import (
	"errors"
	"net/http"
)

// Error codes carried in the error envelope.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotSupported = "METHOD_NOT_SUPPORTED"
	CodeConflict           = "CONFLICT"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// Error is a procedure failure with a transport status and a message safe to
// show to the caller.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`

	err error
}

// NewError creates an Error with the code derived from status.
func NewError(status int, message string) *Error {
	return &Error{
		Status:  status,
		Code:    CodeFor(status),
		Message: message,
	}
}

// Wrap attaches a status to err. An err that already is an *Error is returned
// unchanged.
func Wrap(status int, err error) *Error {
	if err == nil {
		return nil
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}

	return &Error{
		Status:  status,
		Code:    CodeFor(status),
		Message: err.Error(),
		err:     err,
	}
}

// AsError returns the *Error in err's chain or wraps err as an internal error.
func AsError(err error) *Error {
	return Wrap(http.StatusInternalServerError, err)
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// CodeFor maps an HTTP status to its envelope code.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotSupported
	case http.StatusConflict:
		return CodeConflict
	case http.StatusRequestEntityTooLarge:
		return CodePayloadTooLarge
	default:
		if status >= 400 && status < 500 {
			return CodeBadRequest
		}
		return CodeInternal
	}
}
