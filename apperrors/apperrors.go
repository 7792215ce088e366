package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the one error shape that crosses layer boundaries.
// Handlers map it to the {"message": ...} JSON envelope; the Cause
// chain stays server-side.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) *AppError {
	return New(CodeInvalidArgument, msg)
}

func NotFound(msg string) *AppError {
	return New(CodeNotFound, msg)
}

func AlreadyExists(msg string) *AppError {
	return New(CodeAlreadyExists, msg)
}

func Unauthorized(msg string) *AppError {
	return New(CodeUnauthenticated, msg)
}

func UploadFailed(msg string, cause error) *AppError {
	return &AppError{Code: CodeUploadFailed, Message: msg, Cause: cause}
}

func Internal(msg string) *AppError {
	return New(CodeInternal, msg)
}

// HTTPStatus maps an error code to the response status. Duplicate
// email is deliberately 400, not 409.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidArgument, CodeAlreadyExists:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError pulls an AppError out of an error chain, wrapping
// anything unexpected as INTERNAL so no raw error text leaks.
func FromError(err error) *AppError {
	var app *AppError
	if errors.As(err, &app) {
		return app
	}
	return Wrap(CodeInternal, "Internal server error", err)
}
