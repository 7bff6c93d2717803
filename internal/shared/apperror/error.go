package apperror

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string // INVALID_INPUT, NOT_FOUND, ...
	Message    string // safe to show to the client
	HTTPStatus int
	Err        error // original cause, logged only
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap returns nil when err is nil so it can be used inline on return paths.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Invalid is shorthand for a 400 with a custom message.
func Invalid(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}
