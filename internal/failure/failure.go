package failure

import (
	"errors"
	"net/http"
)

// Failure carries an HTTP status code along with a message that is safe to return to clients.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest wraps a validation error. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

func InternalError(err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Code: http.StatusInternalServerError, Message: err.Error()}
}

// GetCode returns the status code carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err maps to 404.
func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}
