package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Conflict(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func Unauthorized(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func BadRequest(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

// StatusCode returns the status carried by err, or 500 for anything else.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return err != nil && StatusCode(err) == http.StatusNotFound
}
