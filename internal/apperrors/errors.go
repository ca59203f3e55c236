// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries a status classification alongside the message. The HTTP
// layer only translates Status into a wire code; services decide the class.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message}
}

func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func Auth(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: resource + " not found"}
}

// NoData marks an export over an empty result set.
func NoData() *Error {
	return &Error{Status: http.StatusNotFound, Code: "NO_DATA", Message: "no records to export"}
}

func Conflict(message string, err error) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// From returns err as an *Error, wrapping anything unclassified as an
// internal error so untagged failures default to 500.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

func StatusOf(err error) int {
	return From(err).Status
}

func IsStatus(err error, status int) bool {
	return From(err).Status == status
}
