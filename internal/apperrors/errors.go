package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeBadRequest   ErrorType = "BAD_REQUEST"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInternal     ErrorType = "INTERNAL"
)

// AppError is an error carrying a kind that the HTTP layer maps to a status.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{Type: errorType, Message: message}
}

// Wrap keeps the cause of an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{Type: errorType, Message: message, Err: err}
}

func NotFound(message string) error { return New(ErrorTypeNotFound, message) }
func BadRequest(message string) error { return New(ErrorTypeBadRequest, message) }
func Conflict(message string) error { return New(ErrorTypeConflict, message) }
func Unauthorized(message string) error { return New(ErrorTypeUnauthorized, message) }
func Forbidden(message string) error { return New(ErrorTypeForbidden, message) }
func Internal(message string) error { return New(ErrorTypeInternal, message) }

// TypeOf returns the kind of the first AppError in the chain, Internal otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// MessageOf returns the message of the first AppError in the chain.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

func IsNotFound(err error) bool { return is(err, ErrorTypeNotFound) }
func IsBadRequest(err error) bool { return is(err, ErrorTypeBadRequest) }
func IsConflict(err error) bool { return is(err, ErrorTypeConflict) }
func IsUnauthorized(err error) bool { return is(err, ErrorTypeUnauthorized) }
func IsForbidden(err error) bool { return is(err, ErrorTypeForbidden) }

// IsDuplicateError checks if an error is a duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "duplicate entry")
}
