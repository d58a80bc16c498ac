// Package errors provides application-level error types shared by every layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeBadRequest      ErrorType = "bad_request"
	ErrorTypeExternalService ErrorType = "external_service_error"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
)

// AppError represents an application error with an HTTP status attached.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: strings.Join(details, "; "),
	}
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError signals that no valid credential was presented.
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError signals a valid credential without the required grant.
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewExternalServiceError wraps a failed call to a third party such as the
// payment provider. The cause is kept out of the client-visible message.
func NewExternalServiceError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeExternalService, http.StatusBadGateway, message, details)
}

func NewTooManyRequestsError(message string) *AppError {
	return newAppError(ErrorTypeTooManyRequests, http.StatusTooManyRequests, message, nil)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsConflictError(err error) bool     { return isType(err, ErrorTypeConflict) }
func IsNotFoundError(err error) bool     { return isType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool   { return isType(err, ErrorTypeValidation) }
func IsUnauthorizedError(err error) bool { return isType(err, ErrorTypeUnauthorized) }
func IsForbiddenError(err error) bool    { return isType(err, ErrorTypeForbidden) }
func IsBadRequestError(err error) bool   { return isType(err, ErrorTypeBadRequest) }

func IsExternalServiceError(err error) bool { return isType(err, ErrorTypeExternalService) }

// IsDuplicateError checks if the error is a database duplicate key error.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// IsForeignKeyError reports a row that is still referenced, or a reference
// to a row that does not exist.
func IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "foreign key constraint fails") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
