package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mes-platform/production-service/internal/domain"
)

// Standard error codes
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeNotFound               = "RESOURCE_NOT_FOUND"
	CodeConflict               = "CONFLICT"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeReleaseRequired        = "RELEASE_REQUIRED"
	CodeOutputRequired         = "OUTPUT_REQUIRED"
	CodeInvalidStageTransition = "INVALID_STAGE_TRANSITION"
	CodeNotAtFinalStage        = "NOT_AT_FINAL_STAGE"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeBadRequest             = "BAD_REQUEST"
)

// AppError represents an application error with HTTP status and error code
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a single detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Wrap wraps an existing error
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// NewAppError creates a new AppError
func NewAppError(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ErrValidation creates a validation error
func ErrValidation(message string) *AppError {
	return NewAppError(CodeValidationError, message, http.StatusBadRequest)
}

// ErrNotFound creates a not found error
func ErrNotFound(resource string) *AppError {
	return NewAppError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ErrNotFoundWithID creates a not found error with ID
func ErrNotFoundWithID(resource, id string) *AppError {
	return ErrNotFound(resource).WithDetail("id", id)
}

// ErrConflict creates a conflict error
func ErrConflict(code, message string) *AppError {
	return NewAppError(code, message, http.StatusConflict)
}

// ErrBadRequest creates a bad request error
func ErrBadRequest(message string) *AppError {
	return NewAppError(CodeBadRequest, message, http.StatusBadRequest)
}

// ErrInternal creates an internal server error
func ErrInternal(message string) *AppError {
	if message == "" {
		message = "internal server error"
	}
	return NewAppError(CodeInternalError, message, http.StatusInternalServerError)
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// MapDomainError maps production domain errors to AppErrors. Gating
// failures are conflicts the caller can act on (release the job, record
// output) rather than malformed requests.
func MapDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrReleaseRequired):
		return ErrConflict(CodeReleaseRequired, err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrOutputRequired):
		return ErrConflict(CodeOutputRequired, err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrInvalidStageTransition):
		return ErrConflict(CodeInvalidStageTransition, err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrNotAtFinalStage):
		return ErrConflict(CodeNotAtFinalStage, err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return ErrConflict(CodeInvalidTransition, err.Error()).Wrap(err)
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrBlockReasonRequired):
		return ErrValidation(err.Error()).Wrap(err)
	default:
		return ErrInternal("").Wrap(err)
	}
}
