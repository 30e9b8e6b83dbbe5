package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidPrice indicates a proposed price below the cost+markup floor, or price tiers that cannot be used.
var ErrInvalidPrice = errors.New("invalid price")

// ErrNoAuthorizationNeeded indicates the proposed price is already within the requester's own authority.
var ErrNoAuthorizationNeeded = errors.New("no authorization needed")

// ErrRoleNotEligible indicates the role may not create or act on authorization requests.
var ErrRoleNotEligible = errors.New("role not eligible")

// ErrInsufficientAuthority indicates the role is below the level required to resolve a specific request.
var ErrInsufficientAuthority = errors.New("insufficient authority")

// ErrAlreadyResolved indicates a transition was attempted on a request in a terminal state.
var ErrAlreadyResolved = errors.New("authorization request already resolved")

// AppError wraps an infrastructure failure with a status code.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// StatusCode maps an error to the HTTP status the transport layer should answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrNoAuthorizationNeeded), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRoleNotEligible), errors.Is(err, ErrInsufficientAuthority):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyResolved), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
