package apperror

import (
	"errors"
	"net/http"
)

// Error kinds. Match them with errors.Is against any error returned by the core.
var (
	ErrValidation           = errors.New("validation error")
	ErrUniqueConstraint     = errors.New("unique constraint violation")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrNotFound             = errors.New("resource not found")
	ErrConflict             = errors.New("version conflict")
	ErrStorageUnavailable   = errors.New("storage unavailable")
)

type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Kind    error    `json:"-"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func newKind(code int, kind error, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

// Validation reports malformed or missing input.
func Validation(message string, details ...string) *AppError {
	e := newKind(http.StatusBadRequest, ErrValidation, message, nil)
	e.Details = details
	return e
}

func UniqueConstraint(message string, err error) *AppError {
	return newKind(http.StatusConflict, ErrUniqueConstraint, message, err)
}

func ReferentialIntegrity(message string, err error) *AppError {
	return newKind(http.StatusUnprocessableEntity, ErrReferentialIntegrity, message, err)
}

func NotFound(message string) *AppError {
	return newKind(http.StatusNotFound, ErrNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return newKind(http.StatusConflict, ErrConflict, message, nil)
}

// StorageUnavailable is fatal for the current request and is never retried by the core.
func StorageUnavailable(err error) *AppError {
	return newKind(http.StatusServiceUnavailable, ErrStorageUnavailable, "Storage is temporarily unavailable", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
