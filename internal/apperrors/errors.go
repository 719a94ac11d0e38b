package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrConflict indicates a stale write: the resource changed since it was read.
var ErrConflict = errors.New("resource version conflict")

// ErrConfiguration indicates a malformed chart of accounts or similar startup
// configuration problem. Reports must never be generated against it.
var ErrConfiguration = errors.New("invalid configuration")

// ErrNoFeeConfig indicates a resident financial profile without a fee
// configuration. Batch operations treat this as a per-resident condition, not a
// fatal error.
var ErrNoFeeConfig = errors.New("resident has no fee configuration")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
