package models

import (
	"errors"
	"fmt"
)

// Error codes returned by the engine. Codes are stable; messages are not.
const (
	CodeSelfReference      = "SELF_REFERENCE"
	CodeDuplicateEdge      = "DUPLICATE_EDGE"
	CodeNotFound           = "NOT_FOUND"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeCascadeFailure     = "CASCADE_FAILURE"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is the engine's error type. Code identifies the error kind;
// Err carries the underlying storage error when there is one.
type AppError struct {
	Code    string
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

// NewSelfReferenceError reports an edge whose two endpoints are the same
// user where that is disallowed.
func NewSelfReferenceError(action string) *AppError {
	return &AppError{
		Code:    CodeSelfReference,
		Message: fmt.Sprintf("cannot %s yourself", action),
	}
}

// NewDuplicateEdgeError reports a uniqueness constraint that is already
// satisfied. Callers treat it as idempotent success, not failure.
func NewDuplicateEdgeError(kind string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEdge,
		Message: fmt.Sprintf("%s already exists", kind),
	}
}

// NewNotFoundError reports a missing referenced entity.
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewStorageUnavailableError reports a transient storage failure. The
// whole operation is safe to retry since all mutations are atomic.
func NewStorageUnavailableError(err error) *AppError {
	return &AppError{
		Code:    CodeStorageUnavailable,
		Message: "storage unavailable",
		Err:     err,
	}
}

// NewCascadeFailureError reports a multi-store deletion that could not
// complete. The transaction is rolled back; nothing was applied.
func NewCascadeFailureError(err error) *AppError {
	return &AppError{
		Code:    CodeCascadeFailure,
		Message: "cascade deletion failed",
		Err:     err,
	}
}

// NewValidationError reports invalid caller input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewInternalError wraps an unexpected storage or programming error.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// ErrorCode extracts the engine error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsSelfReference reports whether err is a self-reference rejection.
func IsSelfReference(err error) bool { return ErrorCode(err) == CodeSelfReference }

// IsDuplicateEdge reports whether err is a duplicate-edge rejection.
func IsDuplicateEdge(err error) bool { return ErrorCode(err) == CodeDuplicateEdge }

// IsNotFound reports whether err is a missing-entity error.
func IsNotFound(err error) bool { return ErrorCode(err) == CodeNotFound }

// IsStorageUnavailable reports whether err is transient and retryable.
func IsStorageUnavailable(err error) bool { return ErrorCode(err) == CodeStorageUnavailable }

// IsCascadeFailure reports whether err is a failed multi-store deletion.
func IsCascadeFailure(err error) bool { return ErrorCode(err) == CodeCascadeFailure }
