package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different classes of processing failures.
type ErrorType string

const (
	// ErrorTypeValidation covers missing files, wrong types and empty
	// documents. Reported immediately, never retried.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeEncryption covers documents requiring a non-empty credential.
	ErrorTypeEncryption ErrorType = "encryption"
	// ErrorTypeBackend covers OCR engine failures; these walk the fallback
	// chain before surfacing.
	ErrorTypeBackend ErrorType = "backend"
	// ErrorTypeIO covers copy/write failures. Reported immediately since an
	// environment problem is unlikely to self-resolve.
	ErrorTypeIO          ErrorType = "io"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeTimeout     ErrorType = "timeout"
	ErrorTypePermission  ErrorType = "permission"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeSystem      ErrorType = "system"
)

// AppError represents an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target by type
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type
	}
	return false
}

// NewError creates a new application error
func NewError(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errorType, Message: message, Cause: cause}
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewError(ErrorTypeValidation, message, cause)
}

// NewEncryptionError creates an encryption error
func NewEncryptionError(message string, cause error) *AppError {
	return NewError(ErrorTypeEncryption, message, cause)
}

// NewBackendError creates an OCR backend error
func NewBackendError(message string, cause error) *AppError {
	return NewError(ErrorTypeBackend, message, cause)
}

// NewIOError creates an I/O error
func NewIOError(message string, cause error) *AppError {
	return NewError(ErrorTypeIO, message, cause)
}

// NewUnsupportedError creates an unsupported-input error
func NewUnsupportedError(message string, cause error) *AppError {
	return NewError(ErrorTypeUnsupported, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string, cause error) *AppError {
	return NewError(ErrorTypeNotFound, message, cause)
}

// WrapError wraps an existing error with additional context. An empty
// errorType preserves an existing AppError type or classifies the cause.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) && errorType == "" {
		errorType = appErr.Type
	}
	if errorType == "" {
		errorType = classifyError(err)
	}

	return &AppError{Type: errorType, Message: message, Cause: err}
}

// classifyError classifies an error based on its content
func classifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeSystem
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return ErrorTypeTimeout
	case strings.Contains(errStr, "permission denied") || strings.Contains(errStr, "access denied"):
		return ErrorTypePermission
	case strings.Contains(errStr, "no such file") || strings.Contains(errStr, "not found"):
		return ErrorTypeNotFound
	case strings.Contains(errStr, "password") || strings.Contains(errStr, "encrypt"):
		return ErrorTypeEncryption
	case strings.Contains(errStr, "ocr") || strings.Contains(errStr, "tesseract"):
		return ErrorTypeBackend
	case strings.Contains(errStr, "invalid") || strings.Contains(errStr, "corrupt"):
		return ErrorTypeValidation
	default:
		return ErrorTypeSystem
	}
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return classifyError(err)
}

// IsRetriable reports whether the fallback chain should keep trying after
// this failure. Only backend failures walk the chain; validation, I/O and
// encryption failures surface immediately.
func IsRetriable(err error) bool {
	switch GetErrorType(err) {
	case ErrorTypeBackend, ErrorTypeTimeout, ErrorTypeSystem:
		return true
	default:
		return false
	}
}
