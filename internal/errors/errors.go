// Package errors provides error types and handling for hookbridge.
// It includes receiver error kinds with their associated HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with an associated HTTP status code.
type AppError struct {
	// Code is the machine-readable error kind, returned as "type" in responses
	Code string
	// Message is a user-friendly error message
	Message string
	// StatusCode is the HTTP status code to return
	StatusCode int
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Receiver error kinds. These are the "type" values emitted in JSON error
// responses, so they are part of the wire contract, not just log vocabulary.
const (
	ErrCodeAuthenticity   = "AuthenticityError"
	ErrCodeSignature      = "SignatureVerificationError"
	ErrCodeParsing        = "RequestParsingError"
	ErrCodeMultipleAck    = "MultipleAckError"
	ErrCodeTimeout        = "RequestTimeoutError"
	ErrCodeNotInitialized = "NotInitializedError"
	ErrCodeHandler        = "HandlerError"
	ErrCodeUnexpected     = "UnexpectedError"
)

// NewClientError creates a new client error (4xx status codes).
func NewClientError(statusCode int, code, message string, cause error) *AppError {
	if statusCode < 400 || statusCode >= 500 {
		panic(fmt.Sprintf("NewClientError called with non-client status code: %d", statusCode))
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NewServerError creates a new server error (5xx status codes).
func NewServerError(statusCode int, code, message string, cause error) *AppError {
	if statusCode < 500 || statusCode >= 600 {
		panic(fmt.Sprintf("NewServerError called with non-server status code: %d", statusCode))
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// Convenience constructors for receiver errors

// ErrAuthenticity creates an authenticity failure (401) for missing or
// stale verification material.
func ErrAuthenticity(message string, cause error) *AppError {
	return NewClientError(http.StatusUnauthorized, ErrCodeAuthenticity, message, cause)
}

// ErrSignatureVerification creates a signature mismatch error (401).
func ErrSignatureVerification(message string, cause error) *AppError {
	return NewClientError(http.StatusUnauthorized, ErrCodeSignature, message, cause)
}

// ErrRequestParsing creates a body parsing error (400).
func ErrRequestParsing(message string, cause error) *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeParsing, message, cause)
}

// ErrMultipleAck reports an ack call on an event that has already left the
// pending state. It carries no meaningful HTTP status of its own: the HTTP
// leg was settled by the first ack or the timeout, so this surfaces to the
// ack caller only.
func ErrMultipleAck(message string) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeMultipleAck, message, nil)
}

// ErrRequestTimeout creates an acknowledgment deadline error (408).
func ErrRequestTimeout(cause error) *AppError {
	return NewClientError(http.StatusRequestTimeout, ErrCodeTimeout, "Request timeout", cause)
}

// ErrNotInitialized creates a missing-wiring error (500) for a receiver
// used before its engine was bound.
func ErrNotInitialized(message string) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeNotInitialized, message, nil)
}

// ErrHandler creates the fixed engine-startup failure error (500).
func ErrHandler(cause error) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeHandler, "Internal Server Error", cause)
}

// ErrUnexpected creates the catch-all internal error (500).
func ErrUnexpected(cause error) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeUnexpected, "Internal server error", cause)
}

// GetStatusCode extracts the HTTP status code from an error.
// Returns 500 if the error is not an AppError.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetErrorCode extracts the error kind from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
