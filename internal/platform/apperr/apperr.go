// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package apperr defines the centralized error handling framework for Pivora.

It provides a rich error type that bridges the gap between low-level transport
errors, backend API error envelopes, and the messages shown to an operator.

Architecture:

  - AppError: A struct containing a machine-readable Code and a user-friendly message.
  - Extraction: Backend error envelopes are decoded into AppError by internal/api.
  - Classification: Client-side failures (transport, expired token, validation)
    get their own codes so the console can distinguish "fix your input" from
    "the backend is unreachable".

Every error that leaves a service or the wizard should be an [AppError] so the
CLI renders it consistently.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Pivora console.
//
// It carries the backend HTTP status (when one exists), a machine-readable
// code, an operator-safe message, and an optional slice of field-level
// validation errors.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the operator.
	Message string `json:"error"`
	// HTTPStatus is the backend response status, or 0 for client-side errors.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the operator-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client-Side Errors

// ValidationError creates an [AppError] with optional per-field details.
//
// Validation errors block step advancement or submission; they are recoverable
// by operator correction and never reach the backend.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Transport creates an [AppError] for a failed network round trip.
func Transport(cause error) *AppError {
	return &AppError{
		Code:    "TRANSPORT_ERROR",
		Message: "Could not reach the PIM backend",
		Cause:   cause,
	}
}

// TokenExpired creates an [AppError] for a bearer token past its expiry.
func TokenExpired() *AppError {
	return &AppError{
		Code:       "TOKEN_EXPIRED",
		Message:    "API token has expired, sign in again",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// LookupFailed wraps a reference-data fetch failure.
//
// Lookup failures are never fatal to a screen: callers fall back to empty
// lists and surface the message as a dismissible banner.
func LookupFailed(resource string, cause error) *AppError {
	return &AppError{
		Code:    "LOOKUP_FAILED",
		Message: fmt.Sprintf("Failed to load %s", resource),
		Cause:   cause,
	}
}

// # Backend Errors

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Item") // Returns "Item not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Conflict creates a 409 [AppError] for duplicate or version-conflict responses.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// API creates an [AppError] from a decoded backend error envelope.
//
// The message extraction chain is: envelope message, then HTTP status text,
// then a generic fallback.
func API(status int, code, msg string, details ...FieldError) *AppError {
	if code == "" {
		code = "API_ERROR"
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "An unexpected error occurred"
	}
	return &AppError{
		Code:       code,
		Message:    msg,
		HTTPStatus: status,
		Details:    details,
	}
}

// Internal creates an [AppError] wrapping an unexpected client-side error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
