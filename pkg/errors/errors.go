// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package errors provides typed error handling for the AstraSync SDK.
// Validation failures and transport failures are distinct codes so callers
// can tell a bad request apart from a registry that is down.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode classifies SDK errors.
type ErrorCode string

const (
	// CodeInternal indicates an internal SDK error.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeInvalidInput indicates a caller-contract violation, such as a
	// missing or malformed email address. Raised before any network call.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeUnauthorized indicates missing or rejected credentials.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeRegistryFailure indicates the remote registration call failed:
	// network error or non-success HTTP status. The cause is attached.
	CodeRegistryFailure ErrorCode = "REGISTRY_FAILURE"

	// CodeNotFound indicates the requested agent was not found.
	CodeNotFound ErrorCode = "NOT_FOUND"
)

// Error is a typed error with context for logging and observability.
// It implements the error interface and supports errors.As/Is.
type Error struct {
	Code       ErrorCode
	Message    string
	Err        error
	Context    map[string]any
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON implements json.Marshaler for structured logging.
func (e *Error) MarshalJSON() ([]byte, error) {
	payload := struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Err     string         `json:"error,omitempty"`
		Context map[string]any `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	}
	if e.Err != nil {
		payload.Err = e.Err.Error()
	}
	return json.Marshal(payload)
}

// New creates an Error with the given code, message, and cause.
func New(code ErrorCode, msg string, cause error) *Error {
	return &Error{
		Code:       code,
		Message:    msg,
		Err:        cause,
		Context:    make(map[string]any),
		StatusCode: codeToStatusCode(code),
	}
}

// WithContext adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithStatusCode overrides the status code derived from the error code,
// used when the registry answered with a concrete HTTP status.
func (e *Error) WithStatusCode(status int) *Error {
	e.StatusCode = status
	return e
}

// AsError converts err to *Error, wrapping unknown errors as internal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*Error); ok {
		return ae
	}
	return New(CodeInternal, "wrapped error", err)
}

// IsValidation reports whether err is a caller-contract violation rather
// than a transport failure.
func IsValidation(err error) bool {
	ae, ok := err.(*Error)
	return ok && (ae.Code == CodeInvalidInput || ae.Code == CodeUnauthorized)
}

func codeToStatusCode(code ErrorCode) int {
	switch code {
	case CodeNotFound:
		return 404
	case CodeUnauthorized:
		return 401
	case CodeInvalidInput:
		return 400
	case CodeRegistryFailure:
		return 502
	default:
		return 500
	}
}
