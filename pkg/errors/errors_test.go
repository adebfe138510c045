// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	base := stderrors.New("connection refused")
	err := New(CodeRegistryFailure, "POST /register", base)

	msg := err.Error()
	if !strings.Contains(msg, "REGISTRY_FAILURE") {
		t.Errorf("Error() = %q, missing code", msg)
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("Error() = %q, missing cause", msg)
	}
}

func TestUnwrap(t *testing.T) {
	base := stderrors.New("boom")
	err := New(CodeInternal, "wrapped", base)
	if !stderrors.Is(err, base) {
		t.Error("errors.Is failed to find the cause")
	}

	var typed *Error
	if !stderrors.As(err, &typed) {
		t.Fatal("errors.As failed")
	}
	if typed.Code != CodeInternal {
		t.Errorf("Code = %s", typed.Code)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeNotFound, 404},
		{CodeUnauthorized, 401},
		{CodeInvalidInput, 400},
		{CodeRegistryFailure, 502},
		{CodeInternal, 500},
	}
	for _, tt := range tests {
		if got := New(tt.code, "x", nil).StatusCode; got != tt.want {
			t.Errorf("StatusCode for %s = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWithStatusCodeOverrides(t *testing.T) {
	err := New(CodeRegistryFailure, "x", nil).WithStatusCode(503)
	if err.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", err.StatusCode)
	}
}

func TestWithContextChaining(t *testing.T) {
	err := New(CodeInvalidInput, "invalid email", nil).
		WithContext("email", "nope").
		WithContext("field", "email")

	if err.Context["email"] != "nope" || err.Context["field"] != "email" {
		t.Errorf("Context = %v", err.Context)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(CodeInvalidInput, "x", nil)) {
		t.Error("CodeInvalidInput should be a validation error")
	}
	if !IsValidation(New(CodeUnauthorized, "x", nil)) {
		t.Error("CodeUnauthorized should be a validation error")
	}
	if IsValidation(New(CodeRegistryFailure, "x", nil)) {
		t.Error("CodeRegistryFailure is a transport error")
	}
	if IsValidation(stderrors.New("plain")) {
		t.Error("plain errors are not validation errors")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New(CodeNotFound, "agent missing", stderrors.New("404")).
		WithContext("agent_id", "TEMP-123")

	payload, merr := err.MarshalJSON()
	if merr != nil {
		t.Fatalf("MarshalJSON: %v", merr)
	}
	for _, want := range []string{`"NOT_FOUND"`, `"agent missing"`, `"TEMP-123"`} {
		if !strings.Contains(string(payload), want) {
			t.Errorf("payload %s missing %s", payload, want)
		}
	}
}

func TestAsError(t *testing.T) {
	if AsError(nil) != nil {
		t.Error("AsError(nil) should be nil")
	}
	plain := stderrors.New("plain")
	wrapped := AsError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("Code = %s, want CodeInternal", wrapped.Code)
	}
	if !stderrors.Is(wrapped, plain) {
		t.Error("wrapped error lost its cause")
	}
}
