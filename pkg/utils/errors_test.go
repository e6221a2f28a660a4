package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	plain := NewValidationError("bad input", nil)
	if plain.Error() != "validation: bad input" {
		t.Errorf("unexpected message: %q", plain.Error())
	}

	cause := errors.New("boom")
	wrapped := NewBackendError("recognition failed", cause)
	if wrapped.Error() != "backend: recognition failed (caused by: boom)" {
		t.Errorf("unexpected message: %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}

func TestWrapErrorPreservesType(t *testing.T) {
	inner := NewEncryptionError("needs password", nil)
	wrapped := WrapError(inner, "", "while preparing input")
	if wrapped.Type != ErrorTypeEncryption {
		t.Errorf("expected preserved encryption type, got %s", wrapped.Type)
	}

	forced := WrapError(inner, ErrorTypeIO, "copy failed")
	if forced.Type != ErrorTypeIO {
		t.Errorf("expected explicit type to win, got %s", forced.Type)
	}

	if WrapError(nil, ErrorTypeIO, "x") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorType
	}{
		{context.DeadlineExceeded, ErrorTypeTimeout},
		{context.Canceled, ErrorTypeTimeout},
		{errors.New("open x: permission denied"), ErrorTypePermission},
		{errors.New("open x: no such file or directory"), ErrorTypeNotFound},
		{errors.New("pdf requires a password"), ErrorTypeEncryption},
		{errors.New("tesseract failed to start"), ErrorTypeBackend},
		{errors.New("invalid xref table"), ErrorTypeValidation},
		{errors.New("something odd"), ErrorTypeSystem},
	}
	for _, tc := range cases {
		if got := GetErrorType(tc.err); got != tc.want {
			t.Errorf("GetErrorType(%q) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestIsRetriable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{NewBackendError("engine crashed", nil), true},
		{NewError(ErrorTypeTimeout, "took too long", nil), true},
		{NewError(ErrorTypeSystem, "oom", nil), true},
		{NewValidationError("not a pdf", nil), false},
		{NewEncryptionError("password required", nil), false},
		{NewIOError("disk full", nil), false},
		{NewNotFoundError("missing", nil), false},
	}
	for _, tc := range cases {
		if got := IsRetriable(tc.err); got != tc.want {
			t.Errorf("IsRetriable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestAppErrorIs(t *testing.T) {
	a := NewBackendError("one", nil)
	b := NewBackendError("two", fmt.Errorf("cause"))
	if !errors.Is(a, b) {
		t.Error("errors of the same type should match")
	}
	if errors.Is(a, NewIOError("io", nil)) {
		t.Error("errors of different types should not match")
	}
}
