package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewErrorFormatsMessage(t *testing.T) {
	err := NewError(ErrInvalidParams, "bad value %d", 42)
	if err.Code != ErrInvalidParams {
		t.Errorf("Code = %v, want %v", err.Code, ErrInvalidParams)
	}
	if err.Message != "bad value 42" {
		t.Errorf("Message = %q, want %q", err.Message, "bad value 42")
	}
}

func TestWrapErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(ErrInternal, cause, "wrapping failure")
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestAsErrorPassesThroughModelError(t *testing.T) {
	original := NewError(ErrTimeout, "too slow")
	got := AsError(original)
	if got != original {
		t.Fatalf("AsError should return the same *Error instance, got %v", got)
	}
}

func TestAsErrorWrapsPlainErrorsAsInternal(t *testing.T) {
	got := AsError(errors.New("plain failure"))
	if got.Code != ErrInternal {
		t.Fatalf("Code = %v, want %v", got.Code, ErrInternal)
	}
}

func TestAsErrorUnwrapsNestedModelError(t *testing.T) {
	inner := NewError(ErrRateLimited, "slow down")
	outer := fmt.Errorf("outer context: %w", inner)
	got := AsError(outer)
	if got != inner {
		t.Fatalf("AsError should find the nested *Error, got %v", got)
	}
}

func TestAsErrorNilReturnsNil(t *testing.T) {
	if got := AsError(nil); got != nil {
		t.Fatalf("AsError(nil) = %v, want nil", got)
	}
}
