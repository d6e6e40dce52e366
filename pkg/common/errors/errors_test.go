package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrCapacityExceeded", ErrCapacityExceeded, "capacity exceeded"},
		{"ErrEmpty", ErrEmpty, "buffer is empty"},
		{"ErrUnsupported", ErrUnsupported, "operation not supported"},
		{"ErrCanceled", ErrCanceled, "operation canceled"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrSealed", ErrSealed, "buffer is sealed"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "circular",
				Field:  "capacity",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "circular: invalid capacity=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "workerpool",
				Field:  "workers",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a value greater than 0",
			},
			want: "workerpool: invalid workers=0 (must be positive) - use a value greater than 0",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "monitor",
				Field:  "schedule",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "monitor: invalid schedule= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorMatching(t *testing.T) {
	verr := NewValidationError("circular", "capacity", 0, "must be positive").
		WithHint("capacity is rounded up to a power of two")

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should match ErrInvalidConfiguration")
	}
	if errors.Is(verr, ErrCapacityExceeded) {
		t.Error("ValidationError must not match buffer state errors")
	}
	if !strings.HasSuffix(verr.Error(), "- capacity is rounded up to a power of two") {
		t.Errorf("hint missing from %q", verr.Error())
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "spill",
				Operation: "Spill",
				Cause:     errors.New("connection refused"),
			},
			want: "spill.Spill failed: connection refused",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "circular",
				Operation: "Enqueue",
				Cause:     ErrCapacityExceeded,
				Context:   "capacity 8",
			},
			want: "circular.Enqueue failed: capacity exceeded (capacity 8)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationErrorWrapsRedisFailure(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
	err := NewOperationError("spill", "rpush", cause).WithContext("reactor:lines:items")

	if !errors.Is(err, cause) {
		t.Error("OperationError should wrap its cause")
	}
	if IsTemporary(err) || IsRetryable(err) {
		t.Error("a transport failure is not a buffer state error")
	}
	want := "spill.rpush failed: " + cause.Error() + " (reactor:lines:items)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, true},
		{"capacity exceeded", ErrCapacityExceeded, true},
		{"empty", ErrEmpty, true},
		{"canceled", ErrCanceled, false},
		{"sealed", NewSealedError("shutdown"), false},
		{"random error", errors.New("random"), false},
		{"wrapped timeout", &OperationError{Cause: ErrTimeout}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout error", ErrTimeout, false},
		{"capacity exceeded", ErrCapacityExceeded, true},
		{"empty", ErrEmpty, true},
		{"unsupported", ErrUnsupported, false},
		{"wrapped capacity", &OperationError{Cause: ErrCapacityExceeded}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemporary(tt.err); got != tt.want {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSealedError(t *testing.T) {
	err := NewSealedError("pipeline shutting down")

	if got, want := err.Error(), "buffer is sealed: pipeline shutting down"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !IsSealed(err) {
		t.Error("SealedError should match ErrSealed")
	}

	var serr *SealedError
	wrapped := NewOperationError("circular", "Enqueue", err)
	if !errors.As(wrapped, &serr) || serr.Reason != "pipeline shutting down" {
		t.Errorf("errors.As did not recover reason, got %+v", serr)
	}

	if got := NewSealedError("").Error(); got != "buffer is sealed" {
		t.Errorf("empty reason Error() = %q", got)
	}
}

func TestIsCanceled(t *testing.T) {
	if !IsCanceled(&OperationError{Cause: ErrCanceled}) {
		t.Error("wrapped ErrCanceled should be canceled")
	}
	if IsCanceled(ErrTimeout) {
		t.Error("ErrTimeout must stay distinguishable from ErrCanceled")
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"validation error",
			&ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"},
			true,
		},
		{
			"wrapped validation error",
			&OperationError{Cause: &ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"}},
			true,
		},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"standard error", errors.New("test"), false},
		{"timeout error", ErrTimeout, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextErrorsStayDistinct(t *testing.T) {
	canceled := fmt.Errorf("%w: %w", ErrCanceled, context.Canceled)
	timedOut := fmt.Errorf("%w: %w", ErrTimeout, context.DeadlineExceeded)

	if !IsCanceled(canceled) || !errors.Is(canceled, context.Canceled) {
		t.Errorf("%v should match ErrCanceled and context.Canceled", canceled)
	}
	if !errors.Is(timedOut, ErrTimeout) || !errors.Is(timedOut, context.DeadlineExceeded) {
		t.Errorf("%v should match ErrTimeout and context.DeadlineExceeded", timedOut)
	}
	if IsCanceled(timedOut) || errors.Is(canceled, ErrTimeout) {
		t.Error("canceled and timed out must not match each other")
	}
	if !IsRetryable(timedOut) || IsRetryable(canceled) {
		t.Error("only the timeout should be retryable")
	}
}
