// Package context translates context termination into the circbuf error taxonomy.
package context

import (
	"context"
	"fmt"
	"time"

	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
)

// IsCanceled returns true if the context has been canceled
func IsCanceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// IsTimedOut returns true if the context was canceled due to a timeout
func IsTimedOut(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}

// Err classifies why ctx ended. A passed deadline yields an error matching both
// ErrTimeout and context.DeadlineExceeded; any other cancellation yields one
// matching ErrCanceled and the context's own error. A live context yields nil.
func Err(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case err == context.DeadlineExceeded:
		return fmt.Errorf("%w: %w", gferrors.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", gferrors.ErrCanceled, err)
	}
}

// Sleep pauses for d or until ctx ends, whichever comes first. It returns
// Err(ctx) when the context ended first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return Err(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return Err(ctx)
	}
}
