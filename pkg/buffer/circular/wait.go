package circular

import (
	"context"
	"errors"
	"time"

	gfcontext "github.com/vnykmshr/circbuf/pkg/common/context"
)

type parkOutcome int

const (
	parkReady parkOutcome = iota
	parkExpired
	parkAborted
)

// noBudget parks until the predicate holds or the caller's context ends.
const noBudget time.Duration = 0

// Wait outcome label values.
const (
	outcomeReady    = "ready"
	outcomeExpired  = "expired"
	outcomeTimeout  = "timeout"
	outcomeCanceled = "canceled"
)

// notifyLocked wakes every parked goroutine so it re-tests its predicate.
// Producers and consumers share one condition, so Signal could wake a
// goroutine of the wrong side and lose the wakeup.
func (b *Buffer[T]) notifyLocked() {
	b.cond.Broadcast()
}

// waitLocked parks on the condition until ready holds or ctx ends. The lock
// must be held; it is held again on return. A satisfied predicate wins over
// a finished context.
func (b *Buffer[T]) waitLocked(ctx context.Context, ready func() bool) error {
	if ready() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		b.mu.Lock()
		b.cond.Broadcast()
		b.mu.Unlock()
	})
	defer stop()

	for !ready() {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.cond.Wait()
	}
	return nil
}

// parkLocked waits for ready with an optional budget d and classifies the
// result. parkExpired means the budget ran out while ctx was still live;
// parkAborted comes with an error matching ErrCanceled or ErrTimeout.
func (b *Buffer[T]) parkLocked(ctx context.Context, s side, d time.Duration, ready func() bool) (parkOutcome, error) {
	if ready() {
		return parkReady, nil
	}
	if err := gfcontext.Err(ctx); err != nil {
		b.abortLocked(s, err, 0)
		return parkAborted, err
	}

	waitCtx := ctx
	if d > noBudget {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if s == sideProducer {
		b.stats.blockedPuts++
	} else {
		b.stats.blockedTakes++
	}

	start := time.Now()
	werr := b.waitLocked(waitCtx, ready)
	waited := time.Since(start)

	if werr == nil {
		b.metrics.recordWait(s, outcomeReady, waited)
		return parkReady, nil
	}
	if ctx.Err() == nil {
		b.stats.timeouts++
		b.metrics.recordWait(s, outcomeExpired, waited)
		return parkExpired, nil
	}

	err := gfcontext.Err(ctx)
	b.abortLocked(s, err, waited)
	return parkAborted, err
}

// abortLocked records a wait ended by the caller's context.
func (b *Buffer[T]) abortLocked(s side, err error, waited time.Duration) {
	outcome := outcomeCanceled
	if errors.Is(err, ErrTimeout) {
		outcome = outcomeTimeout
		b.stats.timeouts++
	} else {
		b.stats.cancellations++
	}
	b.metrics.recordWait(s, outcome, waited)
	b.logger.Debug("wait aborted", "side", string(s), "outcome", outcome, "waited", waited)
}
