package circular

import (
	"context"
	"time"

	gfcontext "github.com/vnykmshr/circbuf/pkg/common/context"
	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
)

// Seal cuts off writes for good and returns a handle onto the sealed buffer.
// Items already present stay readable so consumers can drain them.
//
// Sealing is one-way: Clear does not undo it, and sealing again keeps the
// first reason. Once sealed, on both the buffer and the handle, Enqueue
// fails with a *errors.SealedError, TryEnqueue returns false,
// TryEnqueueTimeout waits out its budget and returns false, Put never
// admits and returns only when its context ends, and RemainingCapacity
// reports 0. Producers parked in Put or TryEnqueueTimeout are woken and
// move onto that path.
func (b *Buffer[T]) Seal(reason string) *Sealed[T] {
	b.mu.Lock()
	if !b.sealed {
		b.sealed = true
		b.reason = reason
		b.metrics.recordSealed()
		b.notifyLocked()
		b.logger.Info("buffer sealed", "reason", reason, "size", b.head-b.tail)
	}
	b.mu.Unlock()

	return &Sealed[T]{buf: b}
}

// IsSealed reports whether Seal has been called.
func (b *Buffer[T]) IsSealed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sealed
}

// SealReason returns the reason passed to the first Seal call.
func (b *Buffer[T]) SealReason() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reason
}

func (b *Buffer[T]) sealedErrorLocked() error {
	return gferrors.NewSealedError(b.reason)
}

func (b *Buffer[T]) rejectSealedLocked() {
	b.stats.sealedRejections++
	b.metrics.recordReject(true)
}

// sealedPut polls every spin interval until ctx ends.
func (b *Buffer[T]) sealedPut(ctx context.Context) error {
	for {
		if err := gfcontext.Sleep(ctx, b.spin); err != nil {
			return err
		}
	}
}

// sealedOffer waits out d, or ctx, and never admits.
func sealedOffer(ctx context.Context, d time.Duration) (bool, error) {
	if err := gfcontext.Sleep(ctx, d); err != nil {
		return false, err
	}
	return false, nil
}

// Sealed is the write-refusing face of a sealed buffer. It shares state
// with the buffer it came from; reads drain the same items.
type Sealed[T any] struct {
	buf *Buffer[T]
}

// Reason returns the reason the buffer was sealed with.
func (s *Sealed[T]) Reason() string { return s.buf.SealReason() }

// Buffer returns the underlying buffer.
func (s *Sealed[T]) Buffer() *Buffer[T] { return s.buf }

func (s *Sealed[T]) Enqueue(item T) error { return s.buf.Enqueue(item) }

func (s *Sealed[T]) TryEnqueue(item T) bool { return s.buf.TryEnqueue(item) }

func (s *Sealed[T]) TryEnqueueTimeout(ctx context.Context, item T, d time.Duration) (bool, error) {
	return s.buf.TryEnqueueTimeout(ctx, item, d)
}

func (s *Sealed[T]) Put(ctx context.Context, item T) error { return s.buf.Put(ctx, item) }

func (s *Sealed[T]) AddAll(items []T) (bool, error) { return s.buf.AddAll(items) }

func (s *Sealed[T]) RemainingCapacity() int { return s.buf.RemainingCapacity() }

func (s *Sealed[T]) Peek() (T, bool) { return s.buf.Peek() }

func (s *Sealed[T]) Dequeue() (T, error) { return s.buf.Dequeue() }

func (s *Sealed[T]) TryDequeue() (T, bool) { return s.buf.TryDequeue() }

func (s *Sealed[T]) TryDequeueTimeout(ctx context.Context, d time.Duration) (T, bool, error) {
	return s.buf.TryDequeueTimeout(ctx, d)
}

func (s *Sealed[T]) Take(ctx context.Context) (T, error) { return s.buf.Take(ctx) }

func (s *Sealed[T]) DrainTo(sink Sink[T]) int { return s.buf.DrainTo(sink) }

func (s *Sealed[T]) DrainToN(sink Sink[T], max int) int { return s.buf.DrainToN(sink, max) }

func (s *Sealed[T]) Drain() []T { return s.buf.Drain() }

func (s *Sealed[T]) Copy() []T { return s.buf.Copy() }

func (s *Sealed[T]) Size() int { return s.buf.Size() }

func (s *Sealed[T]) IsEmpty() bool { return s.buf.IsEmpty() }

func (s *Sealed[T]) IsFull() bool { return s.buf.IsFull() }

func (s *Sealed[T]) Capacity() int { return s.buf.Capacity() }

func (s *Sealed[T]) Stats() Stats { return s.buf.Stats() }

func (s *Sealed[T]) String() string { return s.buf.String() }
