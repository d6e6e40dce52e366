package testutil

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Recorder collects items in arrival order. Its Add method matches the
// circular.Sink contract, so tests can drain buffers straight into it.
type Recorder[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewRecorder creates an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// Add appends item.
func (r *Recorder[T]) Add(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

// Items returns a copy of everything recorded so far.
func (r *Recorder[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of recorded items.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// MockHandler is a configurable item handler for worker pool tests. It
// records every item it sees and can simulate delays, errors and panics.
type MockHandler[T comparable] struct {
	Recorder[T]

	mu      sync.Mutex
	delay   time.Duration
	failOn  map[T]error
	panicOn map[T]bool
}

// NewMockHandler creates a MockHandler that succeeds on every item.
func NewMockHandler[T comparable]() *MockHandler[T] {
	return &MockHandler[T]{
		failOn:  make(map[T]error),
		panicOn: make(map[T]bool),
	}
}

// Handle processes item according to the configured behavior.
func (h *MockHandler[T]) Handle(ctx context.Context, item T) error {
	h.mu.Lock()
	delay := h.delay
	err, fail := h.failOn[item]
	shouldPanic := h.panicOn[item]
	h.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	h.Add(item)

	if shouldPanic {
		panic("simulated panic")
	}
	if fail {
		if err == nil {
			err = errors.New("simulated error")
		}
		return err
	}
	return nil
}

// SetDelay configures a per-item processing delay.
func (h *MockHandler[T]) SetDelay(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.delay = d
}

// FailOn makes Handle return err for item.
func (h *MockHandler[T]) FailOn(item T, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failOn[item] = err
}

// PanicOn makes Handle panic for item.
func (h *MockHandler[T]) PanicOn(item T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panicOn[item] = true
}
