package circular

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
)

// Errors returned by buffer operations. They alias the shared taxonomy in
// pkg/common/errors so callers may match either.
var (
	ErrCapacityExceeded = gferrors.ErrCapacityExceeded
	ErrEmpty            = gferrors.ErrEmpty
	ErrUnsupported      = gferrors.ErrUnsupported
	ErrCanceled         = gferrors.ErrCanceled
	ErrTimeout          = gferrors.ErrTimeout
	ErrSealed           = gferrors.ErrSealed
)

// Producer is the write half of a buffer. The owner of a buffer hands
// producers a Producer so it can later swap in the Sealed view.
type Producer[T any] interface {
	// Enqueue admits item or fails at once with ErrCapacityExceeded.
	Enqueue(item T) error

	// TryEnqueue admits item if there is space and reports whether it did.
	TryEnqueue(item T) bool

	// TryEnqueueTimeout waits up to d for space. It returns false with a nil
	// error when d elapses and an ErrCanceled/ErrTimeout error when ctx ends.
	TryEnqueueTimeout(ctx context.Context, item T, d time.Duration) (bool, error)

	// Put waits until item is admitted or ctx ends.
	Put(ctx context.Context, item T) error

	// RemainingCapacity returns the number of free slots.
	RemainingCapacity() int
}

// Consumer is the read half of a buffer.
type Consumer[T any] interface {
	// Peek returns the oldest item without removing it.
	Peek() (T, bool)

	// Dequeue removes the oldest item or fails at once with ErrEmpty.
	Dequeue() (T, error)

	// TryDequeue removes the oldest item if there is one.
	TryDequeue() (T, bool)

	// TryDequeueTimeout waits up to d for an item. It returns false with a
	// nil error when d elapses and an ErrCanceled/ErrTimeout error when ctx
	// ends.
	TryDequeueTimeout(ctx context.Context, d time.Duration) (T, bool, error)

	// Take waits until an item is available or ctx ends.
	Take(ctx context.Context) (T, error)

	// DrainTo moves every present item into sink and returns the count.
	DrainTo(sink Sink[T]) int

	// DrainToN moves at most max items into sink and returns the count.
	DrainToN(sink Sink[T], max int) int

	// Drain removes every present item and returns them in FIFO order.
	Drain() []T

	// Size returns the number of items present.
	Size() int

	// IsEmpty reports whether no items are present.
	IsEmpty() bool
}

// Queue is the full producer/consumer contract shared by Buffer and Sealed.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Capacity returns the fixed number of slots.
	Capacity() int
}

var (
	_ Queue[int] = (*Buffer[int])(nil)
	_ Queue[int] = (*Sealed[int])(nil)
)

// Buffer is a fixed-capacity FIFO ring shared by any number of producer and
// consumer goroutines. Logical positions head (admitted) and tail (removed)
// only grow; position i lives in slot i&mask.
type Buffer[T any] struct {
	mu    sync.Mutex
	cond  sync.Cond
	items []T
	mask  uint64
	head  uint64
	tail  uint64

	spin   time.Duration
	sealed bool
	reason string

	name    string
	logger  *slog.Logger
	stats   counters
	metrics *bufferMetrics
}

// New creates a buffer holding at least capacity items. It panics if
// capacity is not positive; use NewSafe to get an error instead.
func New[T any](capacity int) *Buffer[T] {
	b, err := NewSafe[T](capacity)
	if err != nil {
		panic("invalid circular buffer configuration: " + err.Error())
	}
	return b
}

// NewSafe creates a buffer holding at least capacity items, with validation
// that returns an error instead of panicking.
func NewSafe[T any](capacity int) (*Buffer[T], error) {
	config := DefaultConfig()
	config.Capacity = capacity
	return NewWithConfigSafe[T](config)
}

// NewWithConfig creates a buffer from config. It panics on invalid config.
func NewWithConfig[T any](config Config) *Buffer[T] {
	b, err := NewWithConfigSafe[T](config)
	if err != nil {
		panic("invalid circular buffer configuration: " + err.Error())
	}
	return b
}

// NewWithConfigSafe creates a buffer from config, returning a
// *errors.ValidationError for invalid settings.
func NewWithConfigSafe[T any](config Config) (*Buffer[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.SpinInterval == 0 {
		config.SpinInterval = DefaultSpinInterval
	}
	if config.Name == "" {
		config.Name = DefaultConfig().Name
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	capacity := roundUpPow2(config.Capacity)
	b := &Buffer[T]{
		items:   make([]T, capacity),
		mask:    uint64(capacity - 1),
		spin:    config.SpinInterval,
		name:    config.Name,
		logger:  logger.With("component", "circbuf", "buffer", config.Name),
		metrics: newBufferMetrics(config.Metrics, config.Name, capacity),
	}
	b.cond.L = &b.mu

	return b, nil
}

// Name returns the configured buffer name.
func (b *Buffer[T]) Name() string {
	return b.name
}

// Enqueue admits item or fails immediately with ErrCapacityExceeded when
// the buffer is full. On a sealed buffer it fails with a *errors.SealedError.
func (b *Buffer[T]) Enqueue(item T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		b.rejectSealedLocked()
		return b.sealedErrorLocked()
	}
	if !b.pushLocked(item) {
		b.rejectLocked()
		return ErrCapacityExceeded
	}
	return nil
}

// TryEnqueue admits item if a slot is free. It never blocks and reports a
// full or sealed buffer by returning false.
func (b *Buffer[T]) TryEnqueue(item T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		b.rejectSealedLocked()
		return false
	}
	if !b.pushLocked(item) {
		b.rejectLocked()
		return false
	}
	return true
}

// TryEnqueueTimeout admits item, waiting up to d for a slot to free up.
//
// The outcomes are distinct: (true, nil) admitted; (false, nil) the budget d
// elapsed; (false, err) ctx ended first, with err matching ErrCanceled or
// ErrTimeout. A sealed buffer waits out d and then returns (false, nil).
func (b *Buffer[T]) TryEnqueueTimeout(ctx context.Context, item T, d time.Duration) (bool, error) {
	b.mu.Lock()

	if b.sealed {
		b.rejectSealedLocked()
		b.mu.Unlock()
		return sealedOffer(ctx, d)
	}
	if b.pushLocked(item) {
		b.mu.Unlock()
		return true, nil
	}
	if d <= 0 {
		b.rejectLocked()
		b.mu.Unlock()
		return false, nil
	}

	start := time.Now()
	outcome, err := b.parkLocked(ctx, sideProducer, d, b.writableLocked)
	switch {
	case outcome == parkReady && b.sealed:
		b.rejectSealedLocked()
		b.mu.Unlock()
		return sealedOffer(ctx, d-time.Since(start))
	case outcome == parkReady:
		b.pushLocked(item)
		b.mu.Unlock()
		return true, nil
	case outcome == parkExpired:
		b.rejectLocked()
		b.mu.Unlock()
		return false, nil
	default:
		b.mu.Unlock()
		return false, err
	}
}

// Put admits item, waiting as long as needed for a free slot. It returns an
// error matching ErrCanceled or ErrTimeout if ctx ends first; the item is
// then not admitted. On a sealed buffer Put never admits and only returns
// once ctx ends.
func (b *Buffer[T]) Put(ctx context.Context, item T) error {
	b.mu.Lock()

	if b.sealed {
		b.rejectSealedLocked()
		b.mu.Unlock()
		return b.sealedPut(ctx)
	}
	if b.pushLocked(item) {
		b.mu.Unlock()
		return nil
	}

	outcome, err := b.parkLocked(ctx, sideProducer, noBudget, b.writableLocked)
	if outcome != parkReady {
		b.mu.Unlock()
		return err
	}
	if b.sealed {
		b.rejectSealedLocked()
		b.mu.Unlock()
		return b.sealedPut(ctx)
	}
	b.pushLocked(item)
	b.mu.Unlock()
	return nil
}

// Peek returns the oldest item without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head == b.tail {
		var zero T
		return zero, false
	}
	return b.items[b.tail&b.mask], true
}

// Dequeue removes and returns the oldest item, or fails immediately with
// ErrEmpty.
func (b *Buffer[T]) Dequeue() (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head == b.tail {
		var zero T
		return zero, ErrEmpty
	}
	return b.popLocked(), nil
}

// TryDequeue removes and returns the oldest item if there is one.
func (b *Buffer[T]) TryDequeue() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head == b.tail {
		var zero T
		return zero, false
	}
	return b.popLocked(), true
}

// TryDequeueTimeout removes the oldest item, waiting up to d for one to
// arrive. The outcomes are distinct: (item, true, nil) removed; (zero,
// false, nil) the budget d elapsed; (zero, false, err) ctx ended first.
func (b *Buffer[T]) TryDequeueTimeout(ctx context.Context, d time.Duration) (T, bool, error) {
	var zero T

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head != b.tail {
		return b.popLocked(), true, nil
	}
	if d <= 0 {
		return zero, false, nil
	}

	outcome, err := b.parkLocked(ctx, sideConsumer, d, b.readableLocked)
	switch outcome {
	case parkReady:
		return b.popLocked(), true, nil
	case parkExpired:
		return zero, false, nil
	default:
		return zero, false, err
	}
}

// Take removes and returns the oldest item, waiting as long as needed. It
// returns an error matching ErrCanceled or ErrTimeout if ctx ends first.
func (b *Buffer[T]) Take(ctx context.Context) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head != b.tail {
		return b.popLocked(), nil
	}

	outcome, err := b.parkLocked(ctx, sideConsumer, noBudget, b.readableLocked)
	if outcome != parkReady {
		var zero T
		return zero, err
	}
	return b.popLocked(), nil
}

// UnsafePeek returns the oldest item without taking the lock or checking
// for emptiness; an empty buffer yields the zero value.
//
// Only a goroutine with exclusive access to the buffer may call it: no
// producer or consumer may touch the buffer concurrently.
func (b *Buffer[T]) UnsafePeek() T {
	return b.items[b.tail&b.mask]
}

// UnsafeDequeue removes the oldest item without taking the lock. An empty
// buffer yields the zero value and is left unchanged. The exclusivity rule
// of UnsafePeek applies.
func (b *Buffer[T]) UnsafeDequeue() T {
	var zero T
	if b.head == b.tail {
		return zero
	}
	pos := b.tail & b.mask
	item := b.items[pos]
	b.items[pos] = zero
	b.tail++
	b.cond.Broadcast()
	return item
}

// DrainTo removes every present item and hands them to sink in FIFO order.
// Removal happens in one critical section; the returned count is the
// number of slots that section cleared. sink runs after the lock is
// released.
func (b *Buffer[T]) DrainTo(sink Sink[T]) int {
	return b.drainTo(sink, -1)
}

// DrainToN is DrainTo limited to at most max items. max <= 0 moves nothing.
func (b *Buffer[T]) DrainToN(sink Sink[T], max int) int {
	if max <= 0 {
		return 0
	}
	return b.drainTo(sink, max)
}

func (b *Buffer[T]) drainTo(sink Sink[T], max int) int {
	b.mu.Lock()
	moved := b.takeLocked(max)
	b.mu.Unlock()

	for _, item := range moved {
		sink.Add(item)
	}
	return len(moved)
}

// Drain removes every present item and returns them in a new slice, oldest
// first. Unlike a snapshot this is destructive: the buffer is empty
// afterwards. Use Copy for a non-destructive view.
func (b *Buffer[T]) Drain() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.takeLocked(-1)
}

// Copy returns the present items, oldest first, without removing them.
func (b *Buffer[T]) Copy() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]T, 0, b.head-b.tail)
	for i := b.tail; i != b.head; i++ {
		out = append(out, b.items[i&b.mask])
	}
	return out
}

// Clear discards every item, resets both counters to zero and wakes all
// waiters. It does not unseal a sealed buffer.
func (b *Buffer[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	discarded := b.head - b.tail
	clear(b.items)
	b.head = 0
	b.tail = 0

	b.metrics.recordSize(0)
	b.notifyLocked()
	b.logger.Debug("buffer cleared", "discarded", discarded)
}

// Size returns the number of items present.
func (b *Buffer[T]) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(b.head - b.tail)
}

// Capacity returns the fixed, power-of-two number of slots.
func (b *Buffer[T]) Capacity() int {
	return len(b.items)
}

// RemainingCapacity returns the number of free slots; 0 once sealed.
func (b *Buffer[T]) RemainingCapacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return 0
	}
	return len(b.items) - int(b.head-b.tail)
}

// IsEmpty reports whether the buffer holds no items.
func (b *Buffer[T]) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.head == b.tail
}

// IsFull reports whether every slot is occupied.
func (b *Buffer[T]) IsFull() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.head-b.tail == uint64(len(b.items))
}

// Stats returns buffer statistics.
func (b *Buffer[T]) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := int(b.head - b.tail)
	return Stats{
		Capacity:         len(b.items),
		Size:             size,
		Enqueued:         b.stats.enqueued,
		Dequeued:         b.stats.dequeued,
		Drained:          b.stats.drained,
		Rejected:         b.stats.rejected,
		SealedRejections: b.stats.sealedRejections,
		BlockedPuts:      b.stats.blockedPuts,
		BlockedTakes:     b.stats.blockedTakes,
		Timeouts:         b.stats.timeouts,
		Cancellations:    b.stats.cancellations,
		Sealed:           b.sealed,
		Utilization:      float64(size) / float64(len(b.items)),
	}
}

func (b *Buffer[T]) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("head=%d, tail=%d, capacity=%d", b.head, b.tail, len(b.items))
}

// Contains is not supported: the buffer is FIFO-only.
func (b *Buffer[T]) Contains(item T) (bool, error) {
	return false, ErrUnsupported
}

// Remove is not supported: the buffer is FIFO-only.
func (b *Buffer[T]) Remove(item T) (bool, error) {
	return false, ErrUnsupported
}

// RemoveAll is not supported: the buffer is FIFO-only.
func (b *Buffer[T]) RemoveAll(items []T) (bool, error) {
	return false, ErrUnsupported
}

// RetainAll is not supported: the buffer is FIFO-only.
func (b *Buffer[T]) RetainAll(items []T) (bool, error) {
	return false, ErrUnsupported
}

// AddAll is not supported; on a sealed buffer it reports the seal instead.
func (b *Buffer[T]) AddAll(items []T) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return false, b.sealedErrorLocked()
	}
	return false, ErrUnsupported
}

// pushLocked stores item at head if a slot is free (must hold lock).
func (b *Buffer[T]) pushLocked(item T) bool {
	if b.head-b.tail == uint64(len(b.items)) {
		return false
	}
	b.items[b.head&b.mask] = item
	b.head++

	b.stats.enqueued++
	b.metrics.recordEnqueue(int(b.head - b.tail))
	b.notifyLocked()
	return true
}

// popLocked removes the item at tail, clearing its slot (must hold lock and
// know the buffer is not empty).
func (b *Buffer[T]) popLocked() T {
	var zero T
	pos := b.tail & b.mask
	item := b.items[pos]
	b.items[pos] = zero
	b.tail++

	b.stats.dequeued++
	b.metrics.recordDequeue(int(b.head - b.tail))
	b.notifyLocked()
	return item
}

// takeLocked removes up to max items (all when max < 0) and returns them
// oldest first (must hold lock).
func (b *Buffer[T]) takeLocked(max int) []T {
	n := int(b.head - b.tail)
	if max >= 0 && max < n {
		n = max
	}

	out := make([]T, n)
	var zero T
	for i := range out {
		pos := b.tail & b.mask
		out[i] = b.items[pos]
		b.items[pos] = zero
		b.tail++
	}

	if n > 0 {
		b.stats.drained += int64(n)
		b.metrics.recordDrain(n, int(b.head-b.tail))
		b.notifyLocked()
	}
	return out
}

// rejectLocked records a write refused because the buffer was full.
func (b *Buffer[T]) rejectLocked() {
	b.stats.rejected++
	b.metrics.recordReject(false)
}

func (b *Buffer[T]) writableLocked() bool {
	return b.sealed || b.head-b.tail < uint64(len(b.items))
}

func (b *Buffer[T]) readableLocked() bool {
	return b.head != b.tail
}
