/*
Package circular provides a fixed-capacity FIFO hand-off buffer for network I/O pipelines.

A Buffer sits between goroutines that produce units of work (decoded frames, parsed requests,
events off a socket) and goroutines that consume them. Its capacity is fixed at construction,
so a full buffer is the backpressure signal: producers choose whether to fail, give up, wait
a bounded time, or wait for as long as their context allows.

Key Components:
  - Buffer: generic ring of power-of-two capacity guarded by one mutex and one condition
  - Producer/Consumer/Queue: the interfaces producers and consumers should hold
  - Sink, SinkFunc, SliceSink: destinations for bulk drains
  - Cursor: a walk over a frozen range of positions
  - Sealed: the write-refusing face of a buffer at shutdown

Capacity:

The requested capacity is rounded up to the next power of two, so New[int](5) holds 8 items
and New[int](8) holds 8. A capacity below 1 is a configuration error.

Write Operations:

Each write comes in four flavours that differ only in how they treat a full buffer:

	err := buf.Enqueue(frame)                     // ErrCapacityExceeded at once
	ok := buf.TryEnqueue(frame)                   // false at once
	ok, err := buf.TryEnqueueTimeout(ctx, frame, 50*time.Millisecond) // false after 50ms
	err := buf.Put(ctx, frame)                    // waits for space

Read Operations:

Reads mirror writes against an empty buffer:

	frame, ok := buf.Peek()
	frame, err := buf.Dequeue()                   // ErrEmpty at once
	frame, ok := buf.TryDequeue()
	frame, ok, err := buf.TryDequeueTimeout(ctx, 50*time.Millisecond)
	frame, err := buf.Take(ctx)

The timeout variants report three outcomes: success, the budget running out (false with a
nil error) and the context ending (an error matching ErrCanceled or ErrTimeout).

Bulk Removal:

	var sink circular.SliceSink[Frame]
	n := buf.DrainTo(&sink)       // everything present
	n = buf.DrainToN(&sink, 16)   // at most 16
	frames := buf.Drain()         // everything, as a slice
	view := buf.Copy()            // non-destructive copy

Items are removed in one critical section; the sink is called afterwards, oldest first.

Shutdown:

Seal cuts off producers while letting consumers drain what is left:

	sealed := buf.Seal("listener closed")
	for {
		frame, ok := sealed.TryDequeue()
		if !ok {
			break
		}
		handle(frame)
	}

Unsafe Access:

UnsafePeek and UnsafeDequeue skip the lock. They exist for the single goroutine that owns a
buffer outright, for example during teardown after every producer and consumer has stopped.

Observability:

Stats returns counters that are always maintained. Setting Config.Metrics exports the same
activity to Prometheus through pkg/metrics, and Config.Logger receives lifecycle events.

Thread Safety:

Every operation except UnsafePeek, UnsafeDequeue and the Cursor methods is safe for concurrent
use by any number of goroutines.
*/
package circular
