/*
Package workerpool runs a fixed set of consumer goroutines over a circular buffer.

Network services typically split I/O from processing: reader goroutines decode frames into a
bounded buffer and a pool of workers handles them. A Pool owns the consumer side of that
arrangement:

	buf := circular.New[Frame](1024)

	pool := workerpool.New[Frame](buf, workerpool.HandlerFunc[Frame](
		func(ctx context.Context, f Frame) error {
			return process(ctx, f)
		}), 8)

	// readers call buf.Put(ctx, frame) ...

	// shutdown: refuse new frames, let workers finish the backlog
	buf.Seal("shutdown")
	if err := pool.Shutdown(ctx); err != nil {
		log.Printf("backlog not drained: %v", err)
	}

Workers wait for items with TryDequeueTimeout, so an idle worker re-checks the pool state
every PollInterval.

Handlers:

Handlers implement:

	type Handler[T any] interface {
		Handle(ctx context.Context, item T) error
	}

The ctx passed to a handler is canceled by Stop (or by Shutdown when its own context runs
out) and additionally bounded by Config.TaskTimeout.

Error Handling:

Handler errors and panics never stop a worker. Panics are recovered, logged with their stack
trace and reported as a Result with Panicked set. Config.OnResult receives every Result.

Shutdown:

  - Shutdown(ctx): graceful. Workers keep taking items until the buffer is empty.
  - Stop(): immediate. In-flight handlers see a canceled context; queued items stay in the
    buffer (for example, to be spilled with pkg/buffer/spill).

Configuration Options:

	config := workerpool.Config[Frame]{
		Name:         "frames",
		WorkerCount:  8,
		PollInterval: 50 * time.Millisecond,
		TaskTimeout:  2 * time.Second,
		OnResult: func(r workerpool.Result[Frame]) {
			if r.Error != nil {
				log.Printf("frame from conn %d: %v", r.Item.Conn, r.Error)
			}
		},
		Metrics: metrics.DefaultRegistry,
	}
	pool, err := workerpool.NewWithConfig[Frame](buf, handler, config)
*/
package workerpool
