/*
Package scheduling holds the consumers that run work taken from a buffer.

  - workerpool: Fixed worker pool fed by a circular.Buffer

Worker Pool:

Workers poll the buffer with a bounded wait, so they notice shutdown
promptly even when no items arrive:

	buf := circular.New[Job](128)
	pool := workerpool.New[Job](buf, workerpool.HandlerFunc[Job](func(ctx context.Context, j Job) error {
		return j.Run(ctx)
	}), 4)

	buf.Seal("shutdown")
	if err := pool.Shutdown(ctx); err != nil {
		log.Printf("backlog left: %d", buf.Size())
	}

Shutdown lets workers finish what is queued and returns once the buffer
is empty; Stop cancels in-flight handlers and waits for the workers.
*/
package scheduling
