/*
Package circbuf provides a bounded hand-off buffer for network I/O pipelines
and the pieces that sit around it.

Buffer (pkg/buffer):
  - circular: Fixed-capacity, thread-safe FIFO with fail-fast, timed and
    blocking operations, bulk drains and one-way sealing
  - spill: Moves a sealed backlog to Redis and restores it on restart
  - monitor: Cron-scheduled sampling of buffer occupancy

Consumption (pkg/scheduling):
  - workerpool: Fixed set of workers taking items from a buffer

Shared (pkg/common, pkg/metrics):
  - errors, context, validation: Error types and helpers
  - metrics: Prometheus collectors for all of the above

Example usage:

	import (
		"github.com/vnykmshr/circbuf/pkg/buffer/circular"
		"github.com/vnykmshr/circbuf/pkg/scheduling/workerpool"
	)

	buf := circular.New[Request](256)
	pool := workerpool.New[Request](buf, handler, 4)

	// connection reader
	if err := buf.Put(ctx, req); err != nil {
		return err
	}

	// shutdown
	buf.Seal("shutdown")
	_ = pool.Shutdown(ctx)
*/
package circbuf
