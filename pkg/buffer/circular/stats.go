package circular

// Stats holds a point-in-time view of buffer activity.
type Stats struct {
	// Capacity is the rounded, fixed capacity.
	Capacity int

	// Size is the number of items present.
	Size int

	// Enqueued is the total number of items admitted.
	Enqueued int64

	// Dequeued is the total number of items removed by single-item reads.
	Dequeued int64

	// Drained is the total number of items removed by bulk drains.
	Drained int64

	// Rejected counts writes refused because the buffer was full.
	Rejected int64

	// SealedRejections counts writes refused because the buffer was sealed.
	SealedRejections int64

	// BlockedPuts and BlockedTakes count blocking calls that had to park.
	BlockedPuts  int64
	BlockedTakes int64

	// Timeouts counts parked calls that ran out of time.
	Timeouts int64

	// Cancellations counts parked calls whose context was canceled.
	Cancellations int64

	// Sealed reports whether writes are cut off.
	Sealed bool

	// Utilization is Size/Capacity (0.0 to 1.0).
	Utilization float64
}

// counters is the mutable form of Stats, guarded by the buffer lock.
type counters struct {
	enqueued         int64
	dequeued         int64
	drained          int64
	rejected         int64
	sealedRejections int64
	blockedPuts      int64
	blockedTakes     int64
	timeouts         int64
	cancellations    int64
}
