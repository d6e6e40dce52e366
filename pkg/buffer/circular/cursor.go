package circular

// Cursor walks the range of positions that was present when Snapshot was
// called. It reads each slot and clears it, but never advances the
// buffer's tail: Size is unchanged afterwards, and consumers that later
// dequeue over the walked range get zero values. Coordinating the walk with
// ordinary consumers is the caller's job.
//
// A Cursor is not safe for concurrent use.
type Cursor[T any] struct {
	buf  *Buffer[T]
	head uint64
	tail uint64
	pos  uint64
}

// Snapshot freezes the current range for a Cursor.
func (b *Buffer[T]) Snapshot() *Cursor[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &Cursor[T]{
		buf:  b,
		head: b.head,
		tail: b.tail,
		pos:  b.tail,
	}
}

// HasNext reports whether positions remain in the frozen range.
func (c *Cursor[T]) HasNext() bool {
	return c.pos < c.head
}

// Next returns the slot at the cursor position and clears it. ok is false
// once the range is exhausted.
func (c *Cursor[T]) Next() (item T, ok bool) {
	if c.pos >= c.head {
		return item, false
	}

	b := c.buf
	b.mu.Lock()
	slot := c.pos & b.mask
	item = b.items[slot]
	var zero T
	b.items[slot] = zero
	b.mu.Unlock()

	c.pos++
	return item, true
}

// Rewind restarts the walk at the frozen tail. Slots already walked read
// as zero values.
func (c *Cursor[T]) Rewind() {
	c.pos = c.tail
}

// Remaining returns the number of positions left to walk.
func (c *Cursor[T]) Remaining() int {
	return int(c.head - c.pos)
}

// Collect walks the rest of the range and returns what it read.
func (c *Cursor[T]) Collect() []T {
	out := make([]T, 0, c.Remaining())
	for {
		item, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, item)
	}
}
