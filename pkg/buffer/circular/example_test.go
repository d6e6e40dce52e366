package circular_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vnykmshr/circbuf/pkg/buffer/circular"
)

func Example() {
	buf := circular.New[string](5)
	fmt.Println("capacity:", buf.Capacity())

	for _, s := range []string{"A", "B", "C", "D", "E"} {
		_ = buf.Enqueue(s)
	}

	first, _ := buf.Dequeue()
	second, _ := buf.Dequeue()
	fmt.Println(first, second, buf.Size())

	// Output:
	// capacity: 8
	// A B 3
}

// Example_failFast shows the probe operations reporting a full and an
// empty buffer.
func Example_failFast() {
	buf := circular.New[int](2)
	_ = buf.Enqueue(1)
	_ = buf.Enqueue(2)

	err := buf.Enqueue(3)
	fmt.Println(errors.Is(err, circular.ErrCapacityExceeded))
	fmt.Println(buf.TryEnqueue(3))

	buf.Drain()
	_, err = buf.Dequeue()
	fmt.Println(errors.Is(err, circular.ErrEmpty))

	// Output:
	// true
	// false
	// true
}

// Example_timeout shows the three outcomes of a timed read.
func Example_timeout() {
	buf := circular.New[int](1)

	_, ok, err := buf.TryDequeueTimeout(context.Background(), 10*time.Millisecond)
	fmt.Println(ok, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err = buf.TryDequeueTimeout(ctx, time.Second)
	fmt.Println(ok, errors.Is(err, circular.ErrCanceled))

	_ = buf.Enqueue(7)
	v, ok, err := buf.TryDequeueTimeout(context.Background(), time.Second)
	fmt.Println(v, ok, err)

	// Output:
	// false <nil>
	// false true
	// 7 true <nil>
}

// Example_drainTo moves a bounded batch into a sink.
func Example_drainTo() {
	buf := circular.New[int](8)
	for i := 1; i <= 6; i++ {
		_ = buf.Enqueue(i)
	}

	var batch circular.SliceSink[int]
	n := buf.DrainToN(&batch, 4)
	fmt.Println(n, batch.Items, buf.Size())

	// Output:
	// 4 [1 2 3 4] 2
}

// Example_seal drains what is left after producers are cut off.
func Example_seal() {
	buf := circular.New[string](4)
	_ = buf.Enqueue("req-1")
	_ = buf.Enqueue("req-2")

	sealed := buf.Seal("listener closed")
	fmt.Println(sealed.Enqueue("req-3"))
	fmt.Println(sealed.RemainingCapacity())

	for {
		req, ok := sealed.TryDequeue()
		if !ok {
			break
		}
		fmt.Println("handled", req)
	}

	// Output:
	// buffer is sealed: listener closed
	// 0
	// handled req-1
	// handled req-2
}
