package circular

import (
	"context"
	"testing"
)

func BenchmarkEnqueueDequeue(b *testing.B) {
	buf := New[int](1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Enqueue(i)
		_, _ = buf.Dequeue()
	}
}

func BenchmarkTryEnqueueTryDequeueParallel(b *testing.B) {
	buf := New[int](1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%2 == 0 {
				buf.TryEnqueue(i)
			} else {
				buf.TryDequeue()
			}
			i++
		}
	})
}

func BenchmarkPutTake(b *testing.B) {
	buf := New[int](256)
	ctx := context.Background()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < b.N; i++ {
			if _, err := buf.Take(ctx); err != nil {
				return
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Put(ctx, i)
	}
	<-done
}

func BenchmarkDrainTo(b *testing.B) {
	buf := New[int](1024)
	var sink SliceSink[int]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for buf.TryEnqueue(i) {
		}
		sink.Items = sink.Items[:0]
		buf.DrainTo(&sink)
	}
}

func BenchmarkInstrumented(b *testing.B) {
	buf, _ := newInstrumented(b, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Enqueue(i)
		_, _ = buf.Dequeue()
	}
}
