package benchmark

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/vnykmshr/circbuf/pkg/buffer/circular"
)

// BenchmarkBufferPutTake measures one producer handing off to one consumer.
func BenchmarkBufferPutTake(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		b.Run(sizeLabel(size), func(b *testing.B) {
			buf := circular.New[int](size)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Consumer goroutine
			done := make(chan struct{})
			go func() {
				defer close(done)
				for {
					if _, err := buf.Take(ctx); err != nil {
						return
					}
				}
			}()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = buf.Put(ctx, i)
			}
			b.StopTimer()

			cancel()
			<-done
		})
	}
}

// BenchmarkChannelSendReceive is the native channel baseline for
// BenchmarkBufferPutTake.
func BenchmarkChannelSendReceive(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		b.Run(sizeLabel(size), func(b *testing.B) {
			ch := make(chan int, size)

			done := make(chan struct{})
			go func() {
				defer close(done)
				for range ch {
				}
			}()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ch <- i
			}
			b.StopTimer()

			close(ch)
			<-done
		})
	}
}

// BenchmarkBufferMPMC measures contended hand-off with several producers
// and consumers on one buffer.
func BenchmarkBufferMPMC(b *testing.B) {
	for _, pairs := range []int{2, 4, 8} {
		b.Run("pairs_"+strconv.Itoa(pairs), func(b *testing.B) {
			buf := circular.New[int](1024)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var consumers sync.WaitGroup
			for c := 0; c < pairs; c++ {
				consumers.Add(1)
				go func() {
					defer consumers.Done()
					for {
						if _, err := buf.Take(ctx); err != nil {
							return
						}
					}
				}()
			}

			per := b.N/pairs + 1
			b.ReportAllocs()
			b.ResetTimer()

			var producers sync.WaitGroup
			for p := 0; p < pairs; p++ {
				producers.Add(1)
				go func() {
					defer producers.Done()
					for i := 0; i < per; i++ {
						_ = buf.Put(ctx, i)
					}
				}()
			}
			producers.Wait()
			b.StopTimer()

			cancel()
			consumers.Wait()
		})
	}
}

// BenchmarkBufferDrainBatch measures batched consumption via DrainToN.
func BenchmarkBufferDrainBatch(b *testing.B) {
	for _, batch := range []int{1, 16, 128} {
		b.Run("batch_"+strconv.Itoa(batch), func(b *testing.B) {
			buf := circular.New[int](1024)
			sink := &circular.SliceSink[int]{Items: make([]int, 0, batch)}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for j := 0; j < batch; j++ {
					buf.TryEnqueue(j)
				}
				sink.Items = sink.Items[:0]
				buf.DrainToN(sink, batch)
			}
		})
	}
}

func sizeLabel(size int) string {
	return "size_" + strconv.Itoa(size)
}
