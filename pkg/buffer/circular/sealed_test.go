package circular

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/circbuf/internal/testutil"
	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
)

func newSealedForTest(t *testing.T, items ...int) (*Buffer[int], *Sealed[int]) {
	t.Helper()
	config := DefaultConfig()
	config.Capacity = 4
	config.SpinInterval = 2 * time.Millisecond
	buf := NewWithConfig[int](config)
	for _, v := range items {
		testutil.AssertNoError(t, buf.Enqueue(v))
	}
	return buf, buf.Seal("shutdown")
}

func TestSealedRefusesWrites(t *testing.T) {
	buf, sealed := newSealedForTest(t, 1, 2)

	for name, q := range map[string]Queue[int]{"buffer": buf, "sealed": sealed} {
		err := q.Enqueue(3)
		if !errors.Is(err, ErrSealed) {
			t.Errorf("%s.Enqueue() error = %v, want ErrSealed", name, err)
		}
		var serr *gferrors.SealedError
		if !errors.As(err, &serr) || serr.Reason != "shutdown" {
			t.Errorf("%s.Enqueue() error = %v, want SealedError with reason", name, err)
		}

		if q.TryEnqueue(3) {
			t.Errorf("%s.TryEnqueue() admitted an item", name)
		}
		if got := q.RemainingCapacity(); got != 0 {
			t.Errorf("%s.RemainingCapacity() = %d, want 0", name, got)
		}
	}

	testutil.AssertEqual(t, buf.Size(), 2)
	testutil.AssertEqual(t, buf.Stats().SealedRejections, int64(4))

	_, err := sealed.AddAll([]int{5})
	testutil.AssertErrorIs(t, err, ErrSealed)
}

func TestSealedReadsDrain(t *testing.T) {
	buf, sealed := newSealedForTest(t, 1, 2, 3)

	v, ok := sealed.Peek()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 1)

	v, err := sealed.Dequeue()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 1)

	testutil.AssertSliceEqual(t, sealed.Drain(), []int{2, 3})
	testutil.AssertEqual(t, buf.IsEmpty(), true)
	testutil.AssertEqual(t, sealed.IsEmpty(), true)

	_, err = sealed.Dequeue()
	testutil.AssertErrorIs(t, err, ErrEmpty)
}

func TestSealedPutWaitsForContext(t *testing.T) {
	_, sealed := newSealedForTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := sealed.Put(ctx, 1)
	testutil.AssertErrorIs(t, err, ErrTimeout)
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("sealed Put returned after %v", elapsed)
	}
	testutil.AssertEqual(t, sealed.Size(), 0)
}

func TestSealedTryEnqueueTimeoutWaitsOutBudget(t *testing.T) {
	_, sealed := newSealedForTest(t)

	const budget = 30 * time.Millisecond
	start := time.Now()
	ok, err := sealed.TryEnqueueTimeout(context.Background(), 1, budget)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
	if elapsed := time.Since(start); elapsed < budget {
		t.Errorf("returned after %v, before the %v budget", elapsed, budget)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err = sealed.TryEnqueueTimeout(ctx, 1, time.Second)
	testutil.AssertEqual(t, ok, false)
	testutil.AssertErrorIs(t, err, ErrCanceled)
}

func TestSealWakesParkedProducer(t *testing.T) {
	config := DefaultConfig()
	config.Capacity = 1
	config.SpinInterval = time.Millisecond
	buf := NewWithConfig[int](config)
	testutil.AssertNoError(t, buf.Enqueue(1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- buf.Put(ctx, 2)
	}()

	testutil.AssertEventually(t, func() bool {
		return buf.Stats().BlockedPuts == 1
	})
	buf.Seal("draining")

	// Freeing a slot must not let the parked item in.
	_, err := buf.Dequeue()
	testutil.AssertNoError(t, err)
	testutil.AssertBlocked(t, done, 20*time.Millisecond)
	testutil.AssertEqual(t, buf.Size(), 0)

	cancel()
	testutil.AssertErrorIs(t, testutil.AssertCompletes(t, done), ErrCanceled)
}

func TestSealIsOneWay(t *testing.T) {
	buf, sealed := newSealedForTest(t, 1)

	second := buf.Seal("again")
	testutil.AssertEqual(t, second.Reason(), "shutdown")
	testutil.AssertEqual(t, sealed.Reason(), "shutdown")
	testutil.AssertEqual(t, buf.SealReason(), "shutdown")

	buf.Clear()
	testutil.AssertEqual(t, buf.IsSealed(), true)
	testutil.AssertEqual(t, buf.TryEnqueue(1), false)
	testutil.AssertEqual(t, sealed.Stats().Sealed, true)
	testutil.AssertEqual(t, sealed.Buffer(), buf)
}

func TestSealedDrainToWhileProducersRefused(t *testing.T) {
	buf := New[string](8)
	for _, s := range []string{"A", "B", "C", "D", "E"} {
		testutil.AssertNoError(t, buf.Enqueue(s))
	}

	sealed := buf.Seal("closing")
	testutil.AssertEqual(t, sealed.TryEnqueue("F"), false)

	var sink SliceSink[string]
	testutil.AssertEqual(t, sealed.DrainToN(&sink, 2), 2)
	testutil.AssertEqual(t, sealed.DrainTo(&sink), 3)
	testutil.AssertSliceEqual(t, sink.Items, []string{"A", "B", "C", "D", "E"})
}
