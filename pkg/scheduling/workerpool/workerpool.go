package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	gfcontext "github.com/vnykmshr/circbuf/pkg/common/context"
)

// Shutdown stops the pool gracefully: workers keep taking items until the
// buffer is empty, then exit. Seal the buffer first so producers cannot
// keep the workers busy forever.
//
// If ctx ends before the workers finish, Shutdown cancels them, waits for
// them to return and reports the context error.
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.draining = true
		p.mu.Unlock()
		p.logger.Info("worker pool draining")
	})

	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		return gfcontext.Err(ctx)
	}
}

// Stop cancels every worker and in-flight handler, and waits for the
// workers to return. Items still in the buffer stay there.
func (p *Pool[T]) Stop() {
	p.cancel()
	<-p.done
}

// Done returns a channel that is closed once every worker has returned.
func (p *Pool[T]) Done() <-chan struct{} {
	return p.done
}

// Size returns the number of workers in the pool.
func (p *Pool[T]) Size() int {
	return p.config.WorkerCount
}

// Stats returns pool statistics.
func (p *Pool[T]) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Stats{
		Workers:  p.running,
		Busy:     p.busy,
		Handled:  p.handled,
		Failed:   p.failed,
		Panicked: p.panicked,
		Draining: p.draining,
	}
}

func (p *Pool[T]) isDraining() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.draining
}

// run is the main loop for a worker.
func (w *worker[T]) run() {
	p := w.pool
	defer p.workerWg.Done()

	p.workerStarted(w.id)
	defer p.workerStopped(w.id)

	for {
		if p.ctx.Err() != nil {
			return
		}
		item, ok, err := p.source.TryDequeueTimeout(p.ctx, p.config.PollInterval)
		if err != nil {
			// Pool canceled
			return
		}
		if !ok {
			if p.isDraining() {
				return
			}
			continue
		}
		w.handle(item)
	}
}

// handle runs the handler for a single item.
func (w *worker[T]) handle(item T) {
	p := w.pool
	start := time.Now()
	var err error
	panicked := false

	p.mu.Lock()
	p.busy++
	p.mu.Unlock()

	// Handle panics during handler execution
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err = fmt.Errorf("handler panicked: %v\nStack trace:\n%s", r, debug.Stack())
			p.logger.Error("handler panicked", "worker", w.id, "panic", r)
		}

		p.finish(Result[T]{
			Item:     item,
			Error:    err,
			Panicked: panicked,
			Duration: time.Since(start),
			WorkerID: w.id,
		})
	}()

	ctx := p.ctx
	if p.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.TaskTimeout)
		defer cancel()
	}

	err = p.handler.Handle(ctx, item)
}

func (p *Pool[T]) finish(result Result[T]) {
	p.mu.Lock()
	p.busy--
	switch {
	case result.Panicked:
		p.panicked++
	case result.Error != nil:
		p.failed++
	default:
		p.handled++
	}
	p.mu.Unlock()

	p.metrics.recordResult(result.Panicked, result.Error, result.Duration)

	if p.config.OnResult != nil {
		p.config.OnResult(result)
	}
}

func (p *Pool[T]) workerStarted(id int) {
	p.mu.Lock()
	p.running++
	p.mu.Unlock()
	p.metrics.workerStarted()

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(id)
	}
}

func (p *Pool[T]) workerStopped(id int) {
	p.mu.Lock()
	p.running--
	p.mu.Unlock()
	p.metrics.workerStopped()

	if p.config.OnWorkerStop != nil {
		p.config.OnWorkerStop(id)
	}
	p.logger.Debug("worker stopped", "worker", id)
}
