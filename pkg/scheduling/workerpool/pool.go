package workerpool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vnykmshr/circbuf/pkg/buffer/circular"
	"github.com/vnykmshr/circbuf/pkg/common/validation"
	"github.com/vnykmshr/circbuf/pkg/metrics"
)

// Handler processes one item taken from the buffer.
type Handler[T any] interface {
	// Handle should respect ctx and return any error encountered.
	Handle(ctx context.Context, item T) error
}

// HandlerFunc is a function type that implements the Handler interface.
type HandlerFunc[T any] func(ctx context.Context, item T) error

// Handle implements the Handler interface for HandlerFunc.
func (f HandlerFunc[T]) Handle(ctx context.Context, item T) error {
	return f(ctx, item)
}

// Result represents the outcome of handling one item.
type Result[T any] struct {
	// Item is the value taken from the buffer
	Item T

	// Error is any error returned by the handler, or the recovered panic
	Error error

	// Panicked is set when the handler panicked
	Panicked bool

	// Duration is how long the handler ran
	Duration time.Duration

	// WorkerID identifies which worker handled the item
	WorkerID int
}

// Config holds configuration options for a worker pool.
type Config[T any] struct {
	// Name identifies the pool in logs and metric labels.
	Name string

	// WorkerCount is the number of consumer goroutines. Must be greater than 0.
	WorkerCount int

	// PollInterval bounds each wait on an empty buffer. It also bounds how
	// long an idle worker takes to notice Shutdown. Defaults to 100ms.
	PollInterval time.Duration

	// TaskTimeout bounds each handler call. Zero means no timeout.
	TaskTimeout time.Duration

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnResult is called after every handled item (success or failure).
	OnResult func(result Result[T])

	// Logger receives lifecycle events and recovered panics.
	Logger *slog.Logger

	// Metrics, when non-nil, receives Prometheus instrumentation.
	Metrics *metrics.Registry
}

// DefaultPollInterval is used when Config.PollInterval is zero.
const DefaultPollInterval = 100 * time.Millisecond

// Stats holds a point-in-time view of pool activity.
type Stats struct {
	Workers  int
	Busy     int
	Handled  int64
	Failed   int64
	Panicked int64
	Draining bool
}

// Pool runs a fixed number of workers that take items from a buffer and
// pass them to a Handler.
type Pool[T any] struct {
	config  Config[T]
	source  circular.Consumer[T]
	handler Handler[T]
	logger  *slog.Logger
	metrics *poolMetrics

	// ctx is handed to handlers; cancel ends the pool at once.
	ctx    context.Context
	cancel context.CancelFunc

	shutdownOnce sync.Once
	workerWg     sync.WaitGroup
	done         chan struct{}

	mu       sync.RWMutex
	draining bool
	running  int
	busy     int
	handled  int64
	failed   int64
	panicked int64
}

// worker represents a single worker in the pool.
type worker[T any] struct {
	id   int
	pool *Pool[T]
}

// New creates and starts a pool of workerCount workers consuming source.
// It panics on invalid arguments; use NewWithConfig to get an error instead.
func New[T any](source circular.Consumer[T], handler Handler[T], workerCount int) *Pool[T] {
	pool, err := NewWithConfig(source, handler, Config[T]{WorkerCount: workerCount})
	if err != nil {
		panic("invalid worker pool configuration: " + err.Error())
	}
	return pool
}

// NewWithConfig creates and starts a pool with the specified configuration.
func NewWithConfig[T any](source circular.Consumer[T], handler Handler[T], config Config[T]) (*Pool[T], error) {
	if err := validation.ValidateNotNil("workerpool", "source", source); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotNil("workerpool", "handler", handler); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("workerpool", "worker_count", config.WorkerCount); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("workerpool", "poll_interval", config.PollInterval); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("workerpool", "task_timeout", config.TaskTimeout); err != nil {
		return nil, err
	}

	if config.PollInterval == 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.Name == "" {
		config.Name = "workerpool"
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := &Pool[T]{
		config:  config,
		source:  source,
		handler: handler,
		logger:  logger.With("component", "workerpool", "pool", config.Name),
		metrics: newPoolMetrics(config.Metrics, config.Name),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	// Create and start workers
	for i := 0; i < config.WorkerCount; i++ {
		w := &worker[T]{id: i, pool: pool}
		pool.workerWg.Add(1)
		go w.run()
	}
	go func() {
		pool.workerWg.Wait()
		close(pool.done)
	}()

	return pool, nil
}
