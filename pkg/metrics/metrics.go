// Package metrics provides Prometheus instrumentation for circbuf components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for circbuf components.
type Registry struct {
	// Buffer Metrics
	BufferEnqueued     *prometheus.CounterVec
	BufferDequeued     *prometheus.CounterVec
	BufferRejected     *prometheus.CounterVec
	BufferWaitOutcomes *prometheus.CounterVec
	BufferDrained      *prometheus.CounterVec
	BufferWaitDuration *prometheus.HistogramVec
	BufferSize         *prometheus.GaugeVec
	BufferCapacity     *prometheus.GaugeVec
	BufferSealed       *prometheus.GaugeVec

	// Monitor Metrics
	MonitorSamples       *prometheus.CounterVec
	MonitorUtilization   *prometheus.GaugeVec
	MonitorHighWatermark *prometheus.CounterVec

	// Worker Pool Metrics
	WorkerItems    *prometheus.CounterVec
	WorkerActive   *prometheus.GaugeVec
	WorkerDuration *prometheus.HistogramVec

	// Spill Store Metrics
	SpillItems  *prometheus.CounterVec
	SpillErrors *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by circbuf components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Registry: reg, Namespace: DefaultNamespace})
}

// NewRegistryWithConfig creates a metrics registry honoring the namespace and
// constant labels of config. A nil config.Registry selects the Prometheus
// default registerer.
func NewRegistryWithConfig(config Config) *Registry {
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(config.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(config.Labels, reg)
	}
	ns := config.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	factory := promauto.With(reg)

	return &Registry{
		// Buffer Metrics
		BufferEnqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "enqueued_total",
				Help:      "Total number of items admitted to the buffer",
			},
			[]string{"buffer_name"},
		),

		BufferDequeued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "dequeued_total",
				Help:      "Total number of items removed from the buffer",
			},
			[]string{"buffer_name"},
		),

		BufferRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "rejected_total",
				Help:      "Total number of writes refused because the buffer was full or sealed",
			},
			[]string{"buffer_name", "reason"},
		),

		BufferWaitOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "wait_outcomes_total",
				Help:      "Blocking operations that had to park, by outcome",
			},
			[]string{"buffer_name", "side", "outcome"},
		),

		BufferDrained: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "drained_total",
				Help:      "Total number of items removed by bulk drains",
			},
			[]string{"buffer_name"},
		),

		BufferWaitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "wait_duration_seconds",
				Help:      "Time blocking operations spent parked on the buffer",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"buffer_name", "side"},
		),

		BufferSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "size",
				Help:      "Current number of items in the buffer",
			},
			[]string{"buffer_name"},
		),

		BufferCapacity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "capacity",
				Help:      "Fixed buffer capacity",
			},
			[]string{"buffer_name"},
		),

		BufferSealed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "buffer",
				Name:      "sealed",
				Help:      "1 when the buffer is sealed for writes, 0 otherwise",
			},
			[]string{"buffer_name"},
		),

		// Monitor Metrics
		MonitorSamples: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "monitor",
				Name:      "samples_total",
				Help:      "Total number of occupancy samples taken",
			},
			[]string{"buffer_name"},
		),

		MonitorUtilization: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "monitor",
				Name:      "utilization",
				Help:      "Sampled buffer utilization (0.0 to 1.0)",
			},
			[]string{"buffer_name"},
		),

		MonitorHighWatermark: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "monitor",
				Name:      "high_watermark_total",
				Help:      "Samples at or above the configured high watermark",
			},
			[]string{"buffer_name"},
		),

		// Worker Pool Metrics
		WorkerItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "items_total",
				Help:      "Items handled by pool workers, by result",
			},
			[]string{"pool_name", "result"},
		),

		WorkerActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of running workers",
			},
			[]string{"pool_name"},
		),

		WorkerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "workerpool",
				Name:      "handle_duration_seconds",
				Help:      "Time spent handling a single item",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		// Spill Store Metrics
		SpillItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "spill",
				Name:      "items_total",
				Help:      "Items moved between buffers and the spill store, by direction",
			},
			[]string{"store_key", "direction"},
		),

		SpillErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "spill",
				Name:      "errors_total",
				Help:      "Spill store operations that failed",
			},
			[]string{"store_key", "operation"},
		),
	}
}
