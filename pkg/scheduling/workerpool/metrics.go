package workerpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/circbuf/pkg/metrics"
)

// poolMetrics binds the shared registry to one pool's label values.
// A nil *poolMetrics records nothing.
type poolMetrics struct {
	success  prometheus.Counter
	failure  prometheus.Counter
	panicked prometheus.Counter
	active   prometheus.Gauge
	duration prometheus.Observer
}

func newPoolMetrics(registry *metrics.Registry, name string) *poolMetrics {
	if registry == nil {
		return nil
	}

	m := &poolMetrics{
		success:  registry.WorkerItems.WithLabelValues(name, "success"),
		failure:  registry.WorkerItems.WithLabelValues(name, "error"),
		panicked: registry.WorkerItems.WithLabelValues(name, "panic"),
		active:   registry.WorkerActive.WithLabelValues(name),
		duration: registry.WorkerDuration.WithLabelValues(name),
	}
	m.active.Set(0)
	return m
}

func (m *poolMetrics) recordResult(panicked bool, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
	switch {
	case panicked:
		m.panicked.Inc()
	case err != nil:
		m.failure.Inc()
	default:
		m.success.Inc()
	}
}

func (m *poolMetrics) workerStarted() {
	if m == nil {
		return
	}
	m.active.Inc()
}

func (m *poolMetrics) workerStopped() {
	if m == nil {
		return
	}
	m.active.Dec()
}
