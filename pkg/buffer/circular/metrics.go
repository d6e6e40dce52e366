package circular

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/circbuf/pkg/metrics"
)

type side string

const (
	sideProducer side = "producer"
	sideConsumer side = "consumer"
)

// bufferMetrics binds the shared registry to one buffer's label values.
// A nil *bufferMetrics records nothing.
type bufferMetrics struct {
	registry *metrics.Registry
	name     string

	enqueued prometheus.Counter
	dequeued prometheus.Counter
	drained  prometheus.Counter
	full     prometheus.Counter
	sealedW  prometheus.Counter
	size     prometheus.Gauge
	sealed   prometheus.Gauge
}

func newBufferMetrics(registry *metrics.Registry, name string, capacity int) *bufferMetrics {
	if registry == nil {
		return nil
	}

	m := &bufferMetrics{
		registry: registry,
		name:     name,
		enqueued: registry.BufferEnqueued.WithLabelValues(name),
		dequeued: registry.BufferDequeued.WithLabelValues(name),
		drained:  registry.BufferDrained.WithLabelValues(name),
		full:     registry.BufferRejected.WithLabelValues(name, "full"),
		sealedW:  registry.BufferRejected.WithLabelValues(name, "sealed"),
		size:     registry.BufferSize.WithLabelValues(name),
		sealed:   registry.BufferSealed.WithLabelValues(name),
	}
	registry.BufferCapacity.WithLabelValues(name).Set(float64(capacity))
	m.size.Set(0)
	m.sealed.Set(0)
	return m
}

func (m *bufferMetrics) recordEnqueue(size int) {
	if m == nil {
		return
	}
	m.enqueued.Inc()
	m.size.Set(float64(size))
}

func (m *bufferMetrics) recordDequeue(size int) {
	if m == nil {
		return
	}
	m.dequeued.Inc()
	m.size.Set(float64(size))
}

func (m *bufferMetrics) recordDrain(n, size int) {
	if m == nil {
		return
	}
	m.drained.Add(float64(n))
	m.size.Set(float64(size))
}

func (m *bufferMetrics) recordReject(sealed bool) {
	if m == nil {
		return
	}
	if sealed {
		m.sealedW.Inc()
		return
	}
	m.full.Inc()
}

func (m *bufferMetrics) recordWait(s side, outcome string, waited time.Duration) {
	if m == nil {
		return
	}
	m.registry.BufferWaitDuration.WithLabelValues(m.name, string(s)).Observe(waited.Seconds())
	if outcome != "" {
		m.registry.BufferWaitOutcomes.WithLabelValues(m.name, string(s), outcome).Inc()
	}
}

func (m *bufferMetrics) recordSize(size int) {
	if m == nil {
		return
	}
	m.size.Set(float64(size))
}

func (m *bufferMetrics) recordSealed() {
	if m == nil {
		return
	}
	m.sealed.Set(1)
}
