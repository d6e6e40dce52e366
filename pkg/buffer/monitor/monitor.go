package monitor

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/circbuf/pkg/buffer/circular"
	gfcontext "github.com/vnykmshr/circbuf/pkg/common/context"
	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
	"github.com/vnykmshr/circbuf/pkg/common/validation"
	"github.com/vnykmshr/circbuf/pkg/metrics"
)

// Source is anything whose occupancy can be sampled. *circular.Buffer and
// *circular.Sealed of any item type satisfy it.
type Source interface {
	Stats() circular.Stats
}

// Sample is one observation of a watched buffer.
type Sample struct {
	Name  string
	Time  time.Time
	Stats circular.Stats

	// AboveWatermark is set when utilization reached Config.HighWatermark.
	AboveWatermark bool
}

// Config holds configuration for a Monitor.
type Config struct {
	// Schedule is a cron expression with a leading seconds field, or a
	// descriptor such as "@every 30s" or "@hourly".
	Schedule string

	// HighWatermark is the utilization (0.0 to 1.0] at which a sample is
	// logged as a warning and counted.
	HighWatermark float64

	// Location evaluates Schedule; nil selects time.Local.
	Location *time.Location

	// OnSample, when set, receives every scheduled sample.
	OnSample func(Sample)

	// Logger receives samples at Debug and watermark breaches at Warn.
	Logger *slog.Logger

	// Metrics, when non-nil, exports sampled utilization.
	Metrics *metrics.Registry
}

// DefaultConfig returns a default monitor configuration.
func DefaultConfig() Config {
	return Config{
		Schedule:      "@every 10s",
		HighWatermark: 0.9,
	}
}

// Monitor samples the occupancy of a set of named buffers on a cron
// schedule.
type Monitor struct {
	mu      sync.Mutex
	sources map[string]Source
	running bool

	cron      *cron.Cron
	entry     cron.EntryID
	watermark float64
	onSample  func(Sample)
	logger    *slog.Logger

	samples     *prometheus.CounterVec
	utilization *prometheus.GaugeVec
	breaches    *prometheus.CounterVec
}

// New creates a stopped Monitor with no buffers.
func New(config Config) (*Monitor, error) {
	if err := validation.ValidateNotEmpty("monitor", "schedule", config.Schedule); err != nil {
		return nil, err
	}
	if err := validation.ValidateRatio("monitor", "high_watermark", config.HighWatermark); err != nil {
		return nil, err
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(config.Schedule)
	if err != nil {
		return nil, gferrors.NewValidationError("monitor", "schedule", config.Schedule, err.Error()).
			WithHint(`use six fields ("*/5 * * * * *") or a descriptor ("@every 5s")`)
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Monitor{
		sources:   make(map[string]Source),
		watermark: config.HighWatermark,
		onSample:  config.OnSample,
		logger:    logger.With("component", "monitor"),
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
	if r := config.Metrics; r != nil {
		m.samples = r.MonitorSamples
		m.utilization = r.MonitorUtilization
		m.breaches = r.MonitorHighWatermark
	}
	m.entry = m.cron.Schedule(schedule, cron.FuncJob(m.tick))

	return m, nil
}

// Watch adds src under name, replacing any source already using the name.
func (m *Monitor) Watch(name string, src Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[name] = src
}

// Unwatch removes the source registered under name.
func (m *Monitor) Unwatch(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sources, name)
}

// Sample observes every watched buffer now, ordered by name.
func (m *Monitor) Sample() []Sample {
	m.mu.Lock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	sources := make([]Source, len(names))
	for i, name := range names {
		sources[i] = m.sources[name]
	}
	m.mu.Unlock()

	now := time.Now()
	out := make([]Sample, len(names))
	for i, name := range names {
		stats := sources[i].Stats()
		s := Sample{
			Name:           name,
			Time:           now,
			Stats:          stats,
			AboveWatermark: stats.Utilization >= m.watermark,
		}
		m.record(s)
		out[i] = s
	}
	return out
}

func (m *Monitor) record(s Sample) {
	if m.samples != nil {
		m.samples.WithLabelValues(s.Name).Inc()
		m.utilization.WithLabelValues(s.Name).Set(s.Stats.Utilization)
		if s.AboveWatermark {
			m.breaches.WithLabelValues(s.Name).Inc()
		}
	}

	if s.AboveWatermark {
		m.logger.Warn("buffer above high watermark",
			"buffer", s.Name,
			"size", s.Stats.Size,
			"capacity", s.Stats.Capacity,
			"utilization", s.Stats.Utilization)
		return
	}
	m.logger.Debug("buffer sampled",
		"buffer", s.Name,
		"size", s.Stats.Size,
		"capacity", s.Stats.Capacity,
		"sealed", s.Stats.Sealed)
}

func (m *Monitor) tick() {
	for _, s := range m.Sample() {
		if m.onSample != nil {
			m.onSample(s)
		}
	}
}

// Start begins scheduled sampling. Starting a running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.cron.Start()
}

// Stop halts scheduled sampling and waits for a running sample to finish,
// or for ctx to end.
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	select {
	case <-m.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return gfcontext.Err(ctx)
	}
}

// Next returns when the next scheduled sample will be taken, or the zero
// time if the monitor is not running.
func (m *Monitor) Next() time.Time {
	return m.cron.Entry(m.entry).Next
}
