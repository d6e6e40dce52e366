package circular

import (
	"log/slog"
	"math/bits"
	"time"

	"github.com/vnykmshr/circbuf/pkg/common/validation"
	"github.com/vnykmshr/circbuf/pkg/metrics"
)

const (
	// DefaultCapacity is the requested capacity used by DefaultConfig.
	DefaultCapacity = 1024

	// DefaultSpinInterval is the polling period of a sealed buffer's Put.
	DefaultSpinInterval = 10 * time.Millisecond

	// MaxCapacity bounds the rounded capacity of a single buffer.
	MaxCapacity = 1 << 30
)

// Config holds configuration for a Buffer.
type Config struct {
	// Capacity is the requested number of slots. It is rounded up to the
	// next power of two.
	Capacity int

	// SpinInterval is how often a Put parked on a sealed buffer wakes to
	// check its context. Zero selects DefaultSpinInterval.
	SpinInterval time.Duration

	// Name identifies the buffer in logs and metric labels.
	Name string

	// Logger receives lifecycle events. Nil selects slog.Default().
	Logger *slog.Logger

	// Metrics, when non-nil, receives Prometheus instrumentation. Share one
	// Registry between buffers; label values keep them apart.
	Metrics *metrics.Registry
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:     DefaultCapacity,
		SpinInterval: DefaultSpinInterval,
		Name:         "circbuf",
	}
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("circular", "capacity", c.Capacity); err != nil {
		return err
	}
	if err := validation.ValidateAtMost("circular", "capacity", c.Capacity, MaxCapacity); err != nil {
		return err
	}
	return validation.ValidateNonNegativeDuration("circular", "spin_interval", c.SpinInterval)
}

// roundUpPow2 returns the smallest power of two >= n, for n >= 1.
func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
