package spill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	gferrors "github.com/vnykmshr/circbuf/pkg/common/errors"
	"github.com/vnykmshr/circbuf/pkg/common/validation"
	"github.com/vnykmshr/circbuf/pkg/metrics"
)

// Source is drained by Spill. *circular.Buffer and *circular.Sealed both
// satisfy it.
type Source[T any] interface {
	Drain() []T
}

// Target is refilled by Restore. Restore never admits more than
// RemainingCapacity reports, so a sealed target receives nothing.
type Target[T any] interface {
	RemainingCapacity() int
	TryEnqueue(item T) bool
}

// Config holds configuration for a spill Store.
type Config[T any] struct {
	// Redis client holding the spilled items
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this store
	Key string

	// Codec encodes items; nil selects MsgpackCodec
	Codec Codec[T]

	// RedisTimeout bounds each Redis round trip (defaults to 2s)
	RedisTimeout time.Duration

	// KeyTTL expires the spilled list if nobody restores it; zero keeps it
	KeyTTL time.Duration

	// Logger receives spill and restore events; nil selects slog.Default()
	Logger *slog.Logger

	// Metrics, when non-nil, counts moved items and failures
	Metrics *metrics.Registry
}

// DefaultRedisTimeout is used when Config.RedisTimeout is zero.
const DefaultRedisTimeout = 2 * time.Second

// Store persists the contents of a buffer in a Redis list so a process can
// hand in-flight items to its successor across a restart.
type Store[T any] struct {
	redis   redis.UniversalClient
	key     string
	list    string
	codec   Codec[T]
	timeout time.Duration
	ttl     time.Duration
	logger  *slog.Logger

	spilled  prometheus.Counter
	restored prometheus.Counter
	failures *prometheus.CounterVec
}

// New creates a Store. It does not contact Redis.
func New[T any](config Config[T]) (*Store[T], error) {
	if err := validation.ValidateNotNil("spill", "redis", config.Redis); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("spill", "key", config.Key); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("spill", "redis_timeout", config.RedisTimeout); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("spill", "key_ttl", config.KeyTTL); err != nil {
		return nil, err
	}

	if config.Codec == nil {
		config.Codec = MsgpackCodec[T]{}
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = DefaultRedisTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store[T]{
		redis:   config.Redis,
		key:     config.Key,
		list:    config.Key + ":items",
		codec:   config.Codec,
		timeout: config.RedisTimeout,
		ttl:     config.KeyTTL,
		logger:  logger.With("component", "spill", "key", config.Key),
	}
	if m := config.Metrics; m != nil {
		s.spilled = m.SpillItems.WithLabelValues(config.Key, "spill")
		s.restored = m.SpillItems.WithLabelValues(config.Key, "restore")
		s.failures = m.SpillErrors
	}
	return s, nil
}

// Spill drains src and appends the items, oldest first, to the Redis list.
// If the items cannot be persisted they are returned inside an
// *UnspilledError so the caller can still deal with them.
func (s *Store[T]) Spill(ctx context.Context, src Source[T]) (int, error) {
	items := src.Drain()
	if len(items) == 0 {
		return 0, nil
	}

	values := make([]interface{}, len(items))
	for i, item := range items {
		data, err := s.codec.Marshal(item)
		if err != nil {
			return 0, s.unspilled(items, "encode", err)
		}
		values[i] = data
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, s.list, values...)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.list, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, s.unspilled(items, "rpush", err)
	}

	if s.spilled != nil {
		s.spilled.Add(float64(len(items)))
	}
	s.logger.Info("items spilled", "count", len(items))
	return len(items), nil
}

// Restore moves up to dst.RemainingCapacity() items from the head of the
// Redis list into dst, oldest first. Items dst refuses go back to the head
// of the list in their original order.
func (s *Store[T]) Restore(ctx context.Context, dst Target[T]) (int, error) {
	room := dst.RemainingCapacity()
	if room <= 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.redis.LPopCount(ctx, s.list, room).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, s.fail("lpop", err)
	}

	items := make([]T, len(raw))
	for i, data := range raw {
		item, err := s.codec.Unmarshal([]byte(data))
		if err != nil {
			return 0, errors.Join(s.fail("decode", err), s.pushBack(ctx, raw))
		}
		items[i] = item
	}

	restored := 0
	for restored < len(items) && dst.TryEnqueue(items[restored]) {
		restored++
	}

	if s.restored != nil {
		s.restored.Add(float64(restored))
	}
	if restored < len(raw) {
		if err := s.pushBack(ctx, raw[restored:]); err != nil {
			return restored, err
		}
	}

	s.logger.Info("items restored", "count", restored, "returned", len(raw)-restored)
	return restored, nil
}

// Len returns the number of items waiting in Redis.
func (s *Store[T]) Len(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.redis.LLen(ctx, s.list).Result()
	if err != nil {
		return 0, s.fail("llen", err)
	}
	return n, nil
}

// Reset discards every spilled item.
func (s *Store[T]) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.redis.Del(ctx, s.list).Err(); err != nil {
		return s.fail("del", err)
	}
	return nil
}

// pushBack returns raw items to the head of the list, keeping their order.
func (s *Store[T]) pushBack(ctx context.Context, raw []string) error {
	values := make([]interface{}, len(raw))
	for i, data := range raw {
		values[len(raw)-1-i] = data
	}
	if err := s.redis.LPush(ctx, s.list, values...).Err(); err != nil {
		return s.fail("lpush", err)
	}
	return nil
}

func (s *Store[T]) fail(operation string, err error) error {
	if s.failures != nil {
		s.failures.WithLabelValues(s.key, operation).Inc()
	}
	s.logger.Warn("spill store operation failed", "operation", operation, "error", err)
	return gferrors.NewOperationError("spill", operation, err).WithContext(s.list)
}

func (s *Store[T]) unspilled(items []T, operation string, err error) error {
	return &UnspilledError[T]{Items: items, Err: s.fail(operation, err)}
}

// UnspilledError carries the items a failed Spill had already drained.
type UnspilledError[T any] struct {
	Items []T
	Err   error
}

func (e *UnspilledError[T]) Error() string {
	return fmt.Sprintf("%d items not spilled: %v", len(e.Items), e.Err)
}

func (e *UnspilledError[T]) Unwrap() error {
	return e.Err
}
