package purefn

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type config struct {
	ttl      func() time.Duration
	clock    func() time.Time
	logger   *zap.Logger
	provider metric.MeterProvider
	name     string
}

// Option configures a memoizer.
type Option func(*config)

func newConfig(opts []Option) config {
	// Entries never expire unless a ttl option says otherwise.
	cfg := config{
		clock:    time.Now,
		logger:   zap.NewNop(),
		provider: otel.GetMeterProvider(),
		name:     "memo-" + uuid.NewString(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// expiration returns when an entry stored at now goes stale, or forever when
// no ttl is configured.
func (c config) expiration(now time.Time) (expires time.Time, forever bool) {
	if c.ttl == nil {
		return time.Time{}, true
	}
	return now.Add(c.ttl()), false
}

// WithTTL expires every entry ttl after it was stored. A ttl <= 0 makes
// entries stale as soon as they are stored.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = func() time.Duration { return ttl }
	}
}

// WithTTLFunc computes the ttl each time a fresh value is stored. Cache hits
// never call it.
func WithTTLFunc(ttl func() time.Duration) Option {
	return func(c *config) {
		if ttl != nil {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now as the source of store and expiry times.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithLogger sets the logger for hit, miss and store events, all at debug
// level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMeterProvider sets where the memoizer's counters are registered.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		if provider != nil {
			c.provider = provider
		}
	}
}

// WithName labels the memoizer in logs and metrics.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}
