package purefn

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/on-the-ground/memoize_ive_go/purefn/internal/trie"
)

const meterName = "github.com/on-the-ground/memoize_ive_go/purefn"

// instruments reports memoizer events to zap and OpenTelemetry.
type instruments struct {
	name   string
	logger *zap.Logger
	attrs  metric.MeasurementOption

	hits     metric.Int64Counter
	misses   metric.Int64Counter
	stores   metric.Int64Counter
	purges   metric.Int64Counter
	releases metric.Int64Counter
}

func newInstruments(cfg config) *instruments {
	meter := cfg.provider.Meter(meterName)
	in := &instruments{
		name:   cfg.name,
		logger: cfg.logger.With(zap.String("memo", cfg.name)),
		attrs:  metric.WithAttributes(attribute.String("memo.name", cfg.name)),
	}
	in.hits = in.counter(meter, "memo.hits", "Calls served from the cache")
	in.misses = in.counter(meter, "memo.misses", "Calls that invoked the memoized function")
	in.stores = in.counter(meter, "memo.stores", "Results written to the cache")
	in.purges = in.counter(meter, "memo.purges", "Failed async results removed from the cache")
	in.releases = in.counter(meter, "memo.releases", "Subtrees dropped after their key object was collected")
	return in
}

func (in *instruments) counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		in.logger.Warn("failed to create counter", zap.String("counter", name), zap.Error(err))
		return noop.Int64Counter{}
	}
	return c
}

func (in *instruments) hit(args []any) {
	in.hits.Add(context.Background(), 1, in.attrs)
	in.debug("memo hit", args)
}

func (in *instruments) miss(args []any) {
	in.misses.Add(context.Background(), 1, in.attrs)
	in.debug("memo miss", args)
}

func (in *instruments) store(args []any) {
	in.stores.Add(context.Background(), 1, in.attrs)
	in.debug("memo store", args)
}

func (in *instruments) purge(args []any, err error) {
	in.purges.Add(context.Background(), 1, in.attrs)
	if ce := in.logger.Check(zapcore.DebugLevel, "memo purge"); ce != nil {
		ce.Write(zap.Int("arity", len(args)), zap.String("args", digest(args)), zap.Error(err))
	}
}

func (in *instruments) release() {
	in.releases.Add(context.Background(), 1, in.attrs)
	in.logger.Debug("memo key released")
}

func (in *instruments) debug(msg string, args []any) {
	if ce := in.logger.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(zap.Int("arity", len(args)), zap.String("args", digest(args)))
	}
}

// digest fingerprints an argument sequence for log correlation. References
// hash by address, so the digest never retains them.
func digest(args []any) string {
	d := xxhash.New()
	for _, arg := range args {
		if trie.KeyOf(arg).IsRef() {
			fmt.Fprintf(d, "%T@%p;", arg, arg)
			continue
		}
		fmt.Fprintf(d, "%T=%#v;", arg, arg)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
