package kv

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"kingrun/internal/adapters/http/perf"
)

// DefaultSlowOpMs is the default threshold for slow store operation warnings.
const DefaultSlowOpMs = 50

// TimedStore wraps a Store to log slow operations and record them to a collector.
type TimedStore struct {
	Store
	collector *perf.Collector
	threshold float64
}

// NewTimedStore wraps s with timing instrumentation. collector may be nil.
// The threshold comes from KINGRUN_SLOW_STORE_MS.
// PRE: s is non-nil
// POST: Returns a Store that times Get, Set and Delete
func NewTimedStore(s Store, collector *perf.Collector) *TimedStore {
	ms := DefaultSlowOpMs
	if v := os.Getenv("KINGRUN_SLOW_STORE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return &TimedStore{Store: s, collector: collector, threshold: float64(ms)}
}

func (t *TimedStore) observe(op string, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	if durationMs >= t.threshold {
		slog.Warn("slow_store_op", "op", op, "duration_ms", durationMs)
	} else {
		slog.Debug("store_op", "op", op, "duration_ms", durationMs)
	}
	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindStore,
			Path:       op,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

// Get times Store.Get.
func (t *TimedStore) Get(ctx context.Context, scope, key string) (string, error) {
	defer t.observe("kv.Get", time.Now())
	return t.Store.Get(ctx, scope, key)
}

// Set times Store.Set.
func (t *TimedStore) Set(ctx context.Context, scope, key, value string) error {
	defer t.observe("kv.Set", time.Now())
	return t.Store.Set(ctx, scope, key, value)
}

// Delete times Store.Delete.
func (t *TimedStore) Delete(ctx context.Context, scope, key string) error {
	defer t.observe("kv.Delete", time.Now())
	return t.Store.Delete(ctx, scope, key)
}

// Prune forwards to the wrapped store when it supports pruning.
func (t *TimedStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	p, ok := t.Store.(Pruner)
	if !ok {
		return 0, nil
	}
	defer t.observe("kv.Prune", time.Now())
	return p.Prune(ctx, olderThan)
}
