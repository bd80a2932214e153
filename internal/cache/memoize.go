package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/metrics"
)

// Memoizer carries what Memoize needs: the store plus logging and metrics.
type Memoizer struct {
	store   Store
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewMemoizer creates a Memoizer over store. m may be nil.
func NewMemoizer(store Store, log logger.Logger, m *metrics.Metrics) *Memoizer {
	return &Memoizer{
		store:   store,
		logger:  log,
		metrics: m,
	}
}

// Memoize returns the cached value for (namespace, input) or runs compute and caches
// its result. Empty results (null, "", [], {}) are returned but never stored, and an
// empty cached value counts as a miss. Concurrent misses on one key may each run
// compute; the last write wins.
func Memoize[V any](ctx context.Context, m *Memoizer, namespace, input string, ttl time.Duration, compute func(ctx context.Context) (V, error)) (V, error) {
	key := Key(namespace, input)

	if v, ok := lookup[V](ctx, m, key); ok {
		m.metrics.CacheHit(namespace)
		m.logger.Debug(ctx, "cache hit: %s", key)
		return v, nil
	}
	m.metrics.CacheMiss(namespace)

	v, err := compute(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		m.logger.Warn(ctx, "cache encode %s: %v", key, err)
		return v, nil
	}
	if isEmpty(data) {
		return v, nil
	}

	if err := m.store.Set(ctx, key, data, ttl); err != nil {
		m.logger.Warn(ctx, "cache write %s: %v", key, err)
	}
	return v, nil
}

func lookup[V any](ctx context.Context, m *Memoizer, key string) (V, bool) {
	var v V

	data, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.Warn(ctx, "cache read %s: %v", key, err)
		return v, false
	}
	if !ok || isEmpty(data) {
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		m.logger.Warn(ctx, "cache decode %s: %v", key, err)
		var zero V
		return zero, false
	}
	return v, true
}

func isEmpty(data []byte) bool {
	switch string(bytes.TrimSpace(data)) {
	case "", "null", `""`, "[]", "{}":
		return true
	}
	return false
}
