package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/platform/cache"
	"github.com/riskibarqy/grounder-api/internal/reconcile"
)

// Merged is a list assembled from several sources. Sources maps each source
// count key to the records it contributed and Fetched to the records it
// returned. Degraded lists the sources that failed and is nil when all of
// them answered.
type Merged[T any] struct {
	Items    []T
	Sources  map[string]int
	Fetched  map[string]int
	Degraded map[string]string
}

func mergedFrom[T reconcile.Record](res reconcile.Result[T]) Merged[T] {
	items := res.Records
	if items == nil {
		items = []T{}
	}
	return Merged[T]{
		Items:    items,
		Sources:  res.Counts(),
		Fetched:  res.FetchedCounts(),
		Degraded: res.Degraded(),
	}
}

func singleSource[T any](tag source.Tag, items []T) Merged[T] {
	if items == nil {
		items = []T{}
	}
	counts := map[string]int{tag.CountKey(): len(items)}
	return Merged[T]{
		Items:   items,
		Sources: counts,
		Fetched: counts,
	}
}

// ResponseCache memoizes upstream reads for a fixed TTL. A nil cache loads
// every time.
type ResponseCache = cache.Store[any]

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return cache.NewStore[any](ttl)
}

func cached[V any](ctx context.Context, store *ResponseCache, key string, load func(context.Context) (V, error)) (V, error) {
	if store == nil {
		return load(ctx)
	}

	var zero V
	out, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}
	value, ok := out.(V)
	if !ok {
		return zero, fmt.Errorf("cached value for key=%s has type %T", key, out)
	}
	return value, nil
}

func unavailable(err error, action string) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, action, err)
}

// parseDay validates a YYYY-MM-DD day. An empty value means today in UTC.
func parseDay(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC().Format(time.DateOnly), nil
	}
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return raw, nil
}

func clampLimit(limit, fallback, ceiling int) int {
	if limit <= 0 {
		return fallback
	}
	return min(limit, ceiling)
}

// providerID strips the source prefix from a record id ("TSDB:4328" -> "4328").
func providerID(id string) string {
	id = strings.TrimSpace(id)
	if _, raw, found := strings.Cut(id, ":"); found {
		return strings.TrimSpace(raw)
	}
	return id
}
