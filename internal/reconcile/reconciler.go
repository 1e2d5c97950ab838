package reconcile

import (
	"context"
	"slices"

	"github.com/riskibarqy/grounder-api/internal/platform/logging"
)

// Reconciler merges ordered batches. Earlier batches win identity ties unless
// the preference says otherwise. It holds no per-run state and is safe for
// concurrent use.
type Reconciler[T Record] struct {
	identity Identity[T]
	prefer   Preference[T]
	merge    MergeFunc[T]
	compare  CompareFunc[T]
	logger   *logging.Logger
}

// New creates a Reconciler. Defaults: competition name identity, first seen
// wins, sorted by name.
func New[T Record](opts ...Option[T]) (*Reconciler[T], error) {
	o, err := defaultOptions[T]().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler[T]{
		identity: o.identity,
		prefer:   o.prefer,
		merge:    o.merge,
		compare:  o.compare,
		logger:   o.logger.Named("reconcile"),
	}, nil
}

// Run merges batches in order, then applies filters, sort and limit.
func (r *Reconciler[T]) Run(ctx context.Context, batches []Batch[T], filters Filters) Result[T] {
	merged := r.mergeBatches(ctx, batches)
	out := filterRecords(filters, merged)
	if r.compare != nil {
		slices.SortStableFunc(out, r.compare)
	}
	out = truncate(filters, out)

	return Result[T]{
		Records: out,
		Reports: report(batches, out),
	}
}

func (r *Reconciler[T]) mergeBatches(ctx context.Context, batches []Batch[T]) []T {
	total := 0
	for _, batch := range batches {
		total += len(batch.Records)
	}
	merged := make([]T, 0, total)
	index := r.identity.NewIndex()

	for rank, batch := range batches {
		if batch.Err != nil {
			r.logger.WarnContext(ctx, "source degraded", "source", batch.Source.String(), "error", batch.Err)
			continue
		}
		for _, rec := range batch.Records {
			slot, found := index.Find(rec, rank)
			if !found {
				index.Add(rec, rank, len(merged))
				merged = append(merged, rec)
				continue
			}
			kept := merged[slot]
			if r.prefer(kept, rec) {
				if r.merge != nil {
					merged[slot] = r.merge(rec, kept)
				} else {
					merged[slot] = rec
				}
				continue
			}
			if r.merge != nil {
				merged[slot] = r.merge(kept, rec)
			}
		}
	}
	return merged
}
