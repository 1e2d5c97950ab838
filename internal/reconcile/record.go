// Package reconcile merges same-kind records reported by several sources
// into one deduplicated, filtered and sorted list.
package reconcile

import "github.com/riskibarqy/grounder-api/internal/domain/source"

// Record is the view of a domain record the reconciler needs.
type Record interface {
	RecordSource() source.Tag
	RecordName() *string
	RecordCountry() string
	RecordType() string
}

// Batch is the outcome of one source fetch. A batch with Err set contributes
// no records.
type Batch[T Record] struct {
	Source  source.Tag
	Records []T
	Err     error
}

// Settled builds a batch from a fetch result.
func Settled[T Record](tag source.Tag, records []T, err error) Batch[T] {
	if err != nil {
		return Batch[T]{Source: tag, Err: err}
	}
	return Batch[T]{Source: tag, Records: records}
}

func nameOf[T Record](rec T) string {
	if name := rec.RecordName(); name != nil {
		return *name
	}
	return ""
}
