package reconcile

import "github.com/riskibarqy/grounder-api/internal/domain/source"

// Report describes what one batch contributed.
type Report struct {
	Source  source.Tag
	Fetched int
	// Kept counts the batch's records present in the final output.
	Kept int
	Err  error
}

type Result[T Record] struct {
	Records []T
	Reports []Report
}

// Counts maps each source count key to the records it contributed. Failed
// sources report 0.
func (r Result[T]) Counts() map[string]int {
	out := make(map[string]int, len(r.Reports))
	for _, rep := range r.Reports {
		out[rep.Source.CountKey()] += rep.Kept
	}
	return out
}

// FetchedCounts maps each source count key to the records it returned before
// deduplication, filters and limit.
func (r Result[T]) FetchedCounts() map[string]int {
	out := make(map[string]int, len(r.Reports))
	for _, rep := range r.Reports {
		out[rep.Source.CountKey()] += rep.Fetched
	}
	return out
}

// Degraded maps failed sources to their error message, or nil when every
// source answered.
func (r Result[T]) Degraded() map[string]string {
	var out map[string]string
	for _, rep := range r.Reports {
		if rep.Err == nil {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[rep.Source.CountKey()] = rep.Err.Error()
	}
	return out
}

func report[T Record](batches []Batch[T], out []T) []Report {
	kept := make(map[source.Tag]int, len(batches))
	for _, rec := range out {
		kept[rec.RecordSource()]++
	}

	reports := make([]Report, 0, len(batches))
	seen := make(map[source.Tag]bool, len(batches))
	for _, batch := range batches {
		rep := Report{Source: batch.Source, Err: batch.Err}
		if batch.Err == nil {
			rep.Fetched = len(batch.Records)
		}
		if !seen[batch.Source] {
			rep.Kept = kept[batch.Source]
			seen[batch.Source] = true
		}
		reports = append(reports, rep)
	}
	return reports
}
