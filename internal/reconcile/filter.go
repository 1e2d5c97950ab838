package reconcile

import "strings"

// Filters narrow the merged list. Empty fields and a non-positive Limit are ignored.
type Filters struct {
	// Country is a case-insensitive substring of the record country.
	Country string
	// Type must equal the record type, compared upper-cased.
	Type string
	// Text is a case-insensitive substring of the record name.
	Text  string
	Limit int
}

func filterRecords[T Record](f Filters, records []T) []T {
	country := strings.ToLower(strings.TrimSpace(f.Country))
	kind := strings.ToUpper(strings.TrimSpace(f.Type))
	text := strings.ToLower(strings.TrimSpace(f.Text))
	if country == "" && kind == "" && text == "" {
		return records
	}

	out := records[:0]
	for _, rec := range records {
		if country != "" && !strings.Contains(strings.ToLower(rec.RecordCountry()), country) {
			continue
		}
		if kind != "" && strings.ToUpper(rec.RecordType()) != kind {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(nameOf(rec)), text) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func truncate[T Record](f Filters, records []T) []T {
	if f.Limit > 0 && len(records) > f.Limit {
		return records[:f.Limit]
	}
	return records
}
