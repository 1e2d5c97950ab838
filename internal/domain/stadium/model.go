package stadium

import "github.com/riskibarqy/grounder-api/internal/domain/source"

// Stadium is a football ground with coordinates.
type Stadium struct {
	ID       string     `json:"id"`
	Source   source.Tag `json:"source"`
	Name     *string    `json:"name"`
	Capacity *int       `json:"capacity"`
	Lat      *float64   `json:"lat"`
	Lon      *float64   `json:"lon"`
	Country  string     `json:"country,omitempty"`
}

func (s Stadium) RecordSource() source.Tag { return s.Source }
func (s Stadium) RecordName() *string      { return s.Name }
func (s Stadium) RecordCountry() string    { return s.Country }
func (s Stadium) RecordType() string       { return "" }
