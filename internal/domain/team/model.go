package team

import "github.com/riskibarqy/grounder-api/internal/domain/source"

// Team is a club as reported by one source.
type Team struct {
	ID        string     `json:"id"`
	Source    source.Tag `json:"source"`
	Name      *string    `json:"name"`
	ShortName string     `json:"shortName,omitempty"`
	Badge     string     `json:"badge,omitempty"`
	Country   string     `json:"country,omitempty"`
	League    string     `json:"league,omitempty"`
	Stadium   string     `json:"stadium,omitempty"`
}

func (t Team) RecordSource() source.Tag { return t.Source }
func (t Team) RecordName() *string      { return t.Name }
func (t Team) RecordCountry() string    { return t.Country }
func (t Team) RecordType() string       { return "" }
