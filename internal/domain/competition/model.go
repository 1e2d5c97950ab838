package competition

import (
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

type Type string

const (
	TypeLeague Type = "LEAGUE"
	TypeCup    Type = "CUP"
)

// ParseType upper-cases raw; empty input falls back to LEAGUE.
func ParseType(raw string) Type {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return TypeLeague
	}
	return Type(value)
}

// TypeFromName guesses CUP for names mentioning a cup, LEAGUE otherwise.
func TypeFromName(name string) Type {
	if strings.Contains(strings.ToLower(name), "cup") {
		return TypeCup
	}
	return TypeLeague
}

// Competition is a league or cup as reported by one source.
type Competition struct {
	ID          string     `json:"id"`
	Source      source.Tag `json:"source"`
	Name        *string    `json:"name"`
	Code        string     `json:"code,omitempty"`
	Type        Type       `json:"type,omitempty"`
	Country     string     `json:"country,omitempty"`
	CountryCode string     `json:"countryCode,omitempty"`
	Emblem      string     `json:"emblem,omitempty"`
	SeasonStart string     `json:"seasonStart,omitempty"`
	SeasonEnd   string     `json:"seasonEnd,omitempty"`
	ProviderID  int64      `json:"providerId,omitempty"`
}

func (c Competition) RecordSource() source.Tag { return c.Source }
func (c Competition) RecordName() *string      { return c.Name }
func (c Competition) RecordCountry() string    { return c.Country }
func (c Competition) RecordType() string       { return string(c.Type) }

// ProviderLeague is a league as listed by a subscription provider, keyed by
// the provider's numeric id.
type ProviderLeague struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"shortCode,omitempty"`
	Logo      string `json:"logo,omitempty"`
	CountryID int64  `json:"countryId,omitempty"`
}
