// Package source names the upstream providers a record can come from.
package source

import "strings"

// Tag identifies the provider a record was fetched from.
type Tag string

const (
	FootballData Tag = "football-data"
	TheSportsDB  Tag = "thesportsdb"
	SportMonks   Tag = "sportmonks"
	Wikidata     Tag = "wikidata"
	Catalog      Tag = "catalog"
	OpenFootball Tag = "openfootball"
)

func (t Tag) String() string {
	return string(t)
}

// CountKey is the key used for this source in per-source count maps.
func (t Tag) CountKey() string {
	switch t {
	case FootballData:
		return "footballData"
	case TheSportsDB:
		return "theSportsDB"
	case SportMonks:
		return "sportmonks"
	case Wikidata:
		return "wikidata"
	case Catalog:
		return "catalog"
	case OpenFootball:
		return "openFootball"
	default:
		return string(t)
	}
}

// IDPrefix is prepended to provider ids so ids from different sources never collide.
func (t Tag) IDPrefix() string {
	switch t {
	case FootballData:
		return "FD"
	case TheSportsDB:
		return "TSDB"
	case SportMonks:
		return "SM"
	case Wikidata:
		return "WD"
	case Catalog:
		return "CAT"
	case OpenFootball:
		return "OF"
	default:
		return strings.ToUpper(string(t))
	}
}

// ID builds a source-prefixed identifier such as "FD:2015".
func (t Tag) ID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return t.IDPrefix() + ":" + raw
}

// Parse accepts the canonical tag or its count key, case-insensitively.
func Parse(raw string) (Tag, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, tag := range []Tag{FootballData, TheSportsDB, SportMonks, Wikidata, Catalog, OpenFootball} {
		if value == string(tag) || value == strings.ToLower(tag.CountKey()) {
			return tag, true
		}
	}
	return "", false
}
