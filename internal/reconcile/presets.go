package reconcile

import (
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
)

// PreferCompleteMatch replaces a kept match that lacks a score, or a kickoff,
// with a duplicate that has one.
func PreferCompleteMatch(kept, incoming match.Match) bool {
	if !kept.Score.Known() && incoming.Score.Known() {
		return true
	}
	return kept.Kickoff == nil && incoming.Kickoff != nil
}

// ByKickoff orders matches by kickoff time; unknown kickoffs come first.
func ByKickoff(a, b match.Match) int {
	switch {
	case a.Kickoff == nil && b.Kickoff == nil:
		return 0
	case a.Kickoff == nil:
		return -1
	case b.Kickoff == nil:
		return 1
	default:
		return a.Kickoff.Compare(*b.Kickoff)
	}
}

// MatchIdentity keys matches on kickoff day and both team names.
func MatchIdentity() KeyIdentity[match.Match] {
	return KeyIdentity[match.Match]{Key: match.Match.IdentityKey}
}

// Matches builds a match reconciler sorted by kickoff. fieldMerge fills the
// winner's missing fields from its duplicates.
func Matches(fieldMerge bool, opts ...Option[match.Match]) (*Reconciler[match.Match], error) {
	base := []Option[match.Match]{
		WithIdentity[match.Match](MatchIdentity()),
		WithPreference[match.Match](PreferCompleteMatch),
		WithSort[match.Match](ByKickoff),
	}
	if fieldMerge {
		base = append(base, WithMerge[match.Match](match.Match.FillGaps))
	}
	return New(append(base, opts...)...)
}

// Competitions builds a competition reconciler using name containment against
// higher-priority sources, sorted by name.
func Competitions(opts ...Option[competition.Competition]) (*Reconciler[competition.Competition], error) {
	base := []Option[competition.Competition]{
		WithIdentity[competition.Competition](CompetitionNames[competition.Competition]()),
		WithSort[competition.Competition](ByName[competition.Competition]),
	}
	return New(append(base, opts...)...)
}

// LeagueKey is lower(country)|lower(name).
func LeagueKey(c competition.Competition) string {
	return strings.ToLower(strings.TrimSpace(c.Country)) + "|" + strings.ToLower(strings.TrimSpace(nameOf(c)))
}

// Leagues builds a league reconciler keyed on country and exact name.
func Leagues(opts ...Option[competition.Competition]) (*Reconciler[competition.Competition], error) {
	base := []Option[competition.Competition]{
		WithIdentity[competition.Competition](KeyIdentity[competition.Competition]{Key: LeagueKey}),
		WithSort[competition.Competition](ByName[competition.Competition]),
	}
	return New(append(base, opts...)...)
}
