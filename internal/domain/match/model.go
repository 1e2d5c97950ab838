package match

import (
	"strings"
	"time"

	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

type Winner string

const (
	WinnerHome Winner = "HOME_TEAM"
	WinnerAway Winner = "AWAY_TEAM"
	WinnerDraw Winner = "DRAW"
)

// Result is a finished match seen from one team's side.
type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultDraw Result = "D"
)

type CompetitionRef struct {
	ID      string  `json:"id,omitempty"`
	Name    *string `json:"name"`
	Country string  `json:"country,omitempty"`
}

type TeamRef struct {
	ID        string  `json:"id,omitempty"`
	Name      *string `json:"name"`
	ShortName string  `json:"shortName,omitempty"`
	TLA       string  `json:"tla,omitempty"`
	Crest     string  `json:"crest,omitempty"`
}

// DisplayName returns the team name or "" when the source did not report one.
func (t TeamRef) DisplayName() string {
	if t.Name == nil {
		return ""
	}
	return *t.Name
}

type ScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Score carries the full-time score in Home/Away.
type Score struct {
	Home     *int       `json:"home"`
	Away     *int       `json:"away"`
	HalfTime *ScorePair `json:"halfTime,omitempty"`
	Winner   Winner     `json:"winner,omitempty"`
}

// Known reports whether at least one side of the full-time score is present.
func (s Score) Known() bool {
	return s.Home != nil || s.Away != nil
}

// DeriveWinner fills Winner when both full-time goals are present.
func (s Score) DeriveWinner() Score {
	if s.Home == nil || s.Away == nil {
		return s
	}
	switch {
	case *s.Home > *s.Away:
		s.Winner = WinnerHome
	case *s.Away > *s.Home:
		s.Winner = WinnerAway
	default:
		s.Winner = WinnerDraw
	}
	return s
}

type Venue struct {
	Name string `json:"name,omitempty"`
	City string `json:"city,omitempty"`
}

// Match is a fixture as reported by one source.
type Match struct {
	ID          string         `json:"id"`
	Source      source.Tag     `json:"source"`
	Kickoff     *time.Time     `json:"utcDate"`
	Status      Status         `json:"status"`
	Minute      *int           `json:"minute,omitempty"`
	Competition CompetitionRef `json:"competition"`
	HomeTeam    TeamRef        `json:"homeTeam"`
	AwayTeam    TeamRef        `json:"awayTeam"`
	Score       Score          `json:"score"`
	Venue       *Venue         `json:"venue,omitempty"`
	Result      Result         `json:"result,omitempty"`
}

// Day is the UTC calendar day of kickoff as YYYY-MM-DD, or "" when unknown.
func (m Match) Day() string {
	if m.Kickoff == nil || m.Kickoff.IsZero() {
		return ""
	}
	return m.Kickoff.UTC().Format(time.DateOnly)
}

// IdentityKey is day|home|away with team names lower-cased and trimmed.
// Two records with the same key denote the same real-world fixture.
func (m Match) IdentityKey() string {
	return m.Day() + "|" +
		strings.ToLower(strings.TrimSpace(m.HomeTeam.DisplayName())) + "|" +
		strings.ToLower(strings.TrimSpace(m.AwayTeam.DisplayName()))
}

// ResultFor returns W/L/D from the side of teamID, or "" when the match has
// no complete score or teamID played neither side.
func (m Match) ResultFor(teamID string) Result {
	if teamID == "" || m.Score.Home == nil || m.Score.Away == nil {
		return ""
	}
	goalsFor, goalsAgainst := *m.Score.Home, *m.Score.Away
	switch teamID {
	case m.HomeTeam.ID:
	case m.AwayTeam.ID:
		goalsFor, goalsAgainst = goalsAgainst, goalsFor
	default:
		return ""
	}
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// FillGaps copies fields that m lacks from other. m always keeps its own id,
// source and any value it already has.
func (m Match) FillGaps(other Match) Match {
	if m.Kickoff == nil {
		m.Kickoff = other.Kickoff
	}
	if m.Minute == nil {
		m.Minute = other.Minute
	}
	if m.Competition.Name == nil {
		m.Competition.Name = other.Competition.Name
	}
	if m.Competition.Country == "" {
		m.Competition.Country = other.Competition.Country
	}
	m.HomeTeam = fillTeam(m.HomeTeam, other.HomeTeam)
	m.AwayTeam = fillTeam(m.AwayTeam, other.AwayTeam)
	if !m.Score.Known() && other.Score.Known() {
		m.Score.Home, m.Score.Away, m.Score.Winner = other.Score.Home, other.Score.Away, other.Score.Winner
	}
	if m.Score.HalfTime == nil {
		m.Score.HalfTime = other.Score.HalfTime
	}
	if m.Venue == nil || m.Venue.Name == "" {
		if other.Venue != nil && other.Venue.Name != "" {
			m.Venue = other.Venue
		}
	}
	return m
}

func fillTeam(dst, src TeamRef) TeamRef {
	if dst.Name == nil {
		dst.Name = src.Name
	}
	if dst.ShortName == "" {
		dst.ShortName = src.ShortName
	}
	if dst.TLA == "" {
		dst.TLA = src.TLA
	}
	if dst.Crest == "" {
		dst.Crest = src.Crest
	}
	return dst
}

func (m Match) RecordSource() source.Tag { return m.Source }
func (m Match) RecordCountry() string    { return m.Competition.Country }
func (m Match) RecordType() string       { return "" }

// RecordName is "Home vs Away", or nil when neither side is named.
func (m Match) RecordName() *string {
	home, away := m.HomeTeam.DisplayName(), m.AwayTeam.DisplayName()
	if home == "" && away == "" {
		return nil
	}
	name := home + " vs " + away
	return &name
}
