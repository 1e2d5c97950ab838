// Package thesportsdb reads leagues, teams and events from TheSportsDB v1.
package thesportsdb

import (
	"context"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/domain/team"
)

const (
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	// PublicKey is the shared development key TheSportsDB documents.
	PublicKey = "1"
	// teamIDPrefix keeps team ids apart from league and event ids.
	teamIDPrefix = "TSDBTEAM:"
	sportSoccer  = "soccer"
)

type ClientConfig struct {
	BaseURL   string
	APIKey    string
	Transport *upstream.Client
}

type Client struct {
	baseURL   string
	transport *upstream.Client
	statuses  match.StatusTable
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = PublicKey
	}
	transport := cfg.Transport
	if transport == nil {
		transport = upstream.New(upstream.Config{Name: source.TheSportsDB.String(), Secrets: []string{Secret(key)}})
	}
	return &Client{
		baseURL:   baseURL + "/" + url.PathEscape(key),
		transport: transport,
		statuses:  match.TheSportsDBText(),
	}
}

// Secret returns key when it needs masking in logs. The public key is not a secret.
func Secret(key string) string {
	key = strings.TrimSpace(key)
	if key == PublicKey {
		return ""
	}
	return key
}

// AllLeagues lists every soccer league TheSportsDB knows, without country.
func (c *Client) AllLeagues(ctx context.Context) ([]competition.Competition, error) {
	var payload struct {
		Leagues []leagueItem `json:"leagues"`
	}
	if err := c.get(ctx, "all_leagues.php", nil, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch thesportsdb leagues")
	}

	out := make([]competition.Competition, 0, len(payload.Leagues))
	for _, item := range payload.Leagues {
		if !isSoccer(item.Sport) {
			continue
		}
		out = append(out, item.toCompetition(""))
	}
	return out, nil
}

// Countries lists the country names usable with LeaguesByCountry.
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	var payload struct {
		Countries []struct {
			Name string `json:"name_en"`
			Alt  string `json:"name"`
		} `json:"countries"`
	}
	if err := c.get(ctx, "all_countries.php", nil, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch thesportsdb countries")
	}

	out := make([]string, 0, len(payload.Countries))
	for _, item := range payload.Countries {
		if name := firstNonEmpty(item.Name, item.Alt); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// LeaguesByCountry lists the soccer leagues of one country.
func (c *Client) LeaguesByCountry(ctx context.Context, country string) ([]competition.Competition, error) {
	query := url.Values{}
	query.Set("c", country)
	query.Set("s", "Soccer")

	var payload countrysEnvelope
	if err := c.get(ctx, "search_all_leagues.php", query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch thesportsdb leagues country=%s", country)
	}

	out := make([]competition.Competition, 0, len(payload.Leagues))
	for _, item := range payload.Leagues {
		rec := item.toCompetition(country)
		rec.Type = competition.TypeLeague
		out = append(out, rec)
	}
	return out, nil
}

// SearchLeagues finds soccer leagues by name.
func (c *Client) SearchLeagues(ctx context.Context, name string) ([]competition.Competition, error) {
	query := url.Values{}
	query.Set("l", name)

	var payload countrysEnvelope
	if err := c.get(ctx, "search_all_leagues.php", query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "search thesportsdb leagues q=%s", name)
	}

	out := make([]competition.Competition, 0, len(payload.Leagues))
	for _, item := range payload.Leagues {
		if !isSoccer(item.Sport) {
			continue
		}
		out = append(out, item.toCompetition(""))
	}
	return out, nil
}

// EventsByDay lists the soccer events of day (YYYY-MM-DD).
func (c *Client) EventsByDay(ctx context.Context, day string) ([]match.Match, error) {
	query := url.Values{}
	query.Set("d", day)
	query.Set("s", "Soccer")

	var payload struct {
		Events []eventItem `json:"events"`
	}
	if err := c.get(ctx, "eventsday.php", query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch thesportsdb events date=%s", day)
	}

	out := make([]match.Match, 0, len(payload.Events))
	for _, item := range payload.Events {
		out = append(out, c.mapEvent(item))
	}
	return out, nil
}

// TeamsByLeague lists the teams of a league.
func (c *Client) TeamsByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query := url.Values{}
	query.Set("id", leagueID)

	var payload teamsEnvelope
	if err := c.get(ctx, "lookup_all_teams.php", query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch thesportsdb teams league=%s", leagueID)
	}
	return mapTeams(payload.Teams), nil
}

// LookupTeam returns one team with its badge and stadium. ok is false when the
// id is unknown.
func (c *Client) LookupTeam(ctx context.Context, teamID string) (team.Team, bool, error) {
	query := url.Values{}
	query.Set("id", teamID)

	var payload teamsEnvelope
	if err := c.get(ctx, "lookupteam.php", query, &payload); err != nil {
		return team.Team{}, false, crerr.Wrapf(err, "lookup thesportsdb team=%s", teamID)
	}
	if len(payload.Teams) == 0 {
		return team.Team{}, false, nil
	}
	return payload.Teams[0].toTeam(), true, nil
}

// SearchTeams finds teams by name.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]team.Team, error) {
	query := url.Values{}
	query.Set("t", name)

	var payload teamsEnvelope
	if err := c.get(ctx, "searchteams.php", query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "search thesportsdb teams q=%s", name)
	}
	return mapTeams(payload.Teams), nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, target any) error {
	fullURL := c.baseURL + "/" + endpoint
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return c.transport.GetJSON(ctx, fullURL, nil, target)
}

func (c *Client) mapEvent(item eventItem) match.Match {
	out := match.Match{
		ID:      source.TheSportsDB.ID(item.ID),
		Source:  source.TheSportsDB,
		Kickoff: eventKickoff(item),
		Status:  c.statuses.FromText(item.Status),
		Competition: match.CompetitionRef{
			ID:      source.TheSportsDB.ID(item.LeagueID),
			Name:    upstream.OptString(item.League),
			Country: strings.TrimSpace(item.Country),
		},
		HomeTeam: match.TeamRef{
			ID:        strings.TrimSpace(item.HomeTeamID),
			Name:      upstream.OptString(item.HomeTeam),
			ShortName: strings.TrimSpace(item.HomeTeam),
			Crest:     strings.TrimSpace(item.HomeBadge),
		},
		AwayTeam: match.TeamRef{
			ID:        strings.TrimSpace(item.AwayTeamID),
			Name:      upstream.OptString(item.AwayTeam),
			ShortName: strings.TrimSpace(item.AwayTeam),
			Crest:     strings.TrimSpace(item.AwayBadge),
		},
		Score: match.Score{
			Home: upstream.OptInt(item.HomeScore),
			Away: upstream.OptInt(item.AwayScore),
		}.DeriveWinner(),
	}
	if venue := strings.TrimSpace(item.Venue); venue != "" {
		out.Venue = &match.Venue{Name: venue, City: strings.TrimSpace(item.City)}
	}
	return out
}

// eventKickoff joins dateEvent and strTime, padding HH:MM to HH:MM:SS. The
// provider reports both in UTC.
func eventKickoff(item eventItem) *time.Time {
	day := strings.TrimSpace(item.Date)
	clock := strings.TrimSpace(item.Time)
	if day == "" || clock == "" {
		return nil
	}
	if len(clock) == len("15:04") {
		clock += ":00"
	}
	if idx := strings.IndexAny(clock, "+Z"); idx > 0 {
		clock = clock[:idx]
	}
	return upstream.ParseTime(day + "T" + clock + "Z")
}

func mapTeams(items []teamItem) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, item.toTeam())
	}
	return out
}

func isSoccer(sport string) bool {
	return strings.EqualFold(strings.TrimSpace(sport), sportSoccer)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

type countrysEnvelope struct {
	// The provider really spells it "countrys".
	Leagues []leagueItem `json:"countrys"`
}

type leagueItem struct {
	ID      string `json:"idLeague"`
	League  string `json:"strLeague"`
	Sport   string `json:"strSport"`
	Country string `json:"strCountry"`
	Badge   string `json:"strBadge"`
}

func (l leagueItem) toCompetition(fallbackCountry string) competition.Competition {
	return competition.Competition{
		ID:      source.TheSportsDB.ID(l.ID),
		Source:  source.TheSportsDB,
		Name:    upstream.OptString(l.League),
		Type:    competition.TypeFromName(l.League),
		Country: firstNonEmpty(l.Country, fallbackCountry),
		Emblem:  strings.TrimSpace(l.Badge),
	}
}

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID        string `json:"idTeam"`
	Name      string `json:"strTeam"`
	ShortName string `json:"strTeamShort"`
	Badge     string `json:"strTeamBadge"`
	Badge2    string `json:"strBadge"`
	Country   string `json:"strCountry"`
	League    string `json:"strLeague"`
	Stadium   string `json:"strStadium"`
}

func (t teamItem) toTeam() team.Team {
	return team.Team{
		ID:        teamIDPrefix + strings.TrimSpace(t.ID),
		Source:    source.TheSportsDB,
		Name:      upstream.OptString(t.Name),
		ShortName: firstNonEmpty(t.ShortName, t.Name),
		Badge:     firstNonEmpty(t.Badge, t.Badge2),
		Country:   strings.TrimSpace(t.Country),
		League:    strings.TrimSpace(t.League),
		Stadium:   strings.TrimSpace(t.Stadium),
	}
}

type eventItem struct {
	ID         string `json:"idEvent"`
	Date       string `json:"dateEvent"`
	Time       string `json:"strTime"`
	Status     string `json:"strStatus"`
	LeagueID   string `json:"idLeague"`
	League     string `json:"strLeague"`
	Country    string `json:"strCountry"`
	HomeTeamID string `json:"idHomeTeam"`
	HomeTeam   string `json:"strHomeTeam"`
	HomeBadge  string `json:"strHomeTeamBadge"`
	AwayTeamID string `json:"idAwayTeam"`
	AwayTeam   string `json:"strAwayTeam"`
	AwayBadge  string `json:"strAwayTeamBadge"`
	HomeScore  string `json:"intHomeScore"`
	AwayScore  string `json:"intAwayScore"`
	Venue      string `json:"strVenue"`
	City       string `json:"strCity"`
}
