// Package sportmonks reads fixtures, livescores and leagues from SportMonks v3.
package sportmonks

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

const (
	defaultBaseURL        = "https://api.sportmonks.com/v3/football"
	includeFixture        = "participants;scores;venue;state;league;periods"
	includeTeamHistory    = "participants;scores;venue;league"
	fixturesPerPage       = 50
	livescoresPerPage     = 100
	leaguesPerPage        = 100
	regulationTimeMinutes = 90
)

type ClientConfig struct {
	BaseURL   string
	Token     string
	Transport *upstream.Client
}

type Client struct {
	baseURL   string
	token     string
	transport *upstream.Client
	statuses  match.StatusTable
	now       func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	token := strings.TrimSpace(cfg.Token)
	transport := cfg.Transport
	if transport == nil {
		transport = upstream.New(upstream.Config{Name: source.SportMonks.String(), Secrets: []string{token}})
	}
	return &Client{
		baseURL:   baseURL,
		token:     token,
		transport: transport,
		statuses:  match.SportMonksStates(),
		now:       time.Now,
	}
}

// FixturesByDate lists the fixtures of day (YYYY-MM-DD). A positive leagueID
// restricts them to that league.
func (c *Client) FixturesByDate(ctx context.Context, day string, leagueID int64) ([]match.Match, error) {
	query := map[string]string{
		"include":  includeFixture,
		"per_page": strconv.Itoa(fixturesPerPage),
	}
	if leagueID > 0 {
		query["filters"] = "fixtureLeagues:" + strconv.FormatInt(leagueID, 10)
	}

	var payload fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures/date/"+url.PathEscape(day), query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch sportmonks fixtures date=%s league_id=%d", day, leagueID)
	}
	return c.mapFixtures(payload.Data), nil
}

// Livescores lists the fixtures currently in play.
func (c *Client) Livescores(ctx context.Context) ([]match.Match, error) {
	query := map[string]string{
		"include":  includeFixture,
		"per_page": strconv.Itoa(livescoresPerPage),
	}

	var payload fixturesEnvelope
	if err := c.doJSON(ctx, "/livescores/inplay", query, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch sportmonks livescores")
	}
	return c.mapFixtures(payload.Data), nil
}

// TeamFixtures lists the fixtures of teamID between two days, newest first,
// with Result set from the team's side.
func (c *Client) TeamFixtures(ctx context.Context, teamID int64, from, to string, page int) (match.Page, error) {
	if teamID <= 0 {
		return match.Page{}, crerr.New("team id must be greater than zero")
	}
	page = max(page, 1)
	query := map[string]string{
		"include":  includeTeamHistory,
		"per_page": strconv.Itoa(fixturesPerPage),
		"page":     strconv.Itoa(page),
		"order":    "desc",
	}
	path := "/fixtures/between/" + url.PathEscape(from) + "/" + url.PathEscape(to) + "/teams/" + strconv.FormatInt(teamID, 10)

	var payload fixturesEnvelope
	if err := c.doJSON(ctx, path, query, &payload); err != nil {
		return match.Page{}, crerr.Wrapf(err, "fetch sportmonks team fixtures team_id=%d", teamID)
	}

	teamKey := strconv.FormatInt(teamID, 10)
	matches := c.mapFixtures(payload.Data)
	for i := range matches {
		matches[i].Result = matches[i].ResultFor(teamKey)
	}
	slices.SortStableFunc(matches, newestFirst)

	return match.Page{Matches: matches, HasMore: payload.Pagination.HasMore, Page: page}, nil
}

// Leagues lists the leagues available to the configured subscription.
func (c *Client) Leagues(ctx context.Context) ([]competition.ProviderLeague, error) {
	query := map[string]string{
		"per_page": strconv.Itoa(leaguesPerPage),
		"select":   "id,name,short_code,image_path,country_id",
	}

	var payload struct {
		Data []leagueItem `json:"data"`
	}
	if err := c.doJSON(ctx, "/leagues", query, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch sportmonks leagues")
	}

	out := make([]competition.ProviderLeague, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, competition.ProviderLeague{
			ID:        item.ID,
			Name:      strings.TrimSpace(item.Name),
			ShortCode: strings.TrimSpace(item.ShortCode),
			Logo:      strings.TrimSpace(item.ImagePath),
			CountryID: item.CountryID,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.token == "" {
		return upstream.ErrSourceDisabled
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", c.token)

	return c.transport.GetJSON(ctx, c.baseURL+path+"?"+values.Encode(), nil, target)
}

func (c *Client) mapFixtures(items []fixtureItem) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, c.mapFixture(item))
	}
	return out
}

func (c *Client) mapFixture(item fixtureItem) match.Match {
	home, away := resolveParticipants(item.Participants)
	status := c.statuses.FromCode(item.StateID)

	out := match.Match{
		ID:      source.SportMonks.ID(strconv.FormatInt(item.ID, 10)),
		Source:  source.SportMonks,
		Kickoff: upstream.ParseTime(item.StartingAt),
		Status:  status,
		Competition: match.CompetitionRef{
			ID:   source.SportMonks.ID(upstream.IDString(item.LeagueID)),
			Name: upstream.OptString(item.League.Data.Name),
		},
		HomeTeam: mapParticipant(home),
		AwayTeam: mapParticipant(away),
		Score:    resolveScores(item.Scores),
	}
	if status.IsLive() {
		out.Minute = c.liveMinute(item)
	}
	if item.Venue.Set && strings.TrimSpace(item.Venue.Data.Name) != "" {
		out.Venue = &match.Venue{
			Name: strings.TrimSpace(item.Venue.Data.Name),
			City: strings.TrimSpace(item.Venue.Data.CityName),
		}
	}
	return out
}

// liveMinute prefers the provider's minute and otherwise derives it from the
// ticking period, capped at regulation time.
func (c *Client) liveMinute(item fixtureItem) *int {
	if item.Minute != nil {
		return item.Minute
	}
	if len(item.Periods) == 0 {
		return nil
	}
	last := item.Periods[len(item.Periods)-1]
	if !last.Ticking || last.Started <= 0 {
		return nil
	}
	elapsed := int(c.now().Unix()-last.Started) / 60
	if last.SortOrder != 1 {
		elapsed += 45
	}
	minute := min(max(elapsed, 0), regulationTimeMinutes)
	return &minute
}

func resolveParticipants(participants []participantItem) (*participantItem, *participantItem) {
	var home, away *participantItem
	for i := range participants {
		switch strings.ToLower(strings.TrimSpace(participants[i].Meta.Location)) {
		case "home":
			home = &participants[i]
		case "away":
			away = &participants[i]
		}
	}
	return home, away
}

func mapParticipant(item *participantItem) match.TeamRef {
	if item == nil {
		return match.TeamRef{}
	}
	name := strings.TrimSpace(item.Name)
	shortCode := strings.TrimSpace(item.ShortCode)
	ref := match.TeamRef{
		ID:        upstream.IDString(item.ID),
		Name:      upstream.OptString(name),
		ShortName: shortCode,
		TLA:       shortCode,
		Crest:     strings.TrimSpace(item.ImagePath),
	}
	if ref.ShortName == "" {
		ref.ShortName = name
	}
	if ref.TLA == "" {
		ref.TLA = tlaFromName(name)
	}
	return ref
}

func tlaFromName(name string) string {
	runes := []rune(strings.ToUpper(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// resolveScores reads the full-time score from the CURRENT, 2ND_HALF or
// AFTER_PENS rows and the half-time score from 1ST_HALF.
func resolveScores(scores []scoreItem) match.Score {
	var out match.Score
	var halfTime match.ScorePair
	for _, item := range scores {
		goals := item.Score.Goals
		if goals == nil {
			continue
		}
		side := strings.ToLower(strings.TrimSpace(item.Score.Participant))
		switch strings.ToUpper(strings.TrimSpace(item.Description)) {
		case "CURRENT", "2ND_HALF", "AFTER_PENS":
			assignSide(&out.Home, &out.Away, side, goals)
		case "1ST_HALF":
			assignSide(&halfTime.Home, &halfTime.Away, side, goals)
		}
	}
	if halfTime.Home != nil || halfTime.Away != nil {
		out.HalfTime = &halfTime
	}
	return out.DeriveWinner()
}

func assignSide(home, away **int, side string, goals *int) {
	value := *goals
	switch side {
	case "home":
		*home = &value
	case "away":
		*away = &value
	}
}

func newestFirst(a, b match.Match) int {
	switch {
	case a.Kickoff == nil && b.Kickoff == nil:
		return 0
	case a.Kickoff == nil:
		return 1
	case b.Kickoff == nil:
		return -1
	default:
		return b.Kickoff.Compare(*a.Kickoff)
	}
}
