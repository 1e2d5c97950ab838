// Package footballdata reads competitions and matches from football-data.org v4.
package footballdata

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
)

const defaultBaseURL = "https://api.football-data.org/v4"

type ClientConfig struct {
	BaseURL   string
	APIKey    string
	Transport *upstream.Client
}

type Client struct {
	baseURL   string
	apiKey    string
	transport *upstream.Client
	statuses  match.StatusTable
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	transport := cfg.Transport
	if transport == nil {
		transport = upstream.New(upstream.Config{Name: source.FootballData.String(), Secrets: []string{cfg.APIKey}})
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    strings.TrimSpace(cfg.APIKey),
		transport: transport,
		statuses:  match.FootballDataLabels(),
	}
}

// Competitions lists every competition visible to the configured key.
func (c *Client) Competitions(ctx context.Context) ([]competition.Competition, error) {
	var payload competitionsEnvelope
	if err := c.get(ctx, "/competitions", nil, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch football-data competitions")
	}

	out := make([]competition.Competition, 0, len(payload.Competitions))
	for _, item := range payload.Competitions {
		out = append(out, competition.Competition{
			ID:          source.FootballData.ID(strconv.FormatInt(item.ID, 10)),
			Source:      source.FootballData,
			Name:        upstream.OptString(item.Name),
			Code:        strings.TrimSpace(item.Code),
			Type:        competition.ParseType(item.Type),
			Country:     strings.TrimSpace(item.Area.Name),
			CountryCode: strings.TrimSpace(item.Area.Code),
			Emblem:      strings.TrimSpace(item.Emblem),
			SeasonStart: item.CurrentSeason.StartDate,
			SeasonEnd:   item.CurrentSeason.EndDate,
			ProviderID:  item.ID,
		})
	}
	return out, nil
}

// Matches lists the matches played on day (YYYY-MM-DD).
func (c *Client) Matches(ctx context.Context, day string) ([]match.Match, error) {
	query := url.Values{}
	query.Set("dateFrom", day)
	query.Set("dateTo", day)

	var payload matchesEnvelope
	if err := c.get(ctx, "/matches", query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch football-data matches date=%s", day)
	}

	out := make([]match.Match, 0, len(payload.Matches))
	for _, item := range payload.Matches {
		out = append(out, c.mapMatch(item))
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	if c.apiKey == "" {
		return upstream.ErrSourceDisabled
	}
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	header := http.Header{}
	header.Set("X-Auth-Token", c.apiKey)
	return c.transport.GetJSON(ctx, fullURL, header, target)
}

func (c *Client) mapMatch(item matchItem) match.Match {
	score := match.Score{
		Home:   item.Score.FullTime.Home,
		Away:   item.Score.FullTime.Away,
		Winner: match.Winner(strings.TrimSpace(item.Score.Winner)),
	}
	if item.Score.HalfTime.Home != nil || item.Score.HalfTime.Away != nil {
		score.HalfTime = &match.ScorePair{Home: item.Score.HalfTime.Home, Away: item.Score.HalfTime.Away}
	}
	if score.Winner == "" {
		score = score.DeriveWinner()
	}

	out := match.Match{
		ID:      source.FootballData.ID(strconv.FormatInt(item.ID, 10)),
		Source:  source.FootballData,
		Kickoff: upstream.ParseTime(item.UTCDate),
		Status:  c.statuses.FromText(item.Status),
		Minute:  item.Minute,
		Competition: match.CompetitionRef{
			ID:      source.FootballData.ID(upstream.IDString(item.Competition.ID)),
			Name:    upstream.OptString(item.Competition.Name),
			Country: strings.TrimSpace(item.Area.Name),
		},
		HomeTeam: mapTeam(item.HomeTeam),
		AwayTeam: mapTeam(item.AwayTeam),
		Score:    score,
	}
	if venue := strings.TrimSpace(item.Venue); venue != "" {
		out.Venue = &match.Venue{Name: venue}
	}
	return out
}

func mapTeam(item teamItem) match.TeamRef {
	shortName := firstNonEmpty(item.ShortName, item.TLA, item.Name)
	return match.TeamRef{
		ID:        upstream.IDString(item.ID),
		Name:      upstream.OptString(item.Name),
		ShortName: shortName,
		TLA:       strings.TrimSpace(item.TLA),
		Crest:     strings.TrimSpace(item.Crest),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

type areaItem struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type competitionsEnvelope struct {
	Competitions []competitionItem `json:"competitions"`
}

type competitionItem struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Type          string   `json:"type"`
	Emblem        string   `json:"emblem"`
	Area          areaItem `json:"area"`
	CurrentSeason struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"currentSeason"`
}

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID          int64    `json:"id"`
	UTCDate     string   `json:"utcDate"`
	Status      string   `json:"status"`
	Minute      *int     `json:"minute"`
	Venue       string   `json:"venue"`
	Area        areaItem `json:"area"`
	Competition struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"competition"`
	HomeTeam teamItem `json:"homeTeam"`
	AwayTeam teamItem `json:"awayTeam"`
	Score    struct {
		Winner   string    `json:"winner"`
		FullTime scorePair `json:"fullTime"`
		HalfTime scorePair `json:"halfTime"`
	} `json:"score"`
}

type teamItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
