package usecase

import (
	"context"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/crest"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/stadium"
	"github.com/riskibarqy/grounder-api/internal/domain/team"
)

// FootballDataSource is the football-data.org v4 adapter.
type FootballDataSource interface {
	Competitions(ctx context.Context) ([]competition.Competition, error)
	Matches(ctx context.Context, day string) ([]match.Match, error)
}

// TheSportsDBSource is the TheSportsDB v1 adapter. League and team ids are
// the provider's raw ids, without the source prefix.
type TheSportsDBSource interface {
	AllLeagues(ctx context.Context) ([]competition.Competition, error)
	Countries(ctx context.Context) ([]string, error)
	LeaguesByCountry(ctx context.Context, country string) ([]competition.Competition, error)
	SearchLeagues(ctx context.Context, name string) ([]competition.Competition, error)
	EventsByDay(ctx context.Context, day string) ([]match.Match, error)
	TeamsByLeague(ctx context.Context, leagueID string) ([]team.Team, error)
	LookupTeam(ctx context.Context, teamID string) (team.Team, bool, error)
	SearchTeams(ctx context.Context, name string) ([]team.Team, error)
}

// SportMonksSource is the SportMonks v3 adapter. A leagueID of 0 means every
// league of the subscription.
type SportMonksSource interface {
	FixturesByDate(ctx context.Context, day string, leagueID int64) ([]match.Match, error)
	Livescores(ctx context.Context) ([]match.Match, error)
	TeamFixtures(ctx context.Context, teamID int64, from, to string, page int) (match.Page, error)
	Leagues(ctx context.Context) ([]competition.ProviderLeague, error)
}

// WikidataSource runs the competition and stadium SPARQL queries.
type WikidataSource interface {
	Competitions(ctx context.Context, limit, offset int) ([]competition.Competition, error)
	Stadiums(ctx context.Context, limit, offset, minCapacity int) ([]stadium.Stadium, error)
}

// DocumentSource fetches a raw JSON document.
type DocumentSource interface {
	Document(ctx context.Context, rawURL string) ([]byte, error)
}

// ImageFetcher downloads a crest image from the crest CDN.
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) (crest.Image, error)
}
