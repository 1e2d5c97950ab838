package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/domain/team"
	"github.com/riskibarqy/grounder-api/internal/platform/fanout"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/reconcile"
)

const (
	defaultLeaguesLimit = 300
	maxLeaguesLimit     = 2000
)

const footballDataTeamsNote = "football-data team lists are not available on this plan"

// LeagueTeams is the team list of one league as answered by its source.
type LeagueTeams struct {
	LeagueID string
	Source   source.Tag
	Teams    []team.Team
	Note     string
}

type LeagueService struct {
	footballData FootballDataSource
	theSportsDB  TheSportsDBSource
	sportMonks   SportMonksSource
	leagues      *reconcile.Reconciler[competition.Competition]
	cache        *ResponseCache
	logger       *logging.Logger
}

func NewLeagueService(
	footballData FootballDataSource,
	theSportsDB TheSportsDBSource,
	sportMonks SportMonksSource,
	responseCache *ResponseCache,
	logger *logging.Logger,
) (*LeagueService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	leagues, err := reconcile.Leagues(reconcile.WithLogger[competition.Competition](logger))
	if err != nil {
		return nil, fmt.Errorf("build league reconciler: %w", err)
	}

	return &LeagueService{
		footballData: footballData,
		theSportsDB:  theSportsDB,
		sportMonks:   sportMonks,
		leagues:      leagues,
		cache:        responseCache,
		logger:       logger,
	}, nil
}

// ListLeagues returns the leagues of the SportMonks subscription.
func (s *LeagueService) ListLeagues(ctx context.Context) ([]competition.ProviderLeague, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := cached(ctx, s.cache, "sportmonks:leagues", s.sportMonks.Leagues)
	if err != nil {
		return nil, unavailable(err, "list sportmonks leagues")
	}
	return leagues, nil
}

// GlobalLeagues merges football-data competitions with TheSportsDB leagues.
// TheSportsDB is read for one country, or country by country until limit
// leagues are collected.
func (s *LeagueService) GlobalLeagues(ctx context.Context, country string, limit int) (Merged[competition.Competition], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GlobalLeagues")
	defer span.End()

	country = strings.TrimSpace(country)
	limit = clampLimit(limit, defaultLeaguesLimit, maxLeaguesLimit)

	outcomes := fanout.Settle(ctx,
		func(ctx context.Context) ([]competition.Competition, error) {
			return cached(ctx, s.cache, "football-data:competitions", s.footballData.Competitions)
		},
		func(ctx context.Context) ([]competition.Competition, error) {
			return s.theSportsDBLeagues(ctx, country, limit)
		},
	)

	batches := []reconcile.Batch[competition.Competition]{
		reconcile.Settled(source.FootballData, outcomes[0].Value, outcomes[0].Err),
		reconcile.Settled(source.TheSportsDB, outcomes[1].Value, outcomes[1].Err),
	}
	return mergedFrom(s.leagues.Run(ctx, batches, reconcile.Filters{Country: country})), nil
}

// LeagueTeams lists the teams of a league on the given source.
func (s *LeagueService) LeagueTeams(ctx context.Context, leagueID, rawSource string) (LeagueTeams, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.LeagueTeams")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	rawSource = strings.TrimSpace(rawSource)
	if leagueID == "" || rawSource == "" {
		return LeagueTeams{}, fmt.Errorf("%w: id and source are required", ErrInvalidInput)
	}

	tag, ok := source.Parse(rawSource)
	if !ok {
		return LeagueTeams{}, fmt.Errorf("%w: unsupported source %q", ErrInvalidInput, rawSource)
	}

	switch tag {
	case source.FootballData:
		return LeagueTeams{LeagueID: leagueID, Source: tag, Teams: []team.Team{}, Note: footballDataTeamsNote}, nil
	case source.TheSportsDB:
		teams, err := s.theSportsDB.TeamsByLeague(ctx, providerID(leagueID))
		if err != nil {
			return LeagueTeams{}, unavailable(err, "list thesportsdb teams")
		}
		if teams == nil {
			teams = []team.Team{}
		}
		return LeagueTeams{LeagueID: leagueID, Source: tag, Teams: teams}, nil
	default:
		return LeagueTeams{}, fmt.Errorf("%w: unsupported source %q", ErrInvalidInput, rawSource)
	}
}

func (s *LeagueService) theSportsDBLeagues(ctx context.Context, country string, limit int) ([]competition.Competition, error) {
	if country != "" {
		leagues, err := cached(ctx, s.cache, "thesportsdb:leagues:"+strings.ToLower(country),
			func(ctx context.Context) ([]competition.Competition, error) {
				return s.theSportsDB.LeaguesByCountry(ctx, country)
			})
		if err != nil {
			return nil, err
		}
		return leagues[:min(len(leagues), limit)], nil
	}

	countries, err := cached(ctx, s.cache, "thesportsdb:countries", s.theSportsDB.Countries)
	if err != nil {
		return nil, err
	}

	out := make([]competition.Competition, 0, limit)
	for _, name := range countries {
		if len(out) >= limit || ctx.Err() != nil {
			break
		}
		leagues, err := cached(ctx, s.cache, "thesportsdb:leagues:"+strings.ToLower(name),
			func(ctx context.Context) ([]competition.Competition, error) {
				return s.theSportsDB.LeaguesByCountry(ctx, name)
			})
		if err != nil {
			s.logger.WarnContext(ctx, "skip thesportsdb country", "country", name, "error", err)
			continue
		}
		out = append(out, leagues...)
	}
	return out[:min(len(out), limit)], nil
}
