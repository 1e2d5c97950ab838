package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/team"
	"github.com/riskibarqy/grounder-api/internal/platform/fanout"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/platform/workerpool"
)

// SearchResult holds the TheSportsDB team and league matches of a query.
// Degraded is keyed by "teams" or "leagues" when that half failed.
type SearchResult struct {
	Query    string
	Teams    []team.Team
	Leagues  []competition.Competition
	Degraded map[string]string
}

type TeamService struct {
	theSportsDB   TheSportsDBSource
	enrichWorkers int
	logger        *logging.Logger
}

func NewTeamService(theSportsDB TheSportsDBSource, enrichWorkers int, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if enrichWorkers <= 0 {
		enrichWorkers = workerpool.DefaultSize
	}

	return &TeamService{
		theSportsDB:   theSportsDB,
		enrichWorkers: enrichWorkers,
		logger:        logger,
	}
}

// GlobalTeams lists the teams of a TheSportsDB league, each enriched with the
// badge and stadium of its detail lookup. Teams whose lookup fails are dropped.
func (s *TeamService) GlobalTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GlobalTeams")
	defer span.End()

	leagueID = providerID(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	teams, err := s.theSportsDB.TeamsByLeague(ctx, leagueID)
	if err != nil {
		return nil, unavailable(err, "list thesportsdb teams")
	}

	enriched, err := workerpool.Map(ctx, s.enrichWorkers, teams, s.enrich)
	if err != nil {
		return nil, fmt.Errorf("enrich teams league=%s: %w", leagueID, err)
	}
	return enriched, nil
}

// Search runs the team and league searches concurrently. An empty query
// returns empty lists without calling the source.
func (s *TeamService) Search(ctx context.Context, query string) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	result := SearchResult{Query: query, Teams: []team.Team{}, Leagues: []competition.Competition{}}
	if query == "" {
		return result, nil
	}

	type hits struct {
		teams   []team.Team
		leagues []competition.Competition
	}
	outcomes := fanout.Settle(ctx,
		func(ctx context.Context) (hits, error) {
			teams, err := s.theSportsDB.SearchTeams(ctx, query)
			return hits{teams: teams}, err
		},
		func(ctx context.Context) (hits, error) {
			leagues, err := s.theSportsDB.SearchLeagues(ctx, query)
			return hits{leagues: leagues}, err
		},
	)

	if teams := outcomes[0]; teams.OK() {
		result.Teams = append(result.Teams, teams.Value.teams...)
	} else {
		result.Degraded = map[string]string{"teams": teams.Err.Error()}
	}
	if leagues := outcomes[1]; leagues.OK() {
		result.Leagues = append(result.Leagues, leagues.Value.leagues...)
	} else {
		if result.Degraded == nil {
			result.Degraded = map[string]string{}
		}
		result.Degraded["leagues"] = leagues.Err.Error()
	}
	return result, nil
}

func (s *TeamService) enrich(ctx context.Context, base team.Team) (team.Team, bool) {
	detail, found, err := s.theSportsDB.LookupTeam(ctx, providerID(base.ID))
	if err != nil {
		s.logger.WarnContext(ctx, "drop team after failed lookup", "team_id", base.ID, "error", err)
		return team.Team{}, false
	}
	if !found {
		return base, true
	}

	if detail.Badge != "" {
		base.Badge = detail.Badge
	}
	if detail.Stadium != "" {
		base.Stadium = detail.Stadium
	}
	if base.Country == "" {
		base.Country = detail.Country
	}
	if base.Name == nil {
		base.Name = detail.Name
	}
	return base, true
}
