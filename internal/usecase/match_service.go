package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/grounder-api/internal/domain/catalog"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/platform/fanout"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/reconcile"
)

const defaultHistoryWindow = 30 * 24 * time.Hour

// HistoryQuery selects a team by SportMonks id, or by a club name known to the
// catalog, and a date window. Empty dates default to the last 30 days.
type HistoryQuery struct {
	TeamID   int64
	TeamName string
	From     string
	To       string
	Page     int
}

type MatchService struct {
	footballData FootballDataSource
	sportMonks   SportMonksSource
	theSportsDB  TheSportsDBSource
	catalog      *catalog.Catalog
	matches      *reconcile.Reconciler[match.Match]
	logger       *logging.Logger
	now          func() time.Time
}

func NewMatchService(
	footballData FootballDataSource,
	sportMonks SportMonksSource,
	theSportsDB TheSportsDBSource,
	supported *catalog.Catalog,
	fieldMerge bool,
	logger *logging.Logger,
) (*MatchService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if supported == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	matches, err := reconcile.Matches(fieldMerge, reconcile.WithLogger[match.Match](logger))
	if err != nil {
		return nil, fmt.Errorf("build match reconciler: %w", err)
	}

	return &MatchService{
		footballData: footballData,
		sportMonks:   sportMonks,
		theSportsDB:  theSportsDB,
		catalog:      supported,
		matches:      matches,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// ListMatches returns the football-data matches of one day.
func (s *MatchService) ListMatches(ctx context.Context, date string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	day, err := parseDay(date, s.now())
	if err != nil {
		return nil, err
	}

	matches, err := s.footballData.Matches(ctx, day)
	if err != nil {
		return nil, unavailable(err, "list football-data matches")
	}
	return matches, nil
}

// GlobalMatches returns the matches of one day. Without a competition id the
// three sources are merged with football-data first, SportMonks second and
// TheSportsDB last. With one, only the SportMonks fixtures of the catalog
// league are returned.
func (s *MatchService) GlobalMatches(ctx context.Context, date, competitionID string) (Merged[match.Match], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GlobalMatches")
	defer span.End()

	day, err := parseDay(date, s.now())
	if err != nil {
		return Merged[match.Match]{}, err
	}

	competitionID = strings.TrimSpace(competitionID)
	if competitionID != "" {
		return s.competitionMatches(ctx, day, competitionID)
	}

	outcomes := fanout.Settle(ctx,
		func(ctx context.Context) ([]match.Match, error) {
			return s.footballData.Matches(ctx, day)
		},
		func(ctx context.Context) ([]match.Match, error) {
			return s.sportMonks.FixturesByDate(ctx, day, 0)
		},
		func(ctx context.Context) ([]match.Match, error) {
			return s.theSportsDB.EventsByDay(ctx, day)
		},
	)

	tags := []source.Tag{source.FootballData, source.SportMonks, source.TheSportsDB}
	batches := make([]reconcile.Batch[match.Match], 0, len(tags))
	for i, outcome := range outcomes {
		batches = append(batches, reconcile.Settled(tags[i], outcome.Value, outcome.Err))
	}
	return mergedFrom(s.matches.Run(ctx, batches, reconcile.Filters{})), nil
}

// Livescores returns the SportMonks fixtures currently in play.
func (s *MatchService) Livescores(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Livescores")
	defer span.End()

	matches, err := s.sportMonks.Livescores(ctx)
	if err != nil {
		return nil, unavailable(err, "list sportmonks livescores")
	}
	slices.SortStableFunc(matches, reconcile.ByKickoff)
	return matches, nil
}

// TeamHistory returns one page of a team's fixtures, newest first, with the
// result from the team's side.
func (s *MatchService) TeamHistory(ctx context.Context, query HistoryQuery) (match.Page, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.TeamHistory")
	defer span.End()

	teamID, err := s.resolveTeam(query)
	if err != nil {
		return match.Page{}, err
	}

	now := s.now().UTC()
	to, err := parseDay(query.To, now)
	if err != nil {
		return match.Page{}, err
	}
	from, err := parseDay(query.From, now.Add(-defaultHistoryWindow))
	if err != nil {
		return match.Page{}, err
	}
	if from > to {
		return match.Page{}, fmt.Errorf("%w: dateFrom must not be after dateTo", ErrInvalidInput)
	}

	page, err := s.sportMonks.TeamFixtures(ctx, teamID, from, to, max(query.Page, 1))
	if err != nil {
		return match.Page{}, unavailable(err, "list sportmonks team fixtures")
	}
	if page.Matches == nil {
		page.Matches = []match.Match{}
	}
	return page, nil
}

func (s *MatchService) competitionMatches(ctx context.Context, day, competitionID string) (Merged[match.Match], error) {
	supported, ok := s.catalog.Competition(competitionID)
	if !ok {
		return Merged[match.Match]{}, fmt.Errorf("%w: unknown competitionId %q", ErrInvalidInput, competitionID)
	}

	matches, err := s.sportMonks.FixturesByDate(ctx, day, supported.SportMonksLeagueID)
	if err != nil {
		return Merged[match.Match]{}, unavailable(err, "list sportmonks fixtures")
	}

	name := supported.Name
	for i := range matches {
		matches[i].Competition = match.CompetitionRef{ID: supported.ID, Name: &name, Country: supported.Country}
	}
	slices.SortStableFunc(matches, reconcile.ByKickoff)
	return singleSource(source.SportMonks, matches), nil
}

func (s *MatchService) resolveTeam(query HistoryQuery) (int64, error) {
	if query.TeamID > 0 {
		return query.TeamID, nil
	}
	name := strings.TrimSpace(query.TeamName)
	if name == "" {
		return 0, fmt.Errorf("%w: teamId or team is required", ErrInvalidInput)
	}
	id, ok := s.catalog.TeamID(name)
	if !ok {
		return 0, fmt.Errorf("%w: team %q", ErrNotFound, name)
	}
	return id, nil
}
