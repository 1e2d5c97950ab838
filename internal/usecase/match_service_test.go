package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	usecasemock "github.com/riskibarqy/grounder-api/internal/mocks/usecase"
)

type matchServiceFixture struct {
	footballData *usecasemock.FootballDataSource
	sportMonks   *usecasemock.SportMonksSource
	theSportsDB  *usecasemock.TheSportsDBSource
	service      *MatchService
}

func newMatchServiceFixture(t *testing.T) matchServiceFixture {
	t.Helper()

	f := matchServiceFixture{
		footballData: usecasemock.NewFootballDataSource(t),
		sportMonks:   usecasemock.NewSportMonksSource(t),
		theSportsDB:  usecasemock.NewTheSportsDBSource(t),
	}
	service, err := NewMatchService(f.footballData, f.sportMonks, f.theSportsDB, mustCatalog(t), false, testLogger())
	require.NoError(t, err)
	service.now = func() time.Time { return time.Date(2024, 5, 31, 22, 0, 0, 0, time.UTC) }
	f.service = service
	return f
}

func TestMatchService_GlobalMatches_MergesSourcesInPriorityOrder(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)
	kickoff := time.Date(2024, 5, 31, 19, 0, 0, 0, time.UTC)
	late := kickoff.Add(2 * time.Hour)

	f.footballData.On("Matches", mock.Anything, "2024-05-31").
		Return([]match.Match{fixture(source.FootballData, "FD:1", "Arsenal", "Chelsea", kickoff, nil)}, nil).
		Once()
	f.sportMonks.On("FixturesByDate", mock.Anything, "2024-05-31", int64(0)).
		Return([]match.Match{
			fixture(source.SportMonks, "SM:1", "arsenal ", "CHELSEA", kickoff, &[2]int{2, 1}),
			fixture(source.SportMonks, "SM:2", "Lens", "Lille", late, nil),
		}, nil).
		Once()
	f.theSportsDB.On("EventsByDay", mock.Anything, "2024-05-31").
		Return(nil, errors.New("thesportsdb down")).
		Once()

	got, err := f.service.GlobalMatches(context.Background(), "", "")
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "SM:1", got.Items[0].ID, "scored duplicate must replace the unscored one")
	assert.Equal(t, "SM:2", got.Items[1].ID)
	assert.Equal(t, map[string]int{"footballData": 0, "sportmonks": 2, "theSportsDB": 0}, got.Sources)
	assert.Contains(t, got.Degraded, "theSportsDB")
}

func TestMatchService_GlobalMatches_ByCompetition(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)
	kickoff := time.Date(2024, 5, 12, 19, 0, 0, 0, time.UTC)
	f.sportMonks.On("FixturesByDate", mock.Anything, "2024-05-12", int64(301)).
		Return([]match.Match{
			fixture(source.SportMonks, "SM:9", "Lens", "Lille", kickoff.Add(time.Hour), nil),
			fixture(source.SportMonks, "SM:8", "Nice", "Lyon", kickoff, nil),
		}, nil).
		Once()

	got, err := f.service.GlobalMatches(context.Background(), "2024-05-12", "FD:2015")
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	if got.Items[0].ID != "SM:8" {
		t.Fatalf("expected kickoff order, got=%s", got.Items[0].ID)
	}
	for _, m := range got.Items {
		assert.Equal(t, "FD:2015", m.Competition.ID)
		require.NotNil(t, m.Competition.Name)
		assert.Equal(t, "Ligue 1", *m.Competition.Name)
	}
	assert.Equal(t, map[string]int{"sportmonks": 2}, got.Sources)
}

func TestMatchService_GlobalMatches_RejectsBadInput(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)

	_, err := f.service.GlobalMatches(context.Background(), "2024-05-12", "FD:404")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown competition, got=%v", err)
	}

	_, err = f.service.GlobalMatches(context.Background(), "31/05/2024", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed date, got=%v", err)
	}
}

func TestMatchService_ListMatches_WrapsUpstreamFailure(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)
	f.footballData.On("Matches", mock.Anything, "2024-05-31").Return(nil, errors.New("timeout")).Once()

	_, err := f.service.ListMatches(context.Background(), "")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}

func TestMatchService_Livescores_SortsByKickoff(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)
	kickoff := time.Date(2024, 5, 31, 18, 0, 0, 0, time.UTC)
	f.sportMonks.On("Livescores", mock.Anything).
		Return([]match.Match{
			fixture(source.SportMonks, "SM:2", "B", "C", kickoff.Add(time.Hour), nil),
			fixture(source.SportMonks, "SM:1", "A", "D", kickoff, nil),
		}, nil).
		Once()

	got, err := f.service.Livescores(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "SM:1", got[0].ID)
}

func TestMatchService_TeamHistory_ResolvesCatalogClub(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)
	f.sportMonks.On("TeamFixtures", mock.Anything, int64(271), "2024-05-01", "2024-05-31", 2).
		Return(match.Page{Page: 2, HasMore: true}, nil).
		Once()

	got, err := f.service.TeamHistory(context.Background(), HistoryQuery{TeamName: "rc lens", Page: 2})
	require.NoError(t, err)
	assert.True(t, got.HasMore)
	assert.Equal(t, 2, got.Page)
	assert.NotNil(t, got.Matches)
}

func TestMatchService_TeamHistory_Errors(t *testing.T) {
	t.Parallel()

	f := newMatchServiceFixture(t)

	cases := []struct {
		name  string
		query HistoryQuery
		want  error
	}{
		{name: "no team", query: HistoryQuery{}, want: ErrInvalidInput},
		{name: "unknown club", query: HistoryQuery{TeamName: "Unknown United"}, want: ErrNotFound},
		{name: "reversed window", query: HistoryQuery{TeamID: 8, From: "2024-06-01", To: "2024-05-01"}, want: ErrInvalidInput},
		{name: "malformed date", query: HistoryQuery{TeamID: 8, From: "yesterday"}, want: ErrInvalidInput},
	}
	for _, tc := range cases {
		_, err := f.service.TeamHistory(context.Background(), tc.query)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected=%v got=%v", tc.name, tc.want, err)
		}
	}
}
