package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/domain/team"
	usecasemock "github.com/riskibarqy/grounder-api/internal/mocks/usecase"
)

type leagueServiceFixture struct {
	footballData *usecasemock.FootballDataSource
	theSportsDB  *usecasemock.TheSportsDBSource
	sportMonks   *usecasemock.SportMonksSource
	service      *LeagueService
}

func newLeagueServiceFixture(t *testing.T) leagueServiceFixture {
	t.Helper()

	f := leagueServiceFixture{
		footballData: usecasemock.NewFootballDataSource(t),
		theSportsDB:  usecasemock.NewTheSportsDBSource(t),
		sportMonks:   usecasemock.NewSportMonksSource(t),
	}
	service, err := NewLeagueService(f.footballData, f.theSportsDB, f.sportMonks, nil, testLogger())
	require.NoError(t, err)
	f.service = service
	return f
}

func TestLeagueService_GlobalLeagues_ByCountry(t *testing.T) {
	t.Parallel()

	f := newLeagueServiceFixture(t)
	f.footballData.On("Competitions", mock.Anything).
		Return([]competition.Competition{
			league(source.FootballData, "FD:2015", "Ligue 1", "France"),
			league(source.FootballData, "FD:2021", "Premier League", "England"),
		}, nil).
		Once()
	f.theSportsDB.On("LeaguesByCountry", mock.Anything, "France").
		Return([]competition.Competition{
			league(source.TheSportsDB, "TSDB:4334", "ligue 1", "FRANCE"),
			league(source.TheSportsDB, "TSDB:4401", "Ligue 2", "France"),
		}, nil).
		Once()

	got, err := f.service.GlobalLeagues(context.Background(), "France", 0)
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "FD:2015", got.Items[0].ID)
	assert.Equal(t, "TSDB:4401", got.Items[1].ID)
	assert.Equal(t, map[string]int{"footballData": 1, "theSportsDB": 1}, got.Sources)
}

func TestLeagueService_GlobalLeagues_WalksCountriesUntilLimit(t *testing.T) {
	t.Parallel()

	f := newLeagueServiceFixture(t)
	f.footballData.On("Competitions", mock.Anything).Return(nil, errors.New("no key")).Once()
	f.theSportsDB.On("Countries", mock.Anything).Return([]string{"Albania", "Andorra", "Argentina"}, nil).Once()
	f.theSportsDB.On("LeaguesByCountry", mock.Anything, "Albania").
		Return(nil, errors.New("boom")).
		Once()
	f.theSportsDB.On("LeaguesByCountry", mock.Anything, "Andorra").
		Return([]competition.Competition{
			league(source.TheSportsDB, "TSDB:1", "Primera Divisio", "Andorra"),
			league(source.TheSportsDB, "TSDB:2", "Segona Divisio", "Andorra"),
		}, nil).
		Once()

	got, err := f.service.GlobalLeagues(context.Background(), "", 1)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "TSDB:1", got.Items[0].ID)
	assert.Contains(t, got.Degraded, "footballData")
}

func TestLeagueService_LeagueTeams(t *testing.T) {
	t.Parallel()

	f := newLeagueServiceFixture(t)
	f.theSportsDB.On("TeamsByLeague", mock.Anything, "4334").
		Return([]team.Team{{ID: "TSDBTEAM:133714", Source: source.TheSportsDB, Name: strPtr("Paris SG")}}, nil).
		Once()

	got, err := f.service.LeagueTeams(context.Background(), "TSDB:4334", "thesportsdb")
	require.NoError(t, err)
	require.Len(t, got.Teams, 1)
	assert.Equal(t, source.TheSportsDB, got.Source)

	fd, err := f.service.LeagueTeams(context.Background(), "FD:2015", "football-data")
	require.NoError(t, err)
	assert.Empty(t, fd.Teams)
	assert.NotEmpty(t, fd.Note)

	for _, tc := range [][2]string{{"", "thesportsdb"}, {"1", ""}, {"1", "sportmonks"}, {"1", "espn"}} {
		if _, err := f.service.LeagueTeams(context.Background(), tc[0], tc[1]); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("id=%q source=%q: expected ErrInvalidInput, got=%v", tc[0], tc[1], err)
		}
	}
}

func TestLeagueService_ListLeagues_Unavailable(t *testing.T) {
	t.Parallel()

	f := newLeagueServiceFixture(t)
	f.sportMonks.On("Leagues", mock.Anything).Return(nil, errors.New("source disabled")).Once()

	_, err := f.service.ListLeagues(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}
