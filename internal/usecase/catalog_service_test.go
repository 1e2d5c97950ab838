package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	usecasemock "github.com/riskibarqy/grounder-api/internal/mocks/usecase"
)

type catalogServiceFixture struct {
	footballData *usecasemock.FootballDataSource
	theSportsDB  *usecasemock.TheSportsDBSource
	wikidata     *usecasemock.WikidataSource
	documents    *usecasemock.DocumentSource
	service      *CatalogService
}

func newCatalogServiceFixture(t *testing.T, responseCache *ResponseCache, openFootballURL string) catalogServiceFixture {
	t.Helper()

	f := catalogServiceFixture{
		footballData: usecasemock.NewFootballDataSource(t),
		theSportsDB:  usecasemock.NewTheSportsDBSource(t),
		wikidata:     usecasemock.NewWikidataSource(t),
		documents:    usecasemock.NewDocumentSource(t),
	}
	service, err := NewCatalogService(
		f.footballData, f.theSportsDB, f.wikidata, f.documents,
		mustCatalog(t), responseCache, openFootballURL, testLogger(),
	)
	require.NoError(t, err)
	f.service = service
	return f
}

func TestCatalogService_GlobalCatalog_DropsKnownLeagues(t *testing.T) {
	t.Parallel()

	f := newCatalogServiceFixture(t, nil, "")
	f.footballData.On("Competitions", mock.Anything).
		Return([]competition.Competition{
			league(source.FootballData, "FD:2015", "Ligue 1", "France"),
			league(source.FootballData, "FD:2021", "Premier League", "England"),
		}, nil).
		Once()
	f.theSportsDB.On("AllLeagues", mock.Anything).
		Return([]competition.Competition{
			league(source.TheSportsDB, "TSDB:4334", "French Ligue 1", "France"),
			league(source.TheSportsDB, "TSDB:4401", "French Ligue 2", "France"),
		}, nil).
		Once()

	got, err := f.service.GlobalCatalog(context.Background(), CatalogQuery{Source: "all", Country: "fran"})
	require.NoError(t, err)

	ids := make([]string, 0, len(got.Items))
	for _, item := range got.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"TSDB:4401", "FD:2015"}, ids)
	assert.Equal(t, map[string]int{"footballData": 1, "theSportsDB": 1}, got.Sources)
	assert.Nil(t, got.Degraded)
}

func TestCatalogService_GlobalCatalog_SingleSourceAndValidation(t *testing.T) {
	t.Parallel()

	f := newCatalogServiceFixture(t, nil, "")
	f.theSportsDB.On("AllLeagues", mock.Anything).Return(nil, errors.New("rate limited")).Once()

	got, err := f.service.GlobalCatalog(context.Background(), CatalogQuery{Source: "thesportsdb"})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, map[string]int{"theSportsDB": 0}, got.Sources)
	assert.Contains(t, got.Degraded["theSportsDB"], "rate limited")

	_, err = f.service.GlobalCatalog(context.Background(), CatalogQuery{Source: "wikidata"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestCatalogService_GlobalCompetitions_CatalogWinsOverWikidata(t *testing.T) {
	t.Parallel()

	f := newCatalogServiceFixture(t, nil, "")
	f.wikidata.On("Competitions", mock.Anything, 500, 0).
		Return([]competition.Competition{
			league(source.Wikidata, "WD:Q13394", "Ligue 1", "France"),
			league(source.Wikidata, "WD:Q216022", "Eliteserien", "Norway"),
			league(source.Wikidata, "WD:Q1", "Veikkausliiga", "Finland"),
		}, nil).
		Once()

	got, err := f.service.GlobalCompetitions(context.Background(), 10000, 0)
	require.NoError(t, err)

	catalogCount := len(mustCatalog(t).Competitions())
	require.Len(t, got.Items, catalogCount+1)
	assert.Equal(t, catalogCount, got.Sources["catalog"])
	assert.Equal(t, 1, got.Sources["wikidata"])

	_, err = f.service.GlobalCompetitions(context.Background(), 10, -1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offset, got=%v", err)
	}
}

func TestCatalogService_GlobalCompetitions_LaterPagesOmitCatalog(t *testing.T) {
	t.Parallel()

	f := newCatalogServiceFixture(t, nil, "")
	f.wikidata.On("Competitions", mock.Anything, 2, 2).
		Return([]competition.Competition{
			league(source.Wikidata, "WD:Q13394", "Ligue 1", "France"),
			league(source.Wikidata, "WD:Q1", "Veikkausliiga", "Finland"),
		}, nil).
		Once()

	got, err := f.service.GlobalCompetitions(context.Background(), 2, 2)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "WD:Q1", got.Items[0].ID)
	assert.Equal(t, 0, got.Sources["catalog"])
	assert.Equal(t, 1, got.Sources["wikidata"])
}

func TestCatalogService_ListCompetitions_UsesCache(t *testing.T) {
	t.Parallel()

	f := newCatalogServiceFixture(t, NewResponseCache(time.Minute), "")
	f.footballData.On("Competitions", mock.Anything).
		Return([]competition.Competition{league(source.FootballData, "FD:2015", "Ligue 1", "France")}, nil).
		Once()

	for range 3 {
		got, err := f.service.ListCompetitions(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
}

func TestCatalogService_OpenFootballDocument(t *testing.T) {
	t.Parallel()

	const configured = "https://raw.githubusercontent.com/openfootball/football.json/master/2024-25/en.1.json"

	f := newCatalogServiceFixture(t, nil, configured)
	f.documents.On("Document", mock.Anything, configured).Return([]byte(`{"name":"Premier League"}`), nil).Once()

	doc, err := f.service.OpenFootballDocument(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, doc.Configured)
	assert.Equal(t, configured, doc.SourceURL)
	assert.JSONEq(t, `{"name":"Premier League"}`, string(doc.Data))

	_, err = f.service.OpenFootballDocument(context.Background(), "https://evil.example.com/x.json")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for foreign host, got=%v", err)
	}

	unconfigured := newCatalogServiceFixture(t, nil, "")
	doc, err = unconfigured.service.OpenFootballDocument(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, doc.Configured)
}
