package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/grounder-api/internal/domain/catalog"
	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/crest"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	usecasemock "github.com/riskibarqy/grounder-api/internal/mocks/usecase"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/usecase"
)

type apiFixture struct {
	footballData *usecasemock.FootballDataSource
	theSportsDB  *usecasemock.TheSportsDBSource
	sportMonks   *usecasemock.SportMonksSource
	wikidata     *usecasemock.WikidataSource
	documents    *usecasemock.DocumentSource
	images       *usecasemock.ImageFetcher
	router       http.Handler
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()

	f := apiFixture{
		footballData: usecasemock.NewFootballDataSource(t),
		theSportsDB:  usecasemock.NewTheSportsDBSource(t),
		sportMonks:   usecasemock.NewSportMonksSource(t),
		wikidata:     usecasemock.NewWikidataSource(t),
		documents:    usecasemock.NewDocumentSource(t),
		images:       usecasemock.NewImageFetcher(t),
	}
	logger := logging.NewNop()
	supported, err := catalog.Default()
	require.NoError(t, err)

	catalogService, err := usecase.NewCatalogService(f.footballData, f.theSportsDB, f.wikidata, f.documents, supported, nil, "", logger)
	require.NoError(t, err)
	leagueService, err := usecase.NewLeagueService(f.footballData, f.theSportsDB, f.sportMonks, nil, logger)
	require.NoError(t, err)
	matchService, err := usecase.NewMatchService(f.footballData, f.sportMonks, f.theSportsDB, supported, false, logger)
	require.NoError(t, err)
	stadiumService, err := usecase.NewStadiumService(f.wikidata, nil, logger)
	require.NoError(t, err)

	handler := NewHandler(
		catalogService,
		leagueService,
		matchService,
		usecase.NewTeamService(f.theSportsDB, 4, logger),
		stadiumService,
		usecase.NewCrestService(f.images, "https://crests.football-data.org/"),
		logger,
	)
	f.router = NewRouter(handler, logger, RouterConfig{CORSAllowedOrigins: []string{"*"}})
	return f
}

func (f apiFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func TestHandler_GlobalMatches_ReportsSources(t *testing.T) {
	f := newAPIFixture(t)
	kickoff := time.Date(2024, 5, 31, 19, 0, 0, 0, time.UTC)
	home, away := "Arsenal", "Chelsea"

	f.footballData.On("Matches", mock.Anything, "2024-05-31").
		Return([]match.Match{{ID: "FD:1", Source: source.FootballData, Kickoff: &kickoff,
			HomeTeam: match.TeamRef{Name: &home}, AwayTeam: match.TeamRef{Name: &away}}}, nil).Once()
	f.sportMonks.On("FixturesByDate", mock.Anything, "2024-05-31", int64(0)).Return(nil, errors.New("down")).Once()
	f.theSportsDB.On("EventsByDay", mock.Anything, "2024-05-31").Return([]match.Match{}, nil).Once()

	rec := f.get(t, "/api/matches_global?date=2024-05-31")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "public, s-maxage=60, stale-while-revalidate=30", rec.Header().Get("Cache-Control"))

	data := decodeData(t, rec)
	assert.EqualValues(t, 1, data["count"])
	assert.Equal(t, map[string]any{"footballData": float64(1), "sportmonks": float64(0), "theSportsDB": float64(0)}, data["sources"])
	assert.Equal(t, map[string]any{"footballData": float64(1), "sportmonks": float64(0), "theSportsDB": float64(0)}, data["sourcesFetched"])
	degraded, ok := data["degraded"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, degraded, "sportmonks")
}

func TestHandler_GlobalCatalog_CaseInsensitiveQuery(t *testing.T) {
	f := newAPIFixture(t)
	ligue1, faCup := "Ligue 1", "FA Cup"
	f.footballData.On("Competitions", mock.Anything).
		Return([]competition.Competition{
			{ID: "FD:2015", Source: source.FootballData, Name: &ligue1, Country: "France", Type: competition.TypeLeague},
			{ID: "FD:2055", Source: source.FootballData, Name: &faCup, Country: "England", Type: competition.TypeCup},
		}, nil).Once()

	rec := f.get(t, "/api/catalog_global?source=Football-Data&type=league")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.EqualValues(t, 1, data["count"])
	assert.Equal(t, map[string]any{"footballData": float64(1)}, data["sources"])
	assert.Equal(t, map[string]any{"footballData": float64(2)}, data["sourcesFetched"])
}

func TestHandler_InputErrors(t *testing.T) {
	f := newAPIFixture(t)

	cases := map[string]int{
		"/api/matches_global?date=31-05-2024":       http.StatusBadRequest,
		"/api/matches_global?competitionId=FD:9999": http.StatusBadRequest,
		"/api/team_history?team=Unknown%20United":   http.StatusNotFound,
		"/api/team_history":                         http.StatusBadRequest,
		"/api/team_history?teamId=abc":              http.StatusBadRequest,
		"/api/league_teams?id=4334":                 http.StatusBadRequest,
		"/api/catalog_global?source=espn":           http.StatusBadRequest,
		"/api/stadiums_global?offset=-1":            http.StatusBadRequest,
		"/api/crest?url=https://example.com/x.png":  http.StatusBadRequest,
	}
	for target, want := range cases {
		rec := f.get(t, target)
		if rec.Code != want {
			t.Fatalf("GET %s: expected=%d got=%d body=%s", target, want, rec.Code, rec.Body.String())
		}
	}
}

func TestHandler_SearchGlobal_EmptyQuery(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.get(t, "/api/search_global?q=")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, "", data["q"])
	assert.Equal(t, []any{}, data["teams"])
	assert.Equal(t, []any{}, data["leagues"])
	assert.NotContains(t, data, "teamsCount")
}

func TestHandler_Livescores_Unavailable(t *testing.T) {
	f := newAPIFixture(t)
	f.sportMonks.On("Livescores", mock.Anything).Return(nil, errors.New("circuit open")).Once()

	rec := f.get(t, "/api/livescores")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestHandler_Crest_PassesImageThrough(t *testing.T) {
	f := newAPIFixture(t)
	const crestURL = "https://crests.football-data.org/57.svg"
	f.images.On("FetchImage", mock.Anything, crestURL).
		Return(crest.Image{ContentType: "image/svg+xml", Body: []byte("<svg/>")}, nil).Once()

	rec := f.get(t, "/api/crest?url="+crestURL)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<svg/>", rec.Body.String())
}

func TestHandler_OpenFootballCatalog_NotConfigured(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.get(t, "/api/catalog")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, true, data["ok"])
	assert.NotEmpty(t, data["example"])
}

func TestHandler_Healthz(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequestID(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-abc.1")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-abc.1", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "bad id\nvalue")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 32)
}
