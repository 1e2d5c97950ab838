package sportmonks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/grounder-api/external/upstream"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
)

const fixturePayload = `{"data":[{
	"id":19000001,"league_id":301,"state_id":5,"starting_at":"2024-05-01 19:00:00",
	"participants":[
		{"id":271,"name":"RC Lens","short_code":null,"image_path":"https://cdn/lens.png","meta":{"location":"home"}},
		{"id":690,"name":"LOSC Lille","short_code":"LIL","meta":{"location":"away"}}
	],
	"scores":[
		{"description":"1ST_HALF","score":{"goals":1,"participant":"home"}},
		{"description":"1ST_HALF","score":{"goals":0,"participant":"away"}},
		{"description":"CURRENT","score":{"goals":2,"participant":"home"}},
		{"description":"CURRENT","score":{"goals":2,"participant":"away"}}
	],
	"venue":{"name":"Stade Bollaert-Delelis","city_name":"Lens"},
	"league":{"data":{"id":301,"name":"Ligue 1"}}
}],"pagination":{"has_more":true}}`

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL:   server.URL,
		Token:     token,
		Transport: upstream.New(upstream.Config{Name: "sportmonks", Logger: logging.NewNop()}),
	})
}

func TestFixturesByDate_MapsFixture(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures/date/2024-05-01" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("filters"); got != "fixtureLeagues:301" {
			t.Errorf("expected league filter, got=%q", got)
		}
		if r.URL.Query().Get("api_token") != "token" {
			t.Errorf("expected api_token query param")
		}
		_, _ = w.Write([]byte(fixturePayload))
	}, "token")

	got, err := client.FixturesByDate(context.Background(), "2024-05-01", 301)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one fixture, got=%d", len(got))
	}

	m := got[0]
	if m.ID != "SM:19000001" {
		t.Fatalf("expected id=SM:19000001, got=%s", m.ID)
	}
	if m.Status != match.StatusFinished {
		t.Fatalf("expected status=FINISHED, got=%s", m.Status)
	}
	if want := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC); m.Kickoff == nil || !m.Kickoff.Equal(want) {
		t.Fatalf("expected kickoff=%s, got=%v", want, m.Kickoff)
	}
	if m.HomeTeam.TLA != "RC " || m.HomeTeam.ShortName != "RC Lens" {
		t.Fatalf("expected name-derived short fields, got=%+v", m.HomeTeam)
	}
	if m.AwayTeam.TLA != "LIL" {
		t.Fatalf("expected tla=LIL, got=%s", m.AwayTeam.TLA)
	}
	if *m.Score.Home != 2 || *m.Score.Away != 2 || m.Score.Winner != match.WinnerDraw {
		t.Fatalf("unexpected full time score: %+v", m.Score)
	}
	if m.Score.HalfTime == nil || *m.Score.HalfTime.Home != 1 || *m.Score.HalfTime.Away != 0 {
		t.Fatalf("unexpected half time score: %+v", m.Score.HalfTime)
	}
	if m.Competition.Name == nil || *m.Competition.Name != "Ligue 1" || m.Competition.ID != "SM:301" {
		t.Fatalf("unexpected competition: %+v", m.Competition)
	}
	if m.Venue == nil || m.Venue.City != "Lens" {
		t.Fatalf("unexpected venue: %+v", m.Venue)
	}
	if m.Minute != nil {
		t.Fatalf("finished fixture must not carry a minute")
	}
}

func TestTeamFixtures_SetsResultAndPagination(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures/between/2024-01-01/2024-06-30/teams/690" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2")
		}
		_, _ = w.Write([]byte(fixturePayload))
	}, "token")

	page, err := client.TeamFixtures(context.Background(), 690, "2024-01-01", "2024-06-30", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.HasMore || page.Page != 2 {
		t.Fatalf("unexpected pagination: has_more=%v page=%d", page.HasMore, page.Page)
	}
	if page.Matches[0].Result != match.ResultDraw {
		t.Fatalf("expected result=D, got=%q", page.Matches[0].Result)
	}
}

func TestLiveMinute_DerivedFromTickingPeriod(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Token: "token"})
	now := time.Unix(1_700_000_000, 0)
	client.now = func() time.Time { return now }

	item := fixtureItem{
		StateID: 4,
		Periods: []periodItem{
			{SortOrder: 1, Started: now.Unix() - 3600},
			{SortOrder: 2, Ticking: true, Started: now.Unix() - 20*60},
		},
	}
	got := client.mapFixture(item)
	if got.Minute == nil || *got.Minute != 65 {
		t.Fatalf("expected minute=65, got=%v", got.Minute)
	}

	item.Periods[1].Started = now.Unix() - 80*60
	got = client.mapFixture(item)
	if *got.Minute != 90 {
		t.Fatalf("expected minute capped at 90, got=%d", *got.Minute)
	}
}

func TestLeagues(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":301,"name":"Ligue 1","short_code":"FRA L1","image_path":"https://cdn/l1.png","country_id":17}]}`))
	}, "token")

	leagues, err := client.Leagues(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leagues) != 1 || leagues[0].ID != 301 || leagues[0].Logo != "https://cdn/l1.png" || leagues[0].CountryID != 17 {
		t.Fatalf("unexpected leagues: %+v", leagues)
	}
}

func TestMissingTokenDisablesSource(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.Livescores(context.Background())
	if !crerr.Is(err, upstream.ErrSourceDisabled) {
		t.Fatalf("expected ErrSourceDisabled, got=%v", err)
	}
}
