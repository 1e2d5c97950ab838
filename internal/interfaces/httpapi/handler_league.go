package httpapi

import (
	"net/http"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/team"
)

type leaguesGlobalQuery struct {
	Country string `validate:"omitempty,max=64"`
	Limit   int    `validate:"gte=0"`
}

type leagueTeamsQuery struct {
	ID     string `validate:"required,max=64"`
	Source string `validate:"required"`
}

type providerLeaguesDTO struct {
	Count   int                          `json:"count"`
	Leagues []competition.ProviderLeague `json:"leagues"`
}

type mergedLeaguesDTO struct {
	Count    int                       `json:"count"`
	Leagues  []competition.Competition `json:"leagues"`
	Sources  map[string]int            `json:"sources"`
	Fetched  map[string]int            `json:"sourcesFetched,omitempty"`
	Degraded map[string]string         `json:"degraded,omitempty"`
}

type leagueTeamsDTO struct {
	LeagueID string      `json:"leagueId"`
	Source   string      `json:"source"`
	Count    int         `json:"count"`
	Teams    []team.Team `json:"teams"`
	Note     string      `json:"note,omitempty"`
}

type searchDTO struct {
	Query        string                    `json:"q"`
	TeamsCount   *int                      `json:"teamsCount,omitempty"`
	LeaguesCount *int                      `json:"leaguesCount,omitempty"`
	Teams        []team.Team               `json:"teams"`
	Leagues      []competition.Competition `json:"leagues"`
	Degraded     map[string]string         `json:"degraded,omitempty"`
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.fail(ctx, w, "list leagues failed", err)
		return
	}
	if leagues == nil {
		leagues = []competition.ProviderLeague{}
	}

	writeCached(ctx, w, cacheLeagues, providerLeaguesDTO{Count: len(leagues), Leagues: leagues})
}

func (h *Handler) GlobalLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalLeagues")
	defer span.End()

	values := r.URL.Query()
	query := leaguesGlobalQuery{Country: queryString(values, "country")}
	var err error
	if query.Limit, err = queryInt(values, "limit"); err == nil {
		err = h.validateRequest(ctx, query)
	}
	if err != nil {
		h.fail(ctx, w, "invalid leagues query", err)
		return
	}

	merged, err := h.leagueService.GlobalLeagues(ctx, query.Country, query.Limit)
	if err != nil {
		h.fail(ctx, w, "list global leagues failed", err)
		return
	}

	writeCached(ctx, w, cacheCatalog, mergedLeaguesDTO{
		Count:    len(merged.Items),
		Leagues:  merged.Items,
		Sources:  merged.Sources,
		Fetched:  merged.Fetched,
		Degraded: merged.Degraded,
	})
}

func (h *Handler) LeagueTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeagueTeams")
	defer span.End()

	values := r.URL.Query()
	query := leagueTeamsQuery{ID: queryString(values, "id"), Source: queryString(values, "source")}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid league teams query", err)
		return
	}

	result, err := h.leagueService.LeagueTeams(ctx, query.ID, query.Source)
	if err != nil {
		h.fail(ctx, w, "list league teams failed", err)
		return
	}

	writeCached(ctx, w, cacheCatalog, leagueTeamsDTO{
		LeagueID: result.LeagueID,
		Source:   result.Source.String(),
		Count:    len(result.Teams),
		Teams:    result.Teams,
		Note:     result.Note,
	})
}

func (h *Handler) GlobalTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalTeams")
	defer span.End()

	leagueID := queryString(r.URL.Query(), "id", "leagueId")
	teams, err := h.teamService.GlobalTeams(ctx, leagueID)
	if err != nil {
		h.fail(ctx, w, "list global teams failed", err)
		return
	}

	writeCached(ctx, w, cacheCatalog, leagueTeamsDTO{
		LeagueID: leagueID,
		Source:   "thesportsdb",
		Count:    len(teams),
		Teams:    teams,
	})
}

func (h *Handler) SearchGlobal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchGlobal")
	defer span.End()

	result, err := h.teamService.Search(ctx, queryString(r.URL.Query(), "q"))
	if err != nil {
		h.fail(ctx, w, "search failed", err)
		return
	}

	out := searchDTO{
		Query:    result.Query,
		Teams:    result.Teams,
		Leagues:  result.Leagues,
		Degraded: result.Degraded,
	}
	if result.Query != "" {
		teamsCount, leaguesCount := len(result.Teams), len(result.Leagues)
		out.TeamsCount, out.LeaguesCount = &teamsCount, &leaguesCount
	}
	writeCached(ctx, w, cacheSearchResult, out)
}
