package httpapi

import (
	"net/http"

	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/usecase"
)

type matchesQuery struct {
	Date          string `validate:"omitempty,datetime=2006-01-02"`
	CompetitionID string `validate:"omitempty,max=32"`
}

type teamHistoryQuery struct {
	TeamID int    `validate:"gte=0"`
	Team   string `validate:"max=100"`
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
	Page   int    `validate:"gte=0"`
}

type matchesDTO struct {
	Date          string            `json:"date,omitempty"`
	CompetitionID string            `json:"competitionId,omitempty"`
	Count         int               `json:"count"`
	Matches       []match.Match     `json:"matches"`
	Sources       map[string]int    `json:"sources,omitempty"`
	Fetched       map[string]int    `json:"sourcesFetched,omitempty"`
	Degraded      map[string]string `json:"degraded,omitempty"`
}

type teamHistoryDTO struct {
	TeamID  int           `json:"teamId,omitempty"`
	Team    string        `json:"team,omitempty"`
	Matches []match.Match `json:"matches"`
	HasMore bool          `json:"hasMore"`
	Page    int           `json:"page"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := matchesQuery{Date: queryString(r.URL.Query(), "date")}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid matches query", err)
		return
	}

	matches, err := h.matchService.ListMatches(ctx, query.Date)
	if err != nil {
		h.fail(ctx, w, "list matches failed", err)
		return
	}
	if matches == nil {
		matches = []match.Match{}
	}

	writeCached(ctx, w, cacheMatchesDay, matchesDTO{Date: query.Date, Count: len(matches), Matches: matches})
}

func (h *Handler) GlobalMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalMatches")
	defer span.End()

	values := r.URL.Query()
	query := matchesQuery{
		Date:          queryString(values, "date"),
		CompetitionID: queryString(values, "competitionId"),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid global matches query", err)
		return
	}

	merged, err := h.matchService.GlobalMatches(ctx, query.Date, query.CompetitionID)
	if err != nil {
		h.fail(ctx, w, "list global matches failed", err)
		return
	}

	writeCached(ctx, w, cacheMatchesDay, matchesDTO{
		Date:          query.Date,
		CompetitionID: query.CompetitionID,
		Count:         len(merged.Items),
		Matches:       merged.Items,
		Sources:       merged.Sources,
		Fetched:       merged.Fetched,
		Degraded:      merged.Degraded,
	})
}

func (h *Handler) Livescores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Livescores")
	defer span.End()

	matches, err := h.matchService.Livescores(ctx)
	if err != nil {
		h.fail(ctx, w, "list livescores failed", err)
		return
	}
	if matches == nil {
		matches = []match.Match{}
	}

	writeCached(ctx, w, cacheNoStore, matchesDTO{Count: len(matches), Matches: matches})
}

func (h *Handler) TeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamHistory")
	defer span.End()

	values := r.URL.Query()
	query := teamHistoryQuery{
		Team: queryString(values, "team"),
		From: queryString(values, "dateFrom", "startDate"),
		To:   queryString(values, "dateTo", "endDate"),
	}
	var err error
	if query.TeamID, err = queryInt(values, "teamId"); err == nil {
		query.Page, err = queryInt(values, "page")
	}
	if err == nil {
		err = h.validateRequest(ctx, query)
	}
	if err != nil {
		h.fail(ctx, w, "invalid team history query", err)
		return
	}

	page, err := h.matchService.TeamHistory(ctx, usecase.HistoryQuery{
		TeamID:   int64(query.TeamID),
		TeamName: query.Team,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
	})
	if err != nil {
		h.fail(ctx, w, "list team history failed", err)
		return
	}

	writeCached(ctx, w, cacheTeamHistory, teamHistoryDTO{
		TeamID:  query.TeamID,
		Team:    query.Team,
		Matches: page.Matches,
		HasMore: page.HasMore,
		Page:    page.Page,
	})
}
