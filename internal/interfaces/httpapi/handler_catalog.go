package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/stadium"
	"github.com/riskibarqy/grounder-api/internal/usecase"
)

const openFootballExample = "/api/catalog?url=https://raw.githubusercontent.com/openfootball/football.json/master/2024-25/en.1.json"

type competitionsQuery struct {
	Limit  int `validate:"gte=0"`
	Offset int `validate:"gte=0"`
}

type catalogQuery struct {
	Source  string `validate:"omitempty,oneof=all football-data thesportsdb"`
	Country string `validate:"omitempty,max=64"`
	Type    string `validate:"omitempty,oneof=LEAGUE CUP"`
}

type stadiumsQuery struct {
	Limit       int `validate:"gte=0"`
	Offset      int `validate:"gte=0"`
	MinCapacity int `validate:"gte=0"`
}

type competitionsDTO struct {
	Count        int                       `json:"count"`
	Competitions []competition.Competition `json:"competitions"`
}

type mergedCompetitionsDTO struct {
	Count        int                       `json:"count"`
	Competitions []competition.Competition `json:"competitions"`
	Sources      map[string]int            `json:"sources"`
	Fetched      map[string]int            `json:"sourcesFetched,omitempty"`
	Degraded     map[string]string         `json:"degraded,omitempty"`
}

type stadiumsDTO struct {
	Count    int               `json:"count"`
	Stadiums []stadium.Stadium `json:"stadiums"`
	Sources  map[string]int    `json:"sources"`
}

type openFootballDTO struct {
	OK        bool            `json:"ok"`
	Message   string          `json:"message,omitempty"`
	Example   string          `json:"example,omitempty"`
	SourceURL string          `json:"sourceUrl,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.catalogService.ListCompetitions(ctx)
	if err != nil {
		h.fail(ctx, w, "list competitions failed", err)
		return
	}

	writeCached(ctx, w, cacheCatalog, competitionsDTO{Count: len(items), Competitions: items})
}

func (h *Handler) GlobalCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalCompetitions")
	defer span.End()

	var query competitionsQuery
	var err error
	values := r.URL.Query()
	if query.Limit, err = queryInt(values, "limit"); err == nil {
		query.Offset, err = queryInt(values, "offset")
	}
	if err == nil {
		err = h.validateRequest(ctx, query)
	}
	if err != nil {
		h.fail(ctx, w, "invalid competitions query", err)
		return
	}

	merged, err := h.catalogService.GlobalCompetitions(ctx, query.Limit, query.Offset)
	if err != nil {
		h.fail(ctx, w, "list global competitions failed", err)
		return
	}

	writeCached(ctx, w, cacheWikidata, mergedCompetitionsDTO{
		Count:        len(merged.Items),
		Competitions: merged.Items,
		Sources:      merged.Sources,
		Fetched:      merged.Fetched,
		Degraded:     merged.Degraded,
	})
}

func (h *Handler) GlobalCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalCatalog")
	defer span.End()

	values := r.URL.Query()
	query := catalogQuery{
		Source:  strings.ToLower(queryString(values, "source")),
		Country: queryString(values, "country"),
		Type:    strings.ToUpper(queryString(values, "type")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid catalog query", err)
		return
	}

	merged, err := h.catalogService.GlobalCatalog(ctx, usecase.CatalogQuery(query))
	if err != nil {
		h.fail(ctx, w, "list global catalog failed", err)
		return
	}

	writeCached(ctx, w, cacheCatalog, mergedCompetitionsDTO{
		Count:        len(merged.Items),
		Competitions: merged.Items,
		Sources:      merged.Sources,
		Fetched:      merged.Fetched,
		Degraded:     merged.Degraded,
	})
}

func (h *Handler) GlobalStadiums(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GlobalStadiums")
	defer span.End()

	var query stadiumsQuery
	var err error
	values := r.URL.Query()
	if query.Limit, err = queryInt(values, "limit"); err == nil {
		if query.Offset, err = queryInt(values, "offset"); err == nil {
			query.MinCapacity, err = queryInt(values, "minCapacity")
		}
	}
	if err == nil {
		err = h.validateRequest(ctx, query)
	}
	if err != nil {
		h.fail(ctx, w, "invalid stadiums query", err)
		return
	}

	merged, err := h.stadiumService.GlobalStadiums(ctx, query.Limit, query.Offset, query.MinCapacity)
	if err != nil {
		h.fail(ctx, w, "list global stadiums failed", err)
		return
	}

	writeCached(ctx, w, cacheWikidata, stadiumsDTO{
		Count:    len(merged.Items),
		Stadiums: merged.Items,
		Sources:  merged.Sources,
	})
}

func (h *Handler) OpenFootballCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenFootballCatalog")
	defer span.End()

	doc, err := h.catalogService.OpenFootballDocument(ctx, queryString(r.URL.Query(), "url"))
	if err != nil {
		h.fail(ctx, w, "fetch openfootball catalog failed", err)
		return
	}
	if !doc.Configured {
		writeCached(ctx, w, cacheNoStore, openFootballDTO{
			OK:      true,
			Message: "no catalog url configured; set OPENFOOTBALL_CATALOG_URL",
			Example: openFootballExample,
		})
		return
	}

	writeCached(ctx, w, cacheCatalog, openFootballDTO{
		OK:        true,
		SourceURL: doc.SourceURL,
		Data:      json.RawMessage(doc.Data),
	})
}
