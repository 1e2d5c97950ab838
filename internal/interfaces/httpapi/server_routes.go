package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /api/competitions_global", handler.GlobalCompetitions)
	mux.HandleFunc("GET /api/catalog_global", handler.GlobalCatalog)
	mux.HandleFunc("GET /api/catalog", handler.OpenFootballCatalog)
	mux.HandleFunc("GET /api/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/leagues_global", handler.GlobalLeagues)
	mux.HandleFunc("GET /api/league_teams", handler.LeagueTeams)
	mux.HandleFunc("GET /api/teams_global", handler.GlobalTeams)
	mux.HandleFunc("GET /api/search_global", handler.SearchGlobal)
	mux.HandleFunc("GET /api/stadiums_global", handler.GlobalStadiums)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/matches_global", handler.GlobalMatches)
	mux.HandleFunc("GET /api/livescores", handler.Livescores)
	mux.HandleFunc("GET /api/team_history", handler.TeamHistory)
}

func registerMediaRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/crest", handler.Crest)
}
