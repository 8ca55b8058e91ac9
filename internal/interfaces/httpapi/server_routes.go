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

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLiveStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/fixtures", handler.ListLiveFixtures)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/entries/{entryID}/lineup", handler.GetEntryLineup)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/differentials", handler.GetDifferentials)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/stats", handler.GetGameweekStats)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/snapshots/{gameweek}", handler.GetSnapshot)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/leagues/{leagueID}/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
	// Seeds the previous gameweek from official standings when no snapshot exists yet.
	mux.Handle("POST /v1/internal/snapshots/seed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSeedSnapshotJob)))
	mux.Handle("POST /v1/internal/snapshots/finalize", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFinalizeJob)))
}
