package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/drivers", handler.ListDrivers)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/leagues/{leagueID}/races/{raceID}/draft/order", handler.CreateDraftOrder)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/races/{raceID}/draft/order", handler.RegenerateDraftOrder)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/races/{raceID}/draft/next", handler.GetNextPick)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/races/{raceID}/draft/picks", handler.ListDraftPicks)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/races/{raceID}/draft/picks", handler.SubmitDraftPick)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/races/{raceID}/draft/autopick", handler.AutoPick)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/draft-sweep", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDraftSweepJob)))
	mux.Handle("POST /v1/internal/jobs/season-recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSeasonRecomputeJob)))
}
