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

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/current-day", handler.GetCurrentDay)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/overview", handler.GetOverview)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/scores", handler.ListScores)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/messages", handler.ListMessages)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/snake-scores", handler.ListSnakeScores)
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/days/{day}/ranking", handler.GetDayRanking)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/timeseries", handler.GetTimeSeries)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/chart.png", handler.GetPointsChart)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/export.xlsx", handler.ExportWorkbook)
}

// registerWriteRoutes mounts every mutating endpoint behind the per-IP limiter.
func registerWriteRoutes(mux *http.ServeMux, handler *Handler, limiter *WriteLimiter) {
	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitWrites(limiter, fn)
	}

	mux.Handle("POST /v1/tournaments/{tournamentID}/scores", limited(handler.SubmitScore))
	mux.Handle("DELETE /v1/tournaments/{tournamentID}/scores/{entityID}/days/{day}", limited(handler.DeleteScore))
	mux.Handle("POST /v1/tournaments/{tournamentID}/refresh", limited(handler.RefreshScores))
	mux.Handle("POST /v1/tournaments/{tournamentID}/messages", limited(handler.PostMessage))
	mux.Handle("POST /v1/tournaments/{tournamentID}/snake-scores", limited(handler.SubmitSnakeScore))
}
