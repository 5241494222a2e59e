package httpapi

import (
	"net/http"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	items, err := h.tournamentService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentToSummaryDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(ctx, item))
}

func (h *Handler) GetCurrentDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentDay")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	today, err := parseToday(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	day, err := h.tournamentService.CurrentDay(ctx, tournamentID, today)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve current day failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, currentDayDTO{TournamentID: tournamentID, CurrentDay: day})
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	today, err := parseToday(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.leaderboardService.Overview(ctx, tournamentID, today)
	if err != nil {
		h.logger.WarnContext(ctx, "get overview failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(ctx, overview))
}
