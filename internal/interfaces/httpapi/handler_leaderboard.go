package httpapi

import (
	"fmt"
	"net/http"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) GetDayRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDayRanking")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	day, err := parseDayPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.leaderboardService.DayRanking(ctx, tournamentID, day)
	if err != nil {
		h.logger.WarnContext(ctx, "get day ranking failed", "tournament_id", tournamentID, "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dayRankingToDTO(ctx, result))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	uptoDay, err := parseOptionalPositiveInt(r, "up_to_day")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.leaderboardService.Standings(ctx, tournamentID, uptoDay)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "tournament_id", tournamentID, "up_to_day", uptoDay, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, result))
}

func (h *Handler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTimeSeries")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	result, err := h.leaderboardService.TimeSeries(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get time series failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seriesToDTO(ctx, result))
}

func (h *Handler) GetPointsChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPointsChart")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	out, err := h.leaderboardService.RenderChart(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "render chart failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeBinary(ctx, w, "image/png", "", out)
}

func (h *Handler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportWorkbook")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	out, err := h.leaderboardService.ExportWorkbook(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "export workbook failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeBinary(ctx, w, xlsxContentType, fmt.Sprintf("%s-leaderboard.xlsx", tournamentID), out)
}
