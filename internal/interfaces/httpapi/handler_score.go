package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
)

type submitScoreRequest struct {
	EntityID string   `json:"entity_id" validate:"required,max=64"`
	Day      int      `json:"day" validate:"required,min=1"`
	GeoScore rawScore `json:"geo_score" validate:"required"`
}

func (h *Handler) ListScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScores")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	records, err := h.scoreService.List(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list scores failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(ctx, records))
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	var req submitScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.Submit(ctx, usecase.SubmitScoreInput{
		TournamentID: tournamentID,
		EntityID:     strings.TrimSpace(req.EntityID),
		Day:          req.Day,
		RawScore:     string(req.GeoScore),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "tournament_id", tournamentID, "entity_id", req.EntityID, "day", req.Day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submitScoreResultToDTO(ctx, result))
}

func (h *Handler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteScore")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	entityID := strings.TrimSpace(r.PathValue("entityID"))
	day, err := parseDayPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoreService.Delete(ctx, tournamentID, entityID, day); err != nil {
		h.logger.WarnContext(ctx, "delete score failed", "tournament_id", tournamentID, "entity_id", entityID, "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournamentId": tournamentID,
		"entityId":     entityID,
		"day":          day,
		"deleted":      true,
	})
}

func (h *Handler) RefreshScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshScores")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	records, err := h.scoreService.Refresh(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh scores failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(ctx, records))
}
