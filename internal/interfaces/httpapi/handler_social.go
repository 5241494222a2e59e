package httpapi

import (
	"net/http"
	"strings"
)

type postMessageRequest struct {
	EntityID string `json:"entity_id" validate:"required,max=64"`
	Message  string `json:"message" validate:"required"`
}

type submitSnakeScoreRequest struct {
	EntityID string `json:"entity_id" validate:"required,max=64"`
	Score    *int   `json:"score" validate:"required,min=0"`
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMessages")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	items, err := h.chatService.List(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list messages failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]messageDTO, 0, len(items))
	for _, item := range items {
		out = append(out, messageToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostMessage")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	var req postMessageRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.chatService.Post(ctx, tournamentID, strings.TrimSpace(req.EntityID), req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "post message failed", "tournament_id", tournamentID, "entity_id", req.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, messageToDTO(ctx, item))
}

func (h *Handler) ListSnakeScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSnakeScores")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	limit, err := parseOptionalPositiveInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.miniGameService.Top(ctx, tournamentID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list snake scores failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]snakeScoreDTO, 0, len(items))
	for _, item := range items {
		out = append(out, snakeScoreToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SubmitSnakeScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSnakeScore")
	defer span.End()

	tournamentID := tournamentIDFromPath(r)
	var req submitSnakeScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.miniGameService.Submit(ctx, tournamentID, strings.TrimSpace(req.EntityID), *req.Score)
	if err != nil {
		h.logger.WarnContext(ctx, "submit snake score failed", "tournament_id", tournamentID, "entity_id", req.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snakeScoreToDTO(ctx, item))
}
