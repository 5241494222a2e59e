package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	tournamentService  *usecase.TournamentService
	scoreService       *usecase.ScoreService
	leaderboardService *usecase.LeaderboardService
	chatService        *usecase.ChatService
	miniGameService    *usecase.MiniGameService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	scoreService *usecase.ScoreService,
	leaderboardService *usecase.LeaderboardService,
	chatService *usecase.ChatService,
	miniGameService *usecase.MiniGameService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService:  tournamentService,
		scoreService:       scoreService,
		leaderboardService: leaderboardService,
		chatService:        chatService,
		miniGameService:    miniGameService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func tournamentIDFromPath(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("tournamentID"))
}

func parseDayPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("day"))
	day, err := strconv.Atoi(raw)
	if err != nil || day <= 0 {
		return 0, fmt.Errorf("%w: day must be positive integer", usecase.ErrInvalidInput)
	}
	return day, nil
}

// parseOptionalPositiveInt returns 0 when the query parameter is absent.
func parseOptionalPositiveInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

// parseToday reads the optional ?today=YYYY-MM-DD override.
func parseToday(r *http.Request) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("today"))
	if raw == "" {
		return nil, nil
	}
	v, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: today must use YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return &v, nil
}
