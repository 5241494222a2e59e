package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
)

// SnapshotInvalidator drops a cached score snapshot so the next read hits
// the store.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, tournamentID string)
}

type SubmitScoreInput struct {
	TournamentID string
	EntityID     string
	Day          int
	RawScore     string
}

type SubmitScoreResult struct {
	Record   score.Record
	Adjusted bool
	Snapshot []score.Record
}

type ScoreService struct {
	tournamentRepo tournament.Repository
	scoreRepo      score.Repository
	invalidator    SnapshotInvalidator
	logger         *logging.Logger
	now            func() time.Time
}

// NewScoreService wires the score store. invalidator may be nil when the
// store is read directly.
func NewScoreService(
	tournamentRepo tournament.Repository,
	scoreRepo score.Repository,
	invalidator SnapshotInvalidator,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoreService{
		tournamentRepo: tournamentRepo,
		scoreRepo:      scoreRepo,
		invalidator:    invalidator,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit stores an entity's score for a day, replacing any previous value.
// Non-numeric or out of range input is coerced into [0, MaxDailyScore] and
// reported through Adjusted.
func (s *ScoreService) Submit(ctx context.Context, input SubmitScoreInput) (SubmitScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Submit")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, input.TournamentID)
	if err != nil {
		return SubmitScoreResult{}, err
	}
	entityID, err := requireEntity(t, input.EntityID)
	if err != nil {
		return SubmitScoreResult{}, err
	}
	if !t.HasDay(input.Day) {
		return SubmitScoreResult{}, fmt.Errorf("%w: day must be between 1 and %d", ErrInvalidInput, t.TotalDays)
	}

	value, adjusted := score.ParseGeoScore(input.RawScore)
	if adjusted {
		s.logger.WarnContext(ctx, "score adjusted on submit",
			"tournament_id", t.ID,
			"entity_id", entityID,
			"day", input.Day,
			"raw", strings.TrimSpace(input.RawScore),
			"stored", value,
		)
	}

	record := score.Record{
		TournamentID: t.ID,
		EntityID:     entityID,
		Day:          input.Day,
		GeoScore:     value,
		Timestamp:    s.now().UTC(),
	}
	if err := s.scoreRepo.Upsert(ctx, record); err != nil {
		return SubmitScoreResult{}, fmt.Errorf("upsert score: %w", err)
	}

	result := SubmitScoreResult{Record: record, Adjusted: adjusted}
	snapshot, err := s.reload(ctx, t)
	if err != nil {
		// the write went through; the caller can refresh later
		s.logger.WarnContext(ctx, "re-fetch scores after submit failed", "tournament_id", t.ID, "error", err)
		return result, nil
	}
	result.Snapshot = snapshot
	return result, nil
}

func (s *ScoreService) Delete(ctx context.Context, tournamentID, entityID string, day int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Delete")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return err
	}
	entityID, err = requireEntity(t, entityID)
	if err != nil {
		return err
	}
	if !t.HasDay(day) {
		return fmt.Errorf("%w: day must be between 1 and %d", ErrInvalidInput, t.TotalDays)
	}

	if err := s.scoreRepo.Delete(ctx, t.ID, entityID, day); err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	s.invalidate(ctx, t.ID)
	return nil
}

// List returns the tournament's current score snapshot.
func (s *ScoreService) List(ctx context.Context, tournamentID string) ([]score.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.List")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	return loadSnapshot(ctx, s.scoreRepo, t)
}

// Refresh discards the cached snapshot and reads the store again.
func (s *ScoreService) Refresh(ctx context.Context, tournamentID string) ([]score.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Refresh")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, t)
}

func (s *ScoreService) reload(ctx context.Context, t tournament.Tournament) ([]score.Record, error) {
	s.invalidate(ctx, t.ID)
	return loadSnapshot(ctx, s.scoreRepo, t)
}

func (s *ScoreService) invalidate(ctx context.Context, tournamentID string) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, tournamentID)
	}
}

// loadSnapshot reads and checks a tournament's records. Records that do not
// fit the configuration are a data integrity error.
func loadSnapshot(ctx context.Context, repo score.Repository, t tournament.Tournament) ([]score.Record, error) {
	records, err := repo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	if err := leaderboard.CheckRecords(records, t); err != nil {
		return nil, fmt.Errorf("check scores of tournament %s: %w", t.ID, err)
	}
	return score.Latest(records), nil
}
