package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

const defaultSnakeTopLimit = 10

type MiniGameService struct {
	tournamentRepo tournament.Repository
	snakeRepo      minigame.Repository
	now            func() time.Time
}

func NewMiniGameService(tournamentRepo tournament.Repository, snakeRepo minigame.Repository) *MiniGameService {
	return &MiniGameService{
		tournamentRepo: tournamentRepo,
		snakeRepo:      snakeRepo,
		now:            time.Now,
	}
}

// Top returns the best snake scores. A non-positive limit uses the default of 10.
func (s *MiniGameService) Top(ctx context.Context, tournamentID string, limit int) ([]minigame.SnakeScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniGameService.Top")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSnakeTopLimit
	}

	scores, err := s.snakeRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list snake scores: %w", err)
	}
	return minigame.TopScores(scores, limit), nil
}

func (s *MiniGameService) Submit(ctx context.Context, tournamentID, entityID string, value int) (minigame.SnakeScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniGameService.Submit")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return minigame.SnakeScore{}, err
	}
	entityID, err = requireEntity(t, entityID)
	if err != nil {
		return minigame.SnakeScore{}, err
	}
	if value < 0 {
		return minigame.SnakeScore{}, fmt.Errorf("%w: score must be >= 0", ErrInvalidInput)
	}

	item := minigame.SnakeScore{
		TournamentID: t.ID,
		EntityID:     entityID,
		Score:        value,
		Timestamp:    s.now().UTC(),
	}
	if err := s.snakeRepo.Append(ctx, item); err != nil {
		return minigame.SnakeScore{}, fmt.Errorf("append snake score: %w", err)
	}
	return item, nil
}
