package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

type TournamentService struct {
	tournamentRepo tournament.Repository
	now            func() time.Time
}

func NewTournamentService(tournamentRepo tournament.Repository) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	return getTournament(ctx, s.tournamentRepo, tournamentID)
}

// CurrentDay resolves today's tournament day. A nil today means the service clock.
func (s *TournamentService) CurrentDay(ctx context.Context, tournamentID string, today *time.Time) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CurrentDay")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return 0, err
	}

	at := s.now()
	if today != nil {
		at = *today
	}
	return t.CurrentDay(at), nil
}

func getTournament(ctx context.Context, repo tournament.Repository, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, exists, err := repo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	tagTournament(ctx, t.ID)
	return t, nil
}

func requireEntity(t tournament.Tournament, entityID string) (string, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return "", fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}
	if _, ok := t.Entity(entityID); !ok {
		return "", fmt.Errorf("%w: entity %s is not part of tournament %s", ErrInvalidInput, entityID, t.ID)
	}
	return entityID, nil
}
