package minigame

import "context"

type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]SnakeScore, error)
	Append(ctx context.Context, score SnakeScore) error
}
