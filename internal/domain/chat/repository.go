package chat

import "context"

// Repository keeps messages in insertion order.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Message, error)
	Append(ctx context.Context, message Message) error
}
