package score

import "context"

// Repository is the score store of every tournament. Upsert replaces the
// record sharing the same tournament, entity and day.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Record, error)
	Upsert(ctx context.Context, record Record) error
	Delete(ctx context.Context, tournamentID, entityID string, day int) error
}
