package tournament

import "context"

// Repository exposes the configured tournament catalog.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
}
