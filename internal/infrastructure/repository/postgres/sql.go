package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
)

// integrity constraint violation
const pqClassIntegrity pq.ErrorClass = "23"

// storeError wraps a failed statement. Constraint violations are caller
// bugs; everything else means the database is unavailable.
func storeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == pqClassIntegrity {
		return fmt.Errorf("%s: %s: %w", op, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%w: %s: %w", usecase.ErrDependencyUnavailable, op, err)
}
