package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
)

type SnakeScoreRepository struct {
	mu    sync.RWMutex
	items map[string][]minigame.SnakeScore
}

func NewSnakeScoreRepository() *SnakeScoreRepository {
	return &SnakeScoreRepository{items: make(map[string][]minigame.SnakeScore)}
}

func (r *SnakeScoreRepository) ListByTournament(_ context.Context, tournamentID string) ([]minigame.SnakeScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]minigame.SnakeScore(nil), r.items[tournamentID]...), nil
}

func (r *SnakeScoreRepository) Append(_ context.Context, item minigame.SnakeScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.TournamentID] = append(r.items[item.TournamentID], item)
	return nil
}
