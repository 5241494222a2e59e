package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
)

type ScoreRepository struct {
	mu    sync.RWMutex
	items map[string][]score.Record
}

func NewScoreRepository(records ...score.Record) *ScoreRepository {
	r := &ScoreRepository{items: make(map[string][]score.Record)}
	for _, rec := range records {
		r.upsert(rec)
	}
	return r
}

func (r *ScoreRepository) ListByTournament(_ context.Context, tournamentID string) ([]score.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]score.Record(nil), r.items[tournamentID]...), nil
}

func (r *ScoreRepository) Upsert(_ context.Context, record score.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsert(record)
	return nil
}

func (r *ScoreRepository) Delete(_ context.Context, tournamentID, entityID string, day int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.items[tournamentID]
	key := score.Key{EntityID: entityID, Day: day}
	for i := range records {
		if records[i].Key() == key {
			r.items[tournamentID] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *ScoreRepository) upsert(record score.Record) {
	records := r.items[record.TournamentID]
	for i := range records {
		if records[i].Key() == record.Key() {
			records[i] = record
			return
		}
	}
	r.items[record.TournamentID] = append(records, record)
}
