package cache

import (
	"context"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	basecache "github.com/riskibarqy/tournament-leaderboard/internal/platform/cache"
)

// ScoreRepository keeps the last fetched snapshot of every tournament in
// memory. Reads are served from the snapshot until it is invalidated,
// reloaded or expires.
type ScoreRepository struct {
	next  score.Repository
	cache *basecache.Store[[]score.Record]
}

func NewScoreRepository(next score.Repository, cache *basecache.Store[[]score.Record]) *ScoreRepository {
	return &ScoreRepository{next: next, cache: cache}
}

func (r *ScoreRepository) ListByTournament(ctx context.Context, tournamentID string) ([]score.Record, error) {
	items, err := r.cache.GetOrLoad(ctx, scoreListKey(tournamentID), func(ctx context.Context) ([]score.Record, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]score.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]score.Record(nil), items...), nil
}

func (r *ScoreRepository) Upsert(ctx context.Context, record score.Record) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.Invalidate(ctx, record.TournamentID)
	return nil
}

func (r *ScoreRepository) Delete(ctx context.Context, tournamentID, entityID string, day int) error {
	if err := r.next.Delete(ctx, tournamentID, entityID, day); err != nil {
		return err
	}
	r.Invalidate(ctx, tournamentID)
	return nil
}

// Invalidate drops the snapshot so the next read goes to the store.
func (r *ScoreRepository) Invalidate(ctx context.Context, tournamentID string) {
	r.cache.Delete(ctx, scoreListKey(tournamentID))
}

// Reload fetches a fresh snapshot and swaps it in. On failure the previous
// snapshot stays in place. A write that lands while the fetch is running
// wins over the fetched snapshot.
func (r *ScoreRepository) Reload(ctx context.Context, tournamentID string) error {
	key := scoreListKey(tournamentID)
	gen := r.cache.Generation(key)
	items, err := r.next.ListByTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	r.cache.SetIfGeneration(ctx, key, append([]score.Record(nil), items...), gen)
	return nil
}

func scoreListKey(tournamentID string) string {
	return "score:list:" + tournamentID
}
