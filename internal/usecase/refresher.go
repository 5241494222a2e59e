package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
)

const (
	defaultRefreshInterval = 10 * time.Second
	defaultRefreshWorkers  = 4
)

// SnapshotReloader fetches a tournament's scores from the store and swaps
// them into the read model. On failure the previous snapshot stays in place.
type SnapshotReloader interface {
	Reload(ctx context.Context, tournamentID string) error
}

type RefreshSummary struct {
	Tournaments int
	Succeeded   int
	Failed      int
}

// Refresher periodically reloads the score snapshots of every active
// tournament.
type Refresher struct {
	tournamentRepo tournament.Repository
	reloader       SnapshotReloader
	interval       time.Duration
	workers        int
	logger         *logging.Logger
}

func NewRefresher(
	tournamentRepo tournament.Repository,
	reloader SnapshotReloader,
	interval time.Duration,
	workers int,
	logger *logging.Logger,
) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if workers <= 0 {
		workers = defaultRefreshWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Refresher{
		tournamentRepo: tournamentRepo,
		reloader:       reloader,
		interval:       interval,
		workers:        workers,
		logger:         logger,
	}
}

// Run refreshes immediately and then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		summary, err := r.RefreshAll(ctx)
		if err != nil {
			r.logger.WarnContext(ctx, "score refresh round failed", "error", err)
		} else if summary.Failed > 0 {
			r.logger.WarnContext(ctx, "score refresh round finished with failures",
				"tournaments", summary.Tournaments,
				"failed", summary.Failed,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Refresher) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Refresher.RefreshAll", attribute.Int("refresh.workers", r.workers))
	defer span.End()

	items, err := r.tournamentRepo.List(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("list tournaments: %w", err)
	}

	active := make([]string, 0, len(items))
	for _, t := range items {
		if !t.Archived {
			active = append(active, t.ID)
		}
	}
	summary := RefreshSummary{Tournaments: len(active)}
	if len(active) == 0 {
		return summary, nil
	}

	pool, err := ants.NewPool(min(r.workers, len(active)))
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var succeeded atomic.Int32
	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, tournamentID := range active {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := r.reloader.Reload(ctx, tournamentID); err != nil {
				failed.Add(1)
				r.logger.WarnContext(ctx, "reload score snapshot failed", "tournament_id", tournamentID, "error", err)
				return
			}
			succeeded.Add(1)
		}); err != nil {
			workers.Done()
			return RefreshSummary{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	summary.Succeeded = int(succeeded.Load())
	summary.Failed = int(failed.Load())
	return summary, nil
}
