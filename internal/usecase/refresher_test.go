package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	tournamentmock "github.com/riskibarqy/tournament-leaderboard/internal/mocks/domain/tournament"
)

type reloaderStub struct {
	mu     sync.Mutex
	called []string
	fail   map[string]bool
}

func (r *reloaderStub) Reload(_ context.Context, tournamentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.called = append(r.called, tournamentID)
	if r.fail[tournamentID] {
		return errors.New("sheet unreachable")
	}
	return nil
}

func TestRefresher_RefreshAllSkipsArchived(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	reloader := &reloaderStub{fail: map[string]bool{"b": true}}

	tournamentRepo.On("List", ctx).Return([]tournament.Tournament{
		{ID: "a"},
		{ID: "b"},
		{ID: "old", Archived: true},
		{ID: "c"},
	}, nil).Once()

	refresher := NewRefresher(tournamentRepo, reloader, 0, 2, nil)
	summary, err := refresher.RefreshAll(ctx)
	require.NoError(t, err)
	require.Equal(t, RefreshSummary{Tournaments: 3, Succeeded: 2, Failed: 1}, summary)

	sort.Strings(reloader.called)
	require.Equal(t, []string{"a", "b", "c"}, reloader.called)
}

func TestRefresher_RunStopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	tournamentRepo := tournamentmock.NewRepository(t)
	tournamentRepo.On("List", ctx).Return([]tournament.Tournament{}, nil).Run(func(mock.Arguments) { cancel() }).Once()

	refresher := NewRefresher(tournamentRepo, &reloaderStub{}, 0, 1, nil)
	err := refresher.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
