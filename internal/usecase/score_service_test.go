package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	scoremock "github.com/riskibarqy/tournament-leaderboard/internal/mocks/domain/score"
	tournamentmock "github.com/riskibarqy/tournament-leaderboard/internal/mocks/domain/tournament"
)

func newScoreServiceUnderTest(t *testing.T) (*ScoreService, *tournamentmock.Repository, *scoremock.Repository, *invalidatorStub) {
	t.Helper()

	tournamentRepo := tournamentmock.NewRepository(t)
	scoreRepo := scoremock.NewRepository(t)
	invalidator := &invalidatorStub{}
	svc := NewScoreService(tournamentRepo, scoreRepo, invalidator, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, tournamentRepo, scoreRepo, invalidator
}

func TestScoreService_SubmitUpsertsAndRefetches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, invalidator := newScoreServiceUnderTest(t)
	tr := testTournament()

	stored := score.Record{TournamentID: "cred", EntityID: "2", Day: 3, GeoScore: 12500, Timestamp: fixedNow}
	tournamentRepo.On("GetByID", ctx, "cred").Return(tr, true, nil).Once()
	scoreRepo.On("Upsert", ctx, stored).Return(nil).Once()
	scoreRepo.On("ListByTournament", ctx, "cred").Return([]score.Record{stored}, nil).Once()

	got, err := svc.Submit(ctx, SubmitScoreInput{TournamentID: " cred ", EntityID: "2", Day: 3, RawScore: "12500"})
	require.NoError(t, err)
	require.Equal(t, stored, got.Record)
	require.False(t, got.Adjusted)
	require.Len(t, got.Snapshot, 1)
	require.Equal(t, []string{"cred"}, invalidator.calls)
}

func TestScoreService_SubmitClampsOutOfRangeScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, _ := newScoreServiceUnderTest(t)

	tournamentRepo.On("GetByID", ctx, "cred").Return(testTournament(), true, nil).Once()
	scoreRepo.
		On("Upsert", ctx, mock.MatchedBy(func(r score.Record) bool { return r.GeoScore == score.MaxDailyScore })).
		Return(nil).
		Once()
	scoreRepo.On("ListByTournament", ctx, "cred").Return([]score.Record{}, nil).Once()

	got, err := svc.Submit(ctx, SubmitScoreInput{TournamentID: "cred", EntityID: "1", Day: 1, RawScore: "99999"})
	require.NoError(t, err)
	require.True(t, got.Adjusted)
	require.Equal(t, score.MaxDailyScore, got.Record.GeoScore)
}

func TestScoreService_SubmitValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input SubmitScoreInput
		found bool
		want  error
	}{
		{name: "blank tournament", input: SubmitScoreInput{EntityID: "1", Day: 1}, want: ErrInvalidInput},
		{name: "unknown tournament", input: SubmitScoreInput{TournamentID: "nope", EntityID: "1", Day: 1}, want: ErrNotFound},
		{name: "unknown entity", input: SubmitScoreInput{TournamentID: "cred", EntityID: "99", Day: 1}, found: true, want: ErrInvalidInput},
		{name: "day zero", input: SubmitScoreInput{TournamentID: "cred", EntityID: "1", Day: 0}, found: true, want: ErrInvalidInput},
		{name: "day past end", input: SubmitScoreInput{TournamentID: "cred", EntityID: "1", Day: 15}, found: true, want: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			svc, tournamentRepo, _, _ := newScoreServiceUnderTest(t)
			if tc.input.TournamentID != "" {
				found := tournament.Tournament{}
				if tc.found {
					found = testTournament()
				}
				tournamentRepo.On("GetByID", ctx, tc.input.TournamentID).Return(found, tc.found, nil).Once()
			}

			_, err := svc.Submit(ctx, tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestScoreService_SubmitPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, invalidator := newScoreServiceUnderTest(t)

	tournamentRepo.On("GetByID", ctx, "cred").Return(testTournament(), true, nil).Once()
	scoreRepo.On("Upsert", ctx, mock.Anything).Return(ErrDependencyUnavailable).Once()

	_, err := svc.Submit(ctx, SubmitScoreInput{TournamentID: "cred", EntityID: "1", Day: 1, RawScore: "10"})
	require.ErrorIs(t, err, ErrDependencyUnavailable)
	require.Empty(t, invalidator.calls)
}

func TestScoreService_SubmitSucceedsWhenRefetchFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, _ := newScoreServiceUnderTest(t)

	tournamentRepo.On("GetByID", ctx, "cred").Return(testTournament(), true, nil).Once()
	scoreRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	scoreRepo.On("ListByTournament", ctx, "cred").Return(nil, errors.New("timeout")).Once()

	got, err := svc.Submit(ctx, SubmitScoreInput{TournamentID: "cred", EntityID: "1", Day: 2, RawScore: "4000"})
	require.NoError(t, err)
	require.Nil(t, got.Snapshot)
	require.Equal(t, 4000, got.Record.GeoScore)
}

func TestScoreService_ListRejectsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, _ := newScoreServiceUnderTest(t)

	tournamentRepo.On("GetByID", ctx, "cred").Return(testTournament(), true, nil).Once()
	scoreRepo.
		On("ListByTournament", ctx, "cred").
		Return([]score.Record{{EntityID: "ghost", Day: 1, GeoScore: 1}}, nil).
		Once()

	_, err := svc.List(ctx, "cred")
	require.ErrorIs(t, err, leaderboard.ErrUnknownEntity)
}

func TestScoreService_DeleteInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, invalidator := newScoreServiceUnderTest(t)

	tournamentRepo.On("GetByID", ctx, "cred").Return(testTournament(), true, nil).Once()
	scoreRepo.On("Delete", ctx, "cred", "3", 4).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, "cred", "3", 4))
	require.Equal(t, []string{"cred"}, invalidator.calls)
}

func TestScoreService_RefreshInvalidatesThenReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tournamentRepo, scoreRepo, invalidator := newScoreServiceUnderTest(t)

	tournamentRepo.On("GetByID", ctx, "cred").Return(testTournament(), true, nil).Once()
	scoreRepo.
		On("ListByTournament", ctx, "cred").
		Return([]score.Record{{TournamentID: "cred", EntityID: "1", Day: 1, GeoScore: 10}}, nil).
		Once()

	got, err := svc.Refresh(ctx, "cred")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, []string{"cred"}, invalidator.calls)
}
