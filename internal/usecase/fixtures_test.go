package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

var fixedNow = time.Date(2024, time.January, 8, 9, 30, 0, 0, time.UTC)

func testTournament() tournament.Tournament {
	return tournament.Tournament{
		ID:           "cred",
		Name:         "CRED GeoGuessr",
		StartDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		TotalDays:    14,
		SkipWeekends: true,
		Entities: []tournament.Entity{
			tournament.Individual{ID: "1", Name: "Antoine"},
			tournament.Individual{ID: "2", Name: "Florian"},
			tournament.Individual{ID: "3", Name: "Irene"},
		},
		Points: tournament.PointsTable{1: 10, 2: 7, 3: 5},
	}
}

type invalidatorStub struct {
	mu    sync.Mutex
	calls []string
}

func (s *invalidatorStub) Invalidate(_ context.Context, tournamentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, tournamentID)
}
