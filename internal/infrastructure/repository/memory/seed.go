package memory

import (
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

const TournamentIDCred = "cred-2025"

// SeedTournaments is the catalog used when no tournament file is configured.
func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:        TournamentIDCred,
			Name:      "CRED Doctoral Lab Championship",
			StartDate: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
			TotalDays: 14,
			Entities: []tournament.Entity{
				tournament.Individual{ID: "1", Name: "Antoine", Color: "#ef4444"},
				tournament.Individual{ID: "2", Name: "Florian", Color: "#f97316"},
				tournament.Individual{ID: "3", Name: "Irene", Color: "#eab308"},
				tournament.Individual{ID: "4", Name: "Charlie", Color: "#22c55e"},
				tournament.Individual{ID: "5", Name: "Illan", Color: "#06b6d4"},
				tournament.Individual{ID: "6", Name: "Romane", Color: "#3b82f6"},
				tournament.Individual{ID: "7", Name: "Enora", Color: "#8b5cf6"},
				tournament.Individual{ID: "8", Name: "Octavien", Color: "#ec4899"},
			},
			Points: tournament.PointsTable{1: 10, 2: 7, 3: 5, 4: 4, 5: 3, 6: 2, 7: 1, 8: 1},
		},
	}
}
