package minigame

import (
	"sort"
	"time"
)

// SnakeScore is a single mini-game result. The table is append-only.
type SnakeScore struct {
	TournamentID string
	EntityID     string
	Score        int
	Timestamp    time.Time
}

// TopScores returns at most limit scores, best first. Equal scores keep the
// earlier submission ahead. A non-positive limit returns every score.
func TopScores(scores []SnakeScore, limit int) []SnakeScore {
	out := append([]SnakeScore(nil), scores...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
