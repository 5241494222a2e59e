package leaderboard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

var (
	ErrUnknownEntity = errors.New("score references unknown entity")
	ErrDayOutOfRange = errors.New("score day out of range")
)

// DayRanking is one entity's placement on a single tournament day.
type DayRanking struct {
	EntityID         string
	GeoScore         int
	Rank             int
	TournamentPoints int
}

// RankDay ranks the entities that scored on day using competition ranking:
// equal scores share a rank and the next distinct score skips past the tied
// group. Entities without a record that day are left out. Ties are emitted in
// entity configuration order.
func RankDay(records []score.Record, entities []tournament.Entity, day int, points tournament.PointsTable) ([]DayRanking, error) {
	if day < 1 {
		return nil, fmt.Errorf("%w: day %d", ErrDayOutOfRange, day)
	}

	dayRecords := make([]score.Record, 0, len(entities))
	for _, r := range records {
		if r.Day == day {
			dayRecords = append(dayRecords, r)
		}
	}
	return rankRecords(dayRecords, entityOrder(entities), points)
}

func rankRecords(dayRecords []score.Record, order map[string]int, points tournament.PointsTable) ([]DayRanking, error) {
	dayRecords = score.Latest(dayRecords)

	out := make([]DayRanking, 0, len(dayRecords))
	for _, r := range dayRecords {
		if _, ok := order[r.EntityID]; !ok {
			return nil, fmt.Errorf("%w: %s on day %d", ErrUnknownEntity, r.EntityID, r.Day)
		}
		out = append(out, DayRanking{EntityID: r.EntityID, GeoScore: r.GeoScore})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].GeoScore != out[j].GeoScore {
			return out[i].GeoScore > out[j].GeoScore
		}
		return order[out[i].EntityID] < order[out[j].EntityID]
	})

	for i := range out {
		if i > 0 && out[i].GeoScore == out[i-1].GeoScore {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
		out[i].TournamentPoints = points.For(out[i].Rank)
	}

	return out, nil
}

// CheckRecords reports the first record that cannot belong to t.
func CheckRecords(records []score.Record, t tournament.Tournament) error {
	order := entityOrder(t.Entities)
	for _, r := range records {
		if r.TournamentID != "" && r.TournamentID != t.ID {
			return fmt.Errorf("%w: %s belongs to tournament %s", ErrUnknownEntity, r.EntityID, r.TournamentID)
		}
		if _, ok := order[r.EntityID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEntity, r.EntityID)
		}
		if !t.HasDay(r.Day) {
			return fmt.Errorf("%w: entity %s day %d not in [1,%d]", ErrDayOutOfRange, r.EntityID, r.Day, t.TotalDays)
		}
	}
	return nil
}

func entityOrder(entities []tournament.Entity) map[string]int {
	out := make(map[string]int, len(entities))
	for i, e := range entities {
		out[e.EntityID()] = i
	}
	return out
}

func groupByDay(records []score.Record) map[int][]score.Record {
	out := make(map[int][]score.Record)
	for _, r := range records {
		out[r.Day] = append(out[r.Day], r)
	}
	return out
}
