package leaderboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

// Standing is an entity's cumulative result over days 1..N.
type Standing struct {
	EntityID      string
	TotalPoints   int
	TotalGeoScore int
	DaysPlayed    int
	AvgGeoScore   int
}

// SeriesRow holds every entity's cumulative points at the end of Day, keyed
// by entity display name.
type SeriesRow struct {
	Day    int
	Points map[string]int
}

// CumulativePoints sums the tournament points entityID earned on days 1..uptoDay.
func CumulativePoints(records []score.Record, entities []tournament.Entity, points tournament.PointsTable, entityID string, uptoDay int) (int, error) {
	order := entityOrder(entities)
	if _, ok := order[entityID]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}

	byDay := groupByDay(records)
	total := 0
	for day := 1; day <= uptoDay; day++ {
		ranking, err := rankRecords(byDay[day], order, points)
		if err != nil {
			return 0, err
		}
		for _, entry := range ranking {
			if entry.EntityID == entityID {
				total += entry.TournamentPoints
				break
			}
		}
	}
	return total, nil
}

// Totals builds the overall standing over days 1..uptoDay, sorted by total
// points, then total game score, then configuration order. Entities that
// never scored are still listed.
func Totals(records []score.Record, entities []tournament.Entity, points tournament.PointsTable, uptoDay int) ([]Standing, error) {
	order := entityOrder(entities)
	standings := make([]Standing, len(entities))
	for i, e := range entities {
		standings[i].EntityID = e.EntityID()
	}

	byDay := groupByDay(records)
	for day := 1; day <= uptoDay; day++ {
		ranking, err := rankRecords(byDay[day], order, points)
		if err != nil {
			return nil, err
		}
		for _, entry := range ranking {
			s := &standings[order[entry.EntityID]]
			s.TotalPoints += entry.TournamentPoints
			s.TotalGeoScore += entry.GeoScore
			s.DaysPlayed++
		}
	}

	for i := range standings {
		if standings[i].DaysPlayed > 0 {
			standings[i].AvgGeoScore = int(math.Round(float64(standings[i].TotalGeoScore) / float64(standings[i].DaysPlayed)))
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].TotalGeoScore > standings[j].TotalGeoScore
	})

	return standings, nil
}

// TimeSeries returns one row per day 1..totalDays with every entity's
// running points total.
func TimeSeries(records []score.Record, entities []tournament.Entity, points tournament.PointsTable, totalDays int) ([]SeriesRow, error) {
	order := entityOrder(entities)
	byDay := groupByDay(records)
	running := make([]int, len(entities))

	rows := make([]SeriesRow, 0, max(totalDays, 0))
	for day := 1; day <= totalDays; day++ {
		ranking, err := rankRecords(byDay[day], order, points)
		if err != nil {
			return nil, err
		}
		for _, entry := range ranking {
			running[order[entry.EntityID]] += entry.TournamentPoints
		}

		row := SeriesRow{Day: day, Points: make(map[string]int, len(entities))}
		for i, e := range entities {
			row.Points[e.DisplayName()] = running[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
