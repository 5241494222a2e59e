package leaderboard

import (
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

type DayResult struct {
	Day     int
	Ranking []DayRanking
}

// Report is the full derived view of a tournament over all of its days.
type Report struct {
	Days      []DayResult
	Standings []Standing
	Series    []SeriesRow
}

func BuildReport(records []score.Record, t tournament.Tournament) (Report, error) {
	if err := CheckRecords(records, t); err != nil {
		return Report{}, err
	}

	order := entityOrder(t.Entities)
	byDay := groupByDay(records)
	days := make([]DayResult, 0, t.TotalDays)
	for day := 1; day <= t.TotalDays; day++ {
		ranking, err := rankRecords(byDay[day], order, t.Points)
		if err != nil {
			return Report{}, err
		}
		days = append(days, DayResult{Day: day, Ranking: ranking})
	}

	standings, err := Totals(records, t.Entities, t.Points, t.TotalDays)
	if err != nil {
		return Report{}, err
	}
	series, err := TimeSeries(records, t.Entities, t.Points, t.TotalDays)
	if err != nil {
		return Report{}, err
	}

	return Report{Days: days, Standings: standings, Series: series}, nil
}
