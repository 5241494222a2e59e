package workbook

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a tournament report as an XLSX document with Standings,
// Daily, Points and Scores sheets.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (Exporter) Workbook(t tournament.Tournament, report leaderboard.Report, records []score.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetStandings); err != nil {
		return nil, crerr.Wrap(err, "rename default sheet")
	}
	if err := writeStandings(f, t, report.Standings); err != nil {
		return nil, err
	}
	if err := writeDaily(f, t, report.Days); err != nil {
		return nil, err
	}
	if err := writePoints(f, t.Points); err != nil {
		return nil, err
	}
	if err := writeScores(f, records); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, crerr.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func writeStandings(f *excelize.File, t tournament.Tournament, standings []leaderboard.Standing) error {
	if err := writeRow(f, SheetStandings, 1, []any{"rank", "entity", "totalPoints", "totalGeoScore", "daysPlayed", "avgGeoScore"}); err != nil {
		return err
	}
	for i, s := range standings {
		if err := writeRow(f, SheetStandings, i+2, []any{
			i + 1,
			entityName(t, s.EntityID),
			s.TotalPoints,
			s.TotalGeoScore,
			s.DaysPlayed,
			s.AvgGeoScore,
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeDaily lays out one row per entity and a geoScore / points column pair
// per day. Days without a score stay blank.
func writeDaily(f *excelize.File, t tournament.Tournament, days []leaderboard.DayResult) error {
	if _, err := f.NewSheet(SheetDaily); err != nil {
		return crerr.Wrapf(err, "create sheet %s", SheetDaily)
	}

	header := []any{"entity"}
	for _, d := range days {
		header = append(header, fmt.Sprintf("day%d_geoScore", d.Day), fmt.Sprintf("day%d_points", d.Day))
	}
	if err := writeRow(f, SheetDaily, 1, header); err != nil {
		return err
	}

	for i, e := range t.Entities {
		row := []any{e.DisplayName()}
		for _, d := range days {
			ranking, ok := findRanking(d.Ranking, e.EntityID())
			if !ok {
				row = append(row, nil, nil)
				continue
			}
			row = append(row, ranking.GeoScore, ranking.TournamentPoints)
		}
		for len(row) > 1 && row[len(row)-1] == nil {
			row = row[:len(row)-1]
		}
		if err := writeRow(f, SheetDaily, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writePoints lists the points table rank by rank, closed by the points
// handed out on a fully played day.
func writePoints(f *excelize.File, points tournament.PointsTable) error {
	if err := ensureSheet(f, SheetPoints, []any{"rank", "points"}); err != nil {
		return err
	}
	ranks := points.Ranks()
	for i, rank := range ranks {
		if err := writeRow(f, SheetPoints, i+2, []any{rank, points.For(rank)}); err != nil {
			return err
		}
	}
	return writeRow(f, SheetPoints, len(ranks)+2, []any{"total", points.Total()})
}

func writeScores(f *excelize.File, records []score.Record) error {
	if err := ensureSheet(f, SheetScores, scoreHeader); err != nil {
		return err
	}
	for i, r := range records {
		if err := writeRow(f, SheetScores, i+2, []any{
			r.EntityID,
			r.Day,
			r.GeoScore,
			formatTimestamp(r.Timestamp),
			r.TournamentID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func findRanking(ranking []leaderboard.DayRanking, entityID string) (leaderboard.DayRanking, bool) {
	for _, r := range ranking {
		if r.EntityID == entityID {
			return r, true
		}
	}
	return leaderboard.DayRanking{}, false
}

func entityName(t tournament.Tournament, entityID string) string {
	if e, ok := t.Entity(entityID); ok {
		return e.DisplayName()
	}
	return entityID
}
