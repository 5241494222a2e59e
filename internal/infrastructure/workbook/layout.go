// Package workbook keeps tournament data in a local XLSX file laid out like
// the remote score sheet, and renders leaderboard exports.
package workbook

import (
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

const (
	SheetScores      = "Scores"
	SheetMessages    = "Messages"
	SheetSnakeScores = "SnakeScores"
	SheetStandings   = "Standings"
	SheetDaily       = "Daily"
	SheetPoints      = "Points"
)

var (
	scoreHeader      = []any{"entityId", "day", "geoScore", "timestamp", "tournamentId"}
	messageHeader    = []any{"entityId", "message", "timestamp", "tournamentId"}
	snakeScoreHeader = []any{"entityId", "score", "timestamp", "tournamentId"}
)

// ensureSheet creates name with header when the workbook lacks it.
func ensureSheet(f *excelize.File, name string, header []any) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return crerr.Wrapf(err, "look up sheet %s", name)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return crerr.Wrapf(err, "create sheet %s", name)
	}
	return writeRow(f, name, 1, header)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return crerr.Wrapf(err, "cell name for row %d", row)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return crerr.Wrapf(err, "write %s row %d", sheet, row)
	}
	return nil
}

// dataRows returns the rows below the header, keeping their 1-based sheet
// row numbers.
func dataRows(f *excelize.File, sheet string) ([]sheetRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, crerr.Wrapf(err, "read sheet %s", sheet)
	}

	out := make([]sheetRow, 0, len(rows))
	for i, cells := range rows {
		if i == 0 {
			continue
		}
		out = append(out, sheetRow{number: i + 1, cells: cells})
	}
	return out, nil
}

type sheetRow struct {
	number int
	cells  []string
}

func (r sheetRow) cell(col int) string {
	if col >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[col])
}

func (r sheetRow) int(col int) (int, error) {
	raw := r.cell(col)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, crerr.Newf("row %d column %d: %q is not an integer", r.number, col+1, raw)
	}
	return n, nil
}

func (r sheetRow) time(col int) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, r.cell(col))
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// belongsTo reports whether the row is part of tournamentID. Rows without a
// tournament column come from single-tournament files.
func (r sheetRow) belongsTo(col int, tournamentID string) bool {
	id := r.cell(col)
	return id == "" || id == tournamentID
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}
