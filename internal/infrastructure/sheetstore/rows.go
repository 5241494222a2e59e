package sheetstore

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet cells come back as JSON numbers or as strings depending on how
// the row was written, so ids and numbers accept both.

type cellString string

func (s *cellString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("decode cell text: %w", err)
		}
		*s = cellString(strings.TrimSpace(unquoted))
		return nil
	}

	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("decode cell %s: %w", data, err)
	}
	*s = cellString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// cellInt is an integer cell. Set is false for null or blank cells.
type cellInt struct {
	Value int
	Set   bool
}

func (n *cellInt) UnmarshalJSON(data []byte) error {
	var text cellString
	if err := text.UnmarshalJSON(data); err != nil {
		return err
	}
	if text == "" {
		*n = cellInt{}
		return nil
	}

	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return fmt.Errorf("decode integer cell %q", string(text))
	}
	*n = cellInt{Value: int(f), Set: true}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp reads a timestamp cell. Unreadable values become the zero
// time so that such rows lose to any dated duplicate.
func parseTimestamp(raw cellString) time.Time {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

type scoreRow struct {
	TournamentID  cellString `json:"tournamentId"`
	EntityID      cellString `json:"entityId"`
	ParticipantID cellString `json:"participantId"`
	Day           cellInt    `json:"day"`
	GeoScore      cellInt    `json:"geoScore"`
	Timestamp     cellString `json:"timestamp"`
}

func (r scoreRow) entityID() string {
	if r.EntityID != "" {
		return string(r.EntityID)
	}
	return string(r.ParticipantID)
}

type messageRow struct {
	TournamentID  cellString `json:"tournamentId"`
	EntityID      cellString `json:"entityId"`
	ParticipantID cellString `json:"participantId"`
	Message       string     `json:"message"`
	Timestamp     cellString `json:"timestamp"`
}

func (r messageRow) entityID() string {
	if r.EntityID != "" {
		return string(r.EntityID)
	}
	return string(r.ParticipantID)
}

type snakeScoreRow struct {
	TournamentID  cellString `json:"tournamentId"`
	EntityID      cellString `json:"entityId"`
	ParticipantID cellString `json:"participantId"`
	Score         cellInt    `json:"score"`
	Timestamp     cellString `json:"timestamp"`
}

func (r snakeScoreRow) entityID() string {
	if r.EntityID != "" {
		return string(r.EntityID)
	}
	return string(r.ParticipantID)
}

// belongsTo reports whether a row tagged with rowTournament is part of
// tournamentID. Untagged rows come from single-tournament sheets.
func belongsTo(rowTournament cellString, tournamentID string) bool {
	return rowTournament == "" || string(rowTournament) == tournamentID
}
