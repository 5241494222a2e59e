package score

import (
	"strconv"
	"strings"
	"time"
)

// MaxDailyScore is the best possible single-day game score.
const MaxDailyScore = 15000

// Record is one entity's game score for one tournament day.
type Record struct {
	TournamentID string
	EntityID     string
	Day          int
	GeoScore     int
	Timestamp    time.Time
}

// Key identifies the single record slot of an entity on a day.
type Key struct {
	EntityID string
	Day      int
}

func (r Record) Key() Key {
	return Key{EntityID: r.EntityID, Day: r.Day}
}

// Latest collapses duplicate (entity, day) records, keeping the newest
// timestamp. Order of first appearance is preserved.
func Latest(records []Record) []Record {
	out := make([]Record, 0, len(records))
	index := make(map[Key]int, len(records))
	for _, r := range records {
		if pos, ok := index[r.Key()]; ok {
			if !r.Timestamp.Before(out[pos].Timestamp) {
				out[pos] = r
			}
			continue
		}
		index[r.Key()] = len(out)
		out = append(out, r)
	}
	return out
}

// Clamp bounds v to [0, MaxDailyScore] and reports whether it changed.
func Clamp(v int) (int, bool) {
	switch {
	case v < 0:
		return 0, true
	case v > MaxDailyScore:
		return MaxDailyScore, true
	default:
		return v, false
	}
}

// ParseGeoScore reads a user-entered score leniently: the leading integer is
// used, anything non-numeric becomes 0, and the result is clamped. adjusted
// reports that the stored value differs from what was typed.
func ParseGeoScore(raw string) (value int, adjusted bool) {
	trimmed := strings.TrimSpace(raw)
	digits := leadingInteger(trimmed)
	if digits == "" || digits == "-" || digits == "+" {
		return 0, true
	}

	parsed, err := strconv.Atoi(digits)
	if err != nil {
		// only range errors reach here
		if strings.HasPrefix(digits, "-") {
			return 0, true
		}
		return MaxDailyScore, true
	}

	value, adjusted = Clamp(parsed)
	if digits != trimmed {
		adjusted = true
	}
	return value, adjusted
}

func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
