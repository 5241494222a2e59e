package tournament

import "time"

// CurrentDay maps a calendar date to the tournament's 1-based day index.
// Counted days are those from StartDate (inclusive) up to today (exclusive),
// weekdays only when SkipWeekends is set. The result is clamped to
// [1, TotalDays]; any date before StartDate is day 1.
func (t Tournament) CurrentDay(today time.Time) int {
	if t.TotalDays < 1 {
		return 1
	}

	start := civilDate(t.StartDate)
	end := civilDate(today)
	if end.Before(start) {
		return 1
	}

	count := 0
	for d := start; d.Before(end) && count < t.TotalDays; d = d.AddDate(0, 0, 1) {
		if t.SkipWeekends && isWeekend(d) {
			continue
		}
		count++
	}

	if count < 1 {
		return 1
	}
	if count > t.TotalDays {
		return t.TotalDays
	}
	return count
}

// civilDate drops the clock and zone so only the calendar date is compared.
func civilDate(v time.Time) time.Time {
	y, m, d := v.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
