package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseAt resolves --at into a UTC calendar date. ISO dates are taken as is,
// anything else goes through the natural-language parser relative to now.
func parseAt(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return dateOnly(now), nil
	}
	if v, err := time.Parse(time.DateOnly, raw); err == nil {
		return v, nil
	}

	result, err := dateParser.Parse(strings.ToLower(raw), now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --at %q: %w", raw, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
	}
	return dateOnly(result.Time), nil
}

func dateOnly(v time.Time) time.Time {
	y, m, d := v.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
