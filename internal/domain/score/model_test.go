package score

import (
	"testing"
	"time"
)

func TestParseGeoScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw          string
		want         int
		wantAdjusted bool
	}{
		{raw: "4200", want: 4200},
		{raw: " 4200 ", want: 4200},
		{raw: "+12", want: 12},
		{raw: "0", want: 0},
		{raw: "15000", want: 15000},
		{raw: "15001", want: MaxDailyScore, wantAdjusted: true},
		{raw: "-5", want: 0, wantAdjusted: true},
		{raw: "abc", want: 0, wantAdjusted: true},
		{raw: "", want: 0, wantAdjusted: true},
		{raw: "1234.7", want: 1234, wantAdjusted: true},
		{raw: "99999999999999999999999", want: MaxDailyScore, wantAdjusted: true},
	}

	for _, tc := range tests {
		got, adjusted := ParseGeoScore(tc.raw)
		if got != tc.want || adjusted != tc.wantAdjusted {
			t.Fatalf("ParseGeoScore(%q) = (%d, %v), want (%d, %v)", tc.raw, got, adjusted, tc.want, tc.wantAdjusted)
		}
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	if v, adjusted := Clamp(20000); v != MaxDailyScore || !adjusted {
		t.Fatalf("expected clamp to max, got %d %v", v, adjusted)
	}
	if v, adjusted := Clamp(-1); v != 0 || !adjusted {
		t.Fatalf("expected clamp to 0, got %d %v", v, adjusted)
	}
	if v, adjusted := Clamp(7000); v != 7000 || adjusted {
		t.Fatalf("expected untouched value, got %d %v", v, adjusted)
	}
}

func TestLatestKeepsNewestPerKey(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	records := []Record{
		{EntityID: "1", Day: 1, GeoScore: 100, Timestamp: base},
		{EntityID: "2", Day: 1, GeoScore: 200, Timestamp: base},
		{EntityID: "1", Day: 1, GeoScore: 300, Timestamp: base.Add(time.Minute)},
		{EntityID: "1", Day: 1, GeoScore: 50, Timestamp: base.Add(-time.Minute)},
	}

	got := Latest(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].EntityID != "1" || got[0].GeoScore != 300 {
		t.Fatalf("expected newest record for entity 1, got %+v", got[0])
	}
	if got[1].EntityID != "2" {
		t.Fatalf("expected entity 2 second, got %+v", got[1])
	}
}
