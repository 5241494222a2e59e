package leaderboard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
)

func sampleRecords() []score.Record {
	return []score.Record{
		rec("A", 1, 5000), rec("B", 1, 4000), rec("C", 1, 4000), rec("D", 1, 1000),
		rec("B", 2, 4500), rec("A", 2, 2000),
		rec("C", 3, 3001), rec("A", 3, 3000),
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	got, err := Totals(sampleRecords(), testEntities, testPoints, 3)
	require.NoError(t, err)

	want := []Standing{
		{EntityID: "A", TotalPoints: 24, TotalGeoScore: 10000, DaysPlayed: 3, AvgGeoScore: 3333},
		// B and C tie on points, B has the larger game score total
		{EntityID: "B", TotalPoints: 17, TotalGeoScore: 8500, DaysPlayed: 2, AvgGeoScore: 4250},
		{EntityID: "C", TotalPoints: 17, TotalGeoScore: 7001, DaysPlayed: 2, AvgGeoScore: 3501},
		{EntityID: "D", TotalPoints: 4, TotalGeoScore: 1000, DaysPlayed: 1, AvgGeoScore: 1000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestTotalsUpToDay(t *testing.T) {
	t.Parallel()

	got, err := Totals(sampleRecords(), testEntities, testPoints, 1)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, "A", got[0].EntityID)
	require.Equal(t, 10, got[0].TotalPoints)
	require.Equal(t, 1, got[0].DaysPlayed)
}

func TestTotalsEntityWithoutScores(t *testing.T) {
	t.Parallel()

	records := []score.Record{rec("A", 1, 100), rec("B", 1, 200), rec("C", 2, 50)}
	got, err := Totals(records, testEntities, testPoints, 14)
	require.NoError(t, err)

	last := got[len(got)-1]
	require.Equal(t, Standing{EntityID: "D"}, last)
}

func TestTotalsEmptyDayLeavesTotalsUnchanged(t *testing.T) {
	t.Parallel()

	withGap := append(sampleRecords(), rec("A", 5, 100))
	before, err := Totals(withGap, testEntities, testPoints, 3)
	require.NoError(t, err)
	after, err := Totals(withGap, testEntities, testPoints, 4)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAverageRoundsHalfUp(t *testing.T) {
	t.Parallel()

	records := []score.Record{rec("A", 1, 1), rec("A", 2, 2)}
	got, err := Totals(records, testEntities, testPoints, 2)
	require.NoError(t, err)
	require.Equal(t, 2, got[0].AvgGeoScore)
}

func TestCumulativePointsMonotonic(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	for _, e := range testEntities {
		prev := 0
		for day := 0; day <= 4; day++ {
			got, err := CumulativePoints(records, testEntities, testPoints, e.EntityID(), day)
			require.NoError(t, err)
			if got < prev {
				t.Fatalf("%s: cumulative points dropped from %d to %d on day %d", e.EntityID(), prev, got, day)
			}
			prev = got
		}
	}

	got, err := CumulativePoints(records, testEntities, testPoints, "A", 3)
	require.NoError(t, err)
	require.Equal(t, 24, got)

	_, err = CumulativePoints(records, testEntities, testPoints, "nobody", 3)
	require.True(t, errors.Is(err, ErrUnknownEntity))
}

func TestTimeSeries(t *testing.T) {
	t.Parallel()

	rows, err := TimeSeries(sampleRecords(), testEntities, testPoints, 4)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	want := []SeriesRow{
		{Day: 1, Points: map[string]int{"Alice": 10, "Bob": 7, "Carol": 7, "Dave": 4}},
		{Day: 2, Points: map[string]int{"Alice": 17, "Bob": 17, "Carol": 7, "Dave": 4}},
		{Day: 3, Points: map[string]int{"Alice": 24, "Bob": 17, "Carol": 17, "Dave": 4}},
		{Day: 4, Points: map[string]int{"Alice": 24, "Bob": 17, "Carol": 17, "Dave": 4}},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregationPropagatesUnknownEntity(t *testing.T) {
	t.Parallel()

	records := append(sampleRecords(), rec("ghost", 2, 1))
	_, err := Totals(records, testEntities, testPoints, 3)
	require.ErrorIs(t, err, ErrUnknownEntity)
	_, err = TimeSeries(records, testEntities, testPoints, 3)
	require.ErrorIs(t, err, ErrUnknownEntity)
}
