package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timesheet/internal/workdate"
	"github.com/julianstephens/timesheet/internal/worklog"
)

var (
	rules  = workdate.DefaultRules()
	moscow = rules.Location()
)

func findDay(t *testing.T, days []Day, key string) Day {
	t.Helper()
	for _, d := range days {
		if d.DateKey == key {
			return d
		}
	}
	t.Fatalf("day %s not in grid", key)
	return Day{}
}

func TestBuildDays_AlwaysFortyTwoFromMonday(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			target := time.Date(year, month, 15, 12, 0, 0, 0, moscow)
			days := BuildDays(target, nil, rules, target)

			require.Len(t, days, Cells, "%s", target.Format("2006-01"))

			start, err := workdate.ParseDateKey(days[0].DateKey, moscow)
			require.NoError(t, err)
			assert.Equal(t, time.Monday, start.Weekday(), "%s", target.Format("2006-01"))

			first := time.Date(year, month, 1, 0, 0, 0, 0, moscow)
			assert.False(t, start.After(first))
			assert.True(t, first.Sub(start) < 7*24*time.Hour)

			for i := 1; i < len(days); i++ {
				prev, _ := workdate.ParseDateKey(days[i-1].DateKey, moscow)
				cur, _ := workdate.ParseDateKey(days[i].DateKey, moscow)
				assert.Equal(t, prev.AddDate(0, 0, 1), cur, "consecutive days")
			}
		}
	}
}

func TestBuildDays_October2024(t *testing.T) {
	agg := worklog.NewAggregator(rules)
	summaries := agg.GroupByDate([]worklog.Worklog{
		{ID: 1, Start: "2024-10-01T09:00Z", Duration: "PT2H"},
		{ID: 2, Start: "2024-10-01T14:00Z", Duration: "PT1H30M"},
		{ID: 3, Start: "2024-10-03T09:00Z", Duration: "PT30M"},
	})
	now := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	days := BuildDays(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), summaries, rules, now)
	weeks := ChunkByWeek(days)

	require.Len(t, weeks, Weeks)
	for _, week := range weeks {
		assert.Len(t, week, DaysPerWeek)
	}

	assert.Equal(t, "2024-09-30", days[0].DateKey)
	assert.False(t, days[0].IsCurrentMonth)
	assert.Equal(t, 30, days[0].Label)
	assert.Equal(t, "2024-11-10", days[41].DateKey)

	oct1 := findDay(t, days, "2024-10-01")
	assert.Equal(t, 210, oct1.TotalMinutes)
	assert.True(t, oct1.IsCurrentMonth)
	assert.True(t, oct1.IsToday)
	assert.Equal(t, 1, oct1.Label)

	assert.Equal(t, 30, findDay(t, days, "2024-10-03").TotalMinutes)

	withTotals := 0
	today := 0
	for _, d := range days {
		if d.TotalMinutes > 0 {
			withTotals++
		}
		if d.IsToday {
			today++
		}
	}
	assert.Equal(t, 2, withTotals)
	assert.Equal(t, 1, today)

	assert.True(t, findDay(t, days, "2024-10-31").IsCurrentMonth)
	assert.False(t, findDay(t, days, "2024-11-01").IsCurrentMonth)
}

func TestBuildDays_SameGridInUTCAndTrackerZone(t *testing.T) {
	now := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)
	utc := BuildDays(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), nil, rules, now)
	local := BuildDays(time.Date(2024, 10, 1, 0, 0, 0, 0, moscow), nil, rules, now)

	assert.Equal(t, utc, local)
}

func TestBuildDays_KeysMatchLabelsInAnyZone(t *testing.T) {
	now := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)
	summaries := worklog.Summaries{"2024-10-01": {DateKey: "2024-10-01", TotalMinutes: 60}}
	want := BuildDays(time.Date(2024, 10, 1, 0, 0, 0, 0, moscow), summaries, rules, now)

	for _, zone := range []*time.Location{
		time.FixedZone("UTC+10", 10*60*60),
		time.FixedZone("UTC+14", 14*60*60),
		time.FixedZone("UTC-8", -8*60*60),
	} {
		t.Run(zone.String(), func(t *testing.T) {
			days := BuildDays(time.Date(2024, 10, 1, 0, 0, 0, 0, zone), summaries, rules, now)
			assert.Equal(t, want, days)

			first := findDay(t, days, "2024-10-01")
			assert.Equal(t, 1, first.Label)
			assert.True(t, first.IsCurrentMonth)
			assert.Equal(t, 60, first.TotalMinutes)
		})
	}
}

func TestBuildDays_MonthStartingOnMonday(t *testing.T) {
	// April 2024 starts on a Monday: no leading days, two trailing weeks.
	days := BuildDays(time.Date(2024, 4, 1, 0, 0, 0, 0, moscow), nil, rules, time.Time{})

	assert.Equal(t, "2024-04-01", days[0].DateKey)
	assert.True(t, days[0].IsCurrentMonth)
	assert.Equal(t, "2024-05-12", days[41].DateKey)

	inMonth := 0
	for _, d := range days {
		if d.IsCurrentMonth {
			inMonth++
		}
	}
	assert.Equal(t, 30, inMonth)
}

func TestBuildDays_ShortFebruary(t *testing.T) {
	// February 2021 starts on Monday and fits in exactly four weeks.
	days := BuildDays(time.Date(2021, 2, 10, 0, 0, 0, 0, moscow), nil, rules, time.Time{})
	weeks := ChunkByWeek(days)

	assert.Equal(t, "2021-02-01", weeks[0][0].DateKey)
	assert.Equal(t, "2021-02-28", weeks[3][6].DateKey)
	for _, d := range weeks[4] {
		assert.False(t, d.IsCurrentMonth)
	}
	for _, d := range weeks[5] {
		assert.False(t, d.IsCurrentMonth)
	}
}

func TestBuildDays_TodayUsesShiftedKey(t *testing.T) {
	// 22:30 UTC on the 10th is already the 11th at the tracker's boundary.
	now := time.Date(2024, 10, 10, 22, 30, 0, 0, time.UTC)
	days := BuildDays(time.Date(2024, 10, 1, 0, 0, 0, 0, moscow), nil, rules, now)

	assert.True(t, findDay(t, days, "2024-10-11").IsToday)
	assert.False(t, findDay(t, days, "2024-10-10").IsToday)
}

func TestBuildDays_Idempotent(t *testing.T) {
	summaries := worklog.Summaries{"2024-10-02": {DateKey: "2024-10-02", TotalMinutes: 15}}
	target := time.Date(2024, 10, 1, 0, 0, 0, 0, moscow)
	now := time.Date(2024, 10, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, BuildDays(target, summaries, rules, now), BuildDays(target, summaries, rules, now))
}

func TestChunkByWeek_ShortInput(t *testing.T) {
	days := make([]Day, 10)
	weeks := ChunkByWeek(days)

	require.Len(t, weeks, Weeks)
	assert.Len(t, weeks[0], 7)
	assert.Len(t, weeks[1], 3)
	assert.Empty(t, weeks[2])
	assert.Empty(t, weeks[5])
}

func TestMonthBoundaries(t *testing.T) {
	first, last := MonthBoundaries(time.Date(2024, 2, 17, 13, 45, 0, 0, moscow))

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, moscow), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, moscow), last)
}

func TestGridStart(t *testing.T) {
	sunday := time.Date(2024, 9, 1, 0, 0, 0, 0, moscow)
	assert.Equal(t, time.Date(2024, 8, 26, 0, 0, 0, 0, moscow), GridStart(sunday))

	monday := time.Date(2024, 4, 1, 0, 0, 0, 0, moscow)
	assert.Equal(t, monday, GridStart(monday))
}
