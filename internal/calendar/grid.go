// Package calendar builds the fixed six-week month grid shown by the
// timesheet views.
package calendar

import (
	"time"

	"github.com/julianstephens/timesheet/internal/workdate"
	"github.com/julianstephens/timesheet/internal/worklog"
)

const (
	Weeks       = 6
	DaysPerWeek = 7
	Cells       = Weeks * DaysPerWeek
)

// Day is one cell of the month grid.
type Day struct {
	DateKey        string `json:"dateKey"`
	Label          int    `json:"label"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	IsToday        bool   `json:"isToday"`
	TotalMinutes   int    `json:"totalMinutes"`
}

// MonthBoundaries returns midnight of the first and last day of target's
// month in target's location.
func MonthBoundaries(target time.Time) (first, last time.Time) {
	year, month, loc := target.Year(), target.Month(), target.Location()
	first = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last = time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return first, last
}

// GridStart returns the Monday on or before firstDay.
func GridStart(firstDay time.Time) time.Time {
	weekdayOffset := (int(firstDay.Weekday()) + 6) % 7
	return firstDay.AddDate(0, 0, -weekdayOffset)
}

// BuildDays returns the 42 consecutive days of target's month grid with
// totals taken from summaries. Only target's year and month are used; days
// are laid out in the tracker's zone.
func BuildDays(target time.Time, summaries worklog.Summaries, rules workdate.Rules, now time.Time) []Day {
	month := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, rules.Location())
	first, last := MonthBoundaries(month)
	start := GridStart(first)
	todayKey := rules.TodayKey(now)

	days := make([]Day, Cells)
	for i := range days {
		date := start.AddDate(0, 0, i)
		dateKey := rules.ToDateKey(date)

		days[i] = Day{
			DateKey:        dateKey,
			Label:          date.Day(),
			IsCurrentMonth: !date.Before(first) && !date.After(last),
			IsToday:        dateKey == todayKey,
			TotalMinutes:   summaries.TotalMinutes(dateKey),
		}
	}
	return days
}

// ChunkByWeek splits days into six rows of seven without reordering.
func ChunkByWeek(days []Day) [][]Day {
	weeks := make([][]Day, Weeks)
	for w := range weeks {
		lo := min(w*DaysPerWeek, len(days))
		hi := min((w+1)*DaysPerWeek, len(days))
		weeks[w] = days[lo:hi]
	}
	return weeks
}
