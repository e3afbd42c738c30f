// Package worklog models tracker time entries and aggregates them into the
// per-day and per-issue summaries the calendar is built from.
package worklog

import "github.com/julianstephens/timesheet/internal/workdate"

// Issue is the tracker issue a worklog was recorded against.
type Issue struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Display string `json:"display"`
	// Comment belongs to the worklog, not the issue; empty means none.
	Comment string `json:"comment,omitempty"`
}

// Worklog is a single time entry as received from the tracker.
type Worklog struct {
	ID       int64  `json:"id"`
	Start    string `json:"start"`
	Duration string `json:"duration"`
	Issue    Issue  `json:"issue"`
}

// Query selects the worklogs of one user inside a period.
type Query struct {
	UserID string
	Period workdate.Period
}

// Normalized is a worklog keyed by day with its duration in minutes.
type Normalized struct {
	ID      int64  `json:"id"`
	DateKey string `json:"dateKey"`
	Minutes int    `json:"minutes"`
	Issue   Issue  `json:"issue"`
}

// DaySummary is every worklog of one day in fetch order.
type DaySummary struct {
	DateKey      string       `json:"dateKey"`
	TotalMinutes int          `json:"totalMinutes"`
	Items        []Normalized `json:"items"`
}

// Entry is one worklog inside an IssueGroup.
type Entry struct {
	ID      int64  `json:"id"`
	DateKey string `json:"dateKey"`
	Minutes int    `json:"minutes"`
	Comment string `json:"comment,omitempty"`
}

// IssueGroup collects the entries of one issue within a day.
type IssueGroup struct {
	Issue        Issue   `json:"issue"`
	Entries      []Entry `json:"entries"`
	TotalMinutes int     `json:"totalMinutes"`
}
