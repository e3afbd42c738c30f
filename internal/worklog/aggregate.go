package worklog

import (
	"sort"

	"github.com/julianstephens/timesheet/internal/workdate"
)

// Summaries maps date keys to the worklogs of that day. A missing key means
// the day has no entries.
type Summaries map[string]DaySummary

// Get returns the summary of a day.
func (s Summaries) Get(dateKey string) (DaySummary, bool) {
	summary, ok := s[dateKey]
	return summary, ok
}

// TotalMinutes returns the day total, 0 for days without entries.
func (s Summaries) TotalMinutes(dateKey string) int {
	return s[dateKey].TotalMinutes
}

// Total sums every day.
func (s Summaries) Total() int {
	total := 0
	for _, summary := range s {
		total += summary.TotalMinutes
	}
	return total
}

// Keys returns the date keys in ascending order.
func (s Summaries) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Aggregator normalizes worklogs under a set of workday rules.
type Aggregator struct {
	Rules workdate.Rules
}

// NewAggregator returns an Aggregator for rules.
func NewAggregator(rules workdate.Rules) Aggregator {
	return Aggregator{Rules: rules}
}

// Normalize keys a worklog by day and converts its duration to minutes.
func (a Aggregator) Normalize(w Worklog) Normalized {
	return Normalized{
		ID:      w.ID,
		DateKey: a.Rules.DateKeyOf(w.Start),
		Minutes: a.Rules.ParseDuration(w.Duration),
		Issue:   w.Issue,
	}
}

// GroupByDate builds a fresh set of day summaries. Items keep the input order
// within a day.
func (a Aggregator) GroupByDate(worklogs []Worklog) Summaries {
	summaries := make(Summaries)

	for _, w := range worklogs {
		normalized := a.Normalize(w)
		summary, ok := summaries[normalized.DateKey]
		if !ok {
			summary = DaySummary{DateKey: normalized.DateKey}
		}
		summary.TotalMinutes += normalized.Minutes
		summary.Items = append(summary.Items, normalized)
		summaries[normalized.DateKey] = summary
	}

	return summaries
}

// EmptySummary is the explicit summary of a day without entries.
func EmptySummary(dateKey string) DaySummary {
	return DaySummary{DateKey: dateKey, Items: []Normalized{}}
}

// GroupByIssue splits a day into issue groups ordered by first appearance.
func GroupByIssue(summary DaySummary) []IssueGroup {
	groups := make([]IssueGroup, 0)
	index := make(map[string]int)

	for _, item := range summary.Items {
		entry := Entry{
			ID:      item.ID,
			DateKey: item.DateKey,
			Minutes: item.Minutes,
			Comment: item.Issue.Comment,
		}

		i, ok := index[item.Issue.ID]
		if !ok {
			i = len(groups)
			index[item.Issue.ID] = i
			groups = append(groups, IssueGroup{Issue: item.Issue})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
		groups[i].TotalMinutes += item.Minutes
	}

	return groups
}
