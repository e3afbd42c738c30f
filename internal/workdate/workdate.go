// Package workdate holds the calendar arithmetic shared by every part of the
// timesheet: the tracker's fixed-offset day boundary, month periods in the
// tracker wire format and the work-duration codec.
package workdate

import (
	"fmt"
	"time"

	"github.com/julianstephens/timesheet/internal/constants"
)

// trackerLayout is the instant layout the tracker search endpoint expects.
// The zone suffix is appended literally by ToTrackerDate.
const trackerLayout = "2006-01-02T15:04:05.000"

const trackerZoneSuffix = "+0000"

// inputLayouts are tried in order when reading instants coming from the tracker.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
}

// Rules are the environment-specific conventions of a tracker installation.
type Rules struct {
	// DayOffset shifts UTC instants before the calendar date is taken.
	DayOffset time.Duration
	// WorkdayHours is the length of a "day" in duration codes.
	WorkdayHours int
}

// Period is a month range in tracker wire format.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DefaultRules returns the +3h day boundary and 8-hour workday.
func DefaultRules() Rules {
	return Rules{
		DayOffset:    constants.DefaultDayOffset,
		WorkdayHours: constants.DefaultWorkdayHours,
	}
}

// Location returns the fixed zone whose midnight is the tracker's day boundary.
func (r Rules) Location() *time.Location {
	offset := int(r.DayOffset / time.Second)
	return time.FixedZone(zoneName(r.DayOffset), offset)
}

func zoneName(offset time.Duration) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, int(offset/time.Hour), int(offset%time.Hour/time.Minute))
}

// ToDateKey shifts t by the day offset and returns its UTC calendar date.
func (r Rules) ToDateKey(t time.Time) string {
	return t.UTC().Add(r.DayOffset).Format(constants.DateFormat)
}

// DateKeyOf parses a tracker instant and returns its date key. Unparseable
// input yields "".
func (r Rules) DateKeyOf(instant string) string {
	t, ok := ParseInstant(instant)
	if !ok {
		return ""
	}
	return r.ToDateKey(t)
}

// TodayKey is the date key of now.
func (r Rules) TodayKey(now time.Time) string {
	return r.ToDateKey(now)
}

// MonthPeriod returns the first and last instant of t's calendar month, moved
// back by the day offset and rendered in tracker wire format.
func (r Rules) MonthPeriod(t time.Time) Period {
	year, month := t.Year(), t.Month()
	lastDay := DaysIn(year, month)

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Add(-r.DayOffset)
	end := time.Date(year, month, lastDay, 23, 59, 59, int(999*time.Millisecond), time.UTC).Add(-r.DayOffset)

	return Period{
		From: ToTrackerDate(start),
		To:   ToTrackerDate(end),
	}
}

// ToTrackerDate renders t in UTC with millisecond precision and a literal
// +0000 suffix.
func ToTrackerDate(t time.Time) string {
	return t.UTC().Format(trackerLayout) + trackerZoneSuffix
}

// MonthStartUTC returns UTC midnight of the 1st of t's month, using t's own
// year and month fields.
func MonthStartUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseInstant reads an ISO-8601 instant in any of the layouts the tracker emits.
func ParseInstant(s string) (time.Time, bool) {
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM selector as the 1st of that month in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.MonthFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t, nil
}
