package workdate

import (
	"fmt"
	"regexp"
	"strconv"
)

const minutesInHour = 60

// durationPattern accepts P[nD][T[nH][nM]]; weeks, months, years and seconds
// are not part of the tracker's vocabulary.
var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// maxComponent keeps (days*WorkdayHours+hours)*60+minutes inside int range.
const maxComponent = 1 << 24

// ParseDurationToMinutes parses a duration code with the default rules.
func ParseDurationToMinutes(code string) int {
	return DefaultRules().ParseDuration(code)
}

// ParseDuration converts a duration code into minutes, counting a day as
// WorkdayHours hours. Anything outside the grammar is 0.
func (r Rules) ParseDuration(code string) int {
	match := durationPattern.FindStringSubmatch(code)
	if match == nil {
		return 0
	}

	days, ok := component(match[1])
	if !ok {
		return 0
	}
	hours, ok := component(match[2])
	if !ok {
		return 0
	}
	minutes, ok := component(match[3])
	if !ok {
		return 0
	}

	return (days*r.WorkdayHours+hours)*minutesInHour + minutes
}

func component(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > maxComponent {
		return 0, false
	}
	return n, true
}

// FormatDuration encodes minutes as a duration code. Days are never emitted,
// so the result does not depend on the workday length.
func (r Rules) FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "PT0M"
	}
	hours, rest := minutes/minutesInHour, minutes%minutesInHour
	switch {
	case hours > 0 && rest > 0:
		return fmt.Sprintf("PT%dH%dM", hours, rest)
	case hours > 0:
		return fmt.Sprintf("PT%dH", hours)
	default:
		return fmt.Sprintf("PT%dM", rest)
	}
}

// FormatMinutes renders minutes for display: "2 ч 5 м", "2 ч", "45 м", or a
// dash for empty values.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "—"
	}

	hours := minutes / minutesInHour
	rest := minutes % minutesInHour

	switch {
	case hours > 0 && rest > 0:
		return fmt.Sprintf("%d ч %d м", hours, rest)
	case hours > 0:
		return fmt.Sprintf("%d ч", hours)
	default:
		return fmt.Sprintf("%d м", rest)
	}
}
