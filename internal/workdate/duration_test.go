package workdate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationToMinutes(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{code: "P2DT3H15M", want: (2*8+3)*60 + 15},
		{code: "PT45M", want: 45},
		{code: "PT6H", want: 360},
		{code: "PT2H", want: 120},
		{code: "PT1H30M", want: 90},
		{code: "P1D", want: 480},
		{code: "P1DT30M", want: 510},
		{code: "P", want: 0},
		{code: "PT", want: 0},
		{code: "PT0M", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDurationToMinutes(tt.code))
		})
	}
}

func TestParseDurationToMinutes_AllComponentSubsets(t *testing.T) {
	for d := 0; d <= 3; d++ {
		for h := 0; h <= 9; h += 3 {
			for m := 0; m <= 59; m += 17 {
				code := fmt.Sprintf("P%dDT%dH%dM", d, h, m)
				assert.Equal(t, (d*8+h)*60+m, ParseDurationToMinutes(code), code)

				code = fmt.Sprintf("PT%dH%dM", h, m)
				assert.Equal(t, h*60+m, ParseDurationToMinutes(code), code)
			}
		}
	}
}

func TestParseDurationToMinutes_RejectsOutsideGrammar(t *testing.T) {
	invalid := []string{
		"",
		"INVALID",
		"PT1S",
		"P1W",
		"P1M",
		"P1Y",
		"PT1H30M10S",
		"T1H",
		"pt1h",
		"PT1.5H",
		" PT1H",
		"PT1H ",
		"PT-1H",
		"PT30M1H",
		"PT99999999999999999999H",
	}

	for _, code := range invalid {
		assert.Equal(t, 0, ParseDurationToMinutes(code), "code %q", code)
	}
}

func TestParseDuration_CustomWorkday(t *testing.T) {
	rules := Rules{WorkdayHours: 6}
	assert.Equal(t, (2*6+1)*60, rules.ParseDuration("P2DT1H"))
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 0, want: "—"},
		{minutes: -5, want: "—"},
		{minutes: -15, want: "—"},
		{minutes: 45, want: "45 м"},
		{minutes: 120, want: "2 ч"},
		{minutes: 125, want: "2 ч 5 м"},
		{minutes: 60, want: "1 ч"},
		{minutes: 1, want: "1 м"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, "PT0M", rules.FormatDuration(0))
	assert.Equal(t, "PT45M", rules.FormatDuration(45))
	assert.Equal(t, "PT2H", rules.FormatDuration(120))
	assert.Equal(t, "PT9H5M", rules.FormatDuration(545))

	for _, minutes := range []int{1, 59, 60, 61, 480, 1000} {
		assert.Equal(t, minutes, rules.ParseDuration(rules.FormatDuration(minutes)))
	}
}
