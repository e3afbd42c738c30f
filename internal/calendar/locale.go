package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Locale selects the language of month and day titles.
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
)

var ruMonths = [...]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// ruMonthsGenitive are used after a day number: "1 октября".
var ruMonthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var ruWeekdays = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

var enWeekdays = [...]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// ParseLocale maps a config value to a Locale, defaulting to Russian.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case "", LocaleRU:
		return LocaleRU, nil
	case LocaleEN:
		return LocaleEN, nil
	default:
		return "", fmt.Errorf("unsupported locale %q (want ru or en)", s)
	}
}

// MonthTitle renders "Октябрь 2024" / "October 2024".
func (l Locale) MonthTitle(t time.Time) string {
	if l == LocaleEN {
		return fmt.Sprintf("%s %d", t.Month(), t.Year())
	}
	return fmt.Sprintf("%s %d", capitalize(ruMonths[t.Month()-1]), t.Year())
}

// DayTitle renders "1 октября 2024" / "1 October 2024".
func (l Locale) DayTitle(t time.Time) string {
	if l == LocaleEN {
		return fmt.Sprintf("%d %s %d", t.Day(), t.Month(), t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonthsGenitive[t.Month()-1], t.Year())
}

// WeekdayNames returns short weekday names, Monday first.
func (l Locale) WeekdayNames() []string {
	if l == LocaleEN {
		return enWeekdays[:]
	}
	return ruWeekdays[:]
}

// DeleteFailed is the toast shown when a worklog could not be deleted.
func (l Locale) DeleteFailed() (title, desc string) {
	if l == LocaleEN {
		return "Could not delete the entry", "Please try again"
	}
	return "Не удалось удалить запись", "Попробуйте ещё раз"
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
