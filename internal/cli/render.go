package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/timesheet"
	"github.com/julianstephens/timesheet/internal/workdate"
)

const cellWidth = 12

// monthStyles are bound to the renderer of one writer, so a pipe or a file
// gets plain text.
type monthStyles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	outside lipgloss.Style
	today   lipgloss.Style
	issue   lipgloss.Style
	subtle  lipgloss.Style
}

func newMonthStyles(w io.Writer) monthStyles {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Width(cellWidth)
	return monthStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		header:  cell.Foreground(lipgloss.Color("244")),
		cell:    cell,
		outside: cell.Foreground(lipgloss.Color("240")),
		today:   cell.Bold(true).Foreground(lipgloss.Color("86")),
		issue:   r.NewStyle().Bold(true),
		subtle:  r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func renderMonth(w io.Writer, ctrl *timesheet.Controller) {
	s := newMonthStyles(w)

	fmt.Fprintln(w, s.title.Render(ctrl.MonthTitle()))

	names := make([]string, 0, calendar.DaysPerWeek)
	for _, name := range ctrl.Locale().WeekdayNames() {
		names = append(names, s.header.Render(name))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, names...))

	for _, week := range ctrl.Weeks() {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			style := s.cell
			switch {
			case day.IsToday:
				style = s.today
			case !day.IsCurrentMonth:
				style = s.outside
			}
			cells = append(cells, style.Render(dayCell(day)))
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	fmt.Fprintf(w, "\nИтого: %s\n", workdate.FormatMinutes(ctrl.MonthTotal()))
	if queue := ctrl.PrimaryQueue(); queue != "" {
		fmt.Fprintf(w, "Очередь: %s\n", queue)
	}
}

func dayCell(day calendar.Day) string {
	if day.TotalMinutes == 0 {
		return fmt.Sprintf("%2d", day.Label)
	}
	return fmt.Sprintf("%2d %s", day.Label, workdate.FormatMinutes(day.TotalMinutes))
}

func renderDay(w io.Writer, detail timesheet.Detail) {
	s := newMonthStyles(w)

	fmt.Fprintf(w, "%s · %s\n", s.title.Render(detail.Title), workdate.FormatMinutes(detail.Summary.TotalMinutes))
	if len(detail.Groups) == 0 {
		fmt.Fprintln(w, s.subtle.Render("Нет записей за этот день"))
		return
	}

	for _, group := range detail.Groups {
		fmt.Fprintf(w, "\n%s %s  %s\n",
			s.issue.Render(group.Issue.Key),
			group.Issue.Display,
			workdate.FormatMinutes(group.TotalMinutes),
		)
		for _, entry := range group.Entries {
			line := fmt.Sprintf("  #%d  %s", entry.ID, workdate.FormatMinutes(entry.Minutes))
			if comment := strings.TrimSpace(entry.Comment); comment != "" {
				line += "  " + s.subtle.Render(comment)
			}
			fmt.Fprintln(w, line)
		}
	}
}
