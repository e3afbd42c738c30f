package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/workdate"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateLogin:
		content = m.viewLogin()
	case StateAuthenticating:
		content = m.spinner.View() + " Проверяем токен…"
	case StateCalendar:
		content = m.viewCalendar()
	case StateDetail:
		content = lipgloss.JoinVertical(lipgloss.Left, m.viewCalendar(), m.viewDetail())
	case StateConfirmDelete:
		content = lipgloss.JoinVertical(lipgloss.Left, m.viewDetail(), m.viewConfirmDelete())
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.viewToasts(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Вход в трекер"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	if m.loginErr != "" {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render(m.loginErr))
	}
	return b.String()
}

func (m Model) viewHeader() string {
	parts := []string{titleStyle.Render(m.ctrl.MonthTitle())}
	if m.ctrl.Loading() {
		parts = append(parts, m.spinner.View())
	}
	parts = append(parts, subtleStyle.Render("Итого: "+workdate.FormatMinutes(m.ctrl.MonthTotal())))
	if queue := m.ctrl.PrimaryQueue(); queue != "" {
		parts = append(parts, subtleStyle.Render("Очередь: "+queue))
	}
	if user, err := m.session.Current(); err == nil && user.Name != "" {
		parts = append(parts, subtleStyle.Render(user.Name))
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewCalendar() string {
	names := m.ctrl.Locale().WeekdayNames()
	header := make([]string, len(names))
	for i, name := range names {
		header[i] = weekdayStyle.Render(name)
	}

	rows := []string{m.viewHeader(), "", lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for w, week := range m.ctrl.Weeks() {
		cells := make([]string, len(week))
		for d, day := range week {
			cells[d] = m.viewCell(day, w*calendar.DaysPerWeek+d == m.cursor)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewCell(day calendar.Day, selected bool) string {
	style := cellStyle
	switch {
	case selected:
		style = cursorCellStyle
	case !day.IsCurrentMonth:
		style = outsideCellStyle
	case day.IsToday:
		style = todayCellStyle
	}

	total := ""
	if day.TotalMinutes > 0 {
		total = workdate.FormatMinutes(day.TotalMinutes)
	} else if m.ctrl.Loading() && day.IsCurrentMonth {
		total = "…"
	}
	return style.Render(strconv.Itoa(day.Label) + "\n" + total)
}

func (m Model) viewDetail() string {
	detail, ok := m.ctrl.Detail()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(detail.Title), subtleStyle.Render(workdate.FormatMinutes(detail.Summary.TotalMinutes)))

	if len(detail.Groups) == 0 {
		b.WriteString(subtleStyle.Render("Нет записей за этот день"))
		return detailStyle.Render(b.String())
	}

	i := 0
	for _, group := range detail.Groups {
		fmt.Fprintf(&b, "\n%s %s  %s\n",
			issueStyle.Render(group.Issue.Key),
			group.Issue.Display,
			subtleStyle.Render(workdate.FormatMinutes(group.TotalMinutes)))
		for _, entry := range group.Entries {
			line := fmt.Sprintf("  %-10s %s", workdate.FormatMinutes(entry.Minutes), entry.Comment)
			if i == m.row {
				line = selectedRowStyle.Render("›" + line[1:])
			}
			b.WriteString(line + "\n")
			i++
		}
	}
	return detailStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewConfirmDelete() string {
	if m.pending == nil {
		return ""
	}
	return dangerStyle.Render(fmt.Sprintf(
		"Удалить %s из %s? (y/n)",
		workdate.FormatMinutes(m.pending.entry.Minutes),
		m.pending.issue.Key,
	))
}

func (m Model) viewToasts() string {
	toasts := m.toasts.List()
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, len(toasts))
	for i, t := range toasts {
		lines[i] = toastStyles[t.Variant].Render(t.Text())
	}
	return strings.Join(lines, "\n")
}
