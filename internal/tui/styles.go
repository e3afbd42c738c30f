package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timesheet/internal/notifier"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(cellWidth).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(2).
			Align(lipgloss.Center)

	outsideCellStyle = cellStyle.
				Foreground(lipgloss.Color("238"))

	todayCellStyle = cellStyle.
			Foreground(lipgloss.Color("212")).
			Bold(true)

	cursorCellStyle = cellStyle.
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	issueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	toastStyles = map[notifier.Variant]lipgloss.Style{
		notifier.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notifier.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notifier.Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

const cellWidth = 10
