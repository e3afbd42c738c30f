package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/notifier"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		m.toasts.Expire()
		return m, toastTick()

	case worklogsMsg:
		if !m.ctrl.Apply(msg.result) {
			return m, nil
		}
		if !m.ctrl.ActiveMonth().Equal(m.gridMonth) {
			m.resetCursor()
		}
		if _, open := m.ctrl.Detail(); !open && m.state == StateDetail {
			m.state = StateCalendar
		}
		m.row = min(m.row, max(len(m.rows())-1, 0))
		return m, nil

	case deleteMsg:
		req, ok := m.ctrl.ApplyDelete(msg.result)
		if !ok {
			return m, nil
		}
		m.toasts.Notify(notifier.Toast{Title: "Запись удалена", Variant: notifier.Success})
		return m, m.fetchCmd(req)

	case loginMsg:
		if msg.err != nil {
			m.state = StateLogin
			m.loginErr = "Не удалось войти: проверьте токен"
			m.form = m.newLoginForm()
			return m, m.form.Init()
		}
		logger.Info("TUI session started", "user", msg.user.ID)
		m.loginErr = ""
		m.form = nil
		m.ctrl.SetUserID(msg.user.ID)
		m.state = StateCalendar
		return m, m.fetchCmd(m.ctrl.Start())
	}

	switch m.state {
	case StateLogin:
		return m.updateLogin(msg)
	case StateCalendar:
		return m.updateCalendar(msg)
	case StateDetail:
		return m.updateDetail(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateAuthenticating
		return m, m.loginCmd(m.loginForm.Token)
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-calendar.DaysPerWeek)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(calendar.DaysPerWeek)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(keyMsg, m.keys.Enter):
		days := m.days()
		if m.cursor < len(days) && m.ctrl.OpenDay(days[m.cursor].DateKey) {
			m.state = StateDetail
			m.row = 0
		}
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m, m.fetchCmd(m.ctrl.ChangeMonth(-1))
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m, m.fetchCmd(m.ctrl.ChangeMonth(1))
	case key.Matches(keyMsg, m.keys.Today):
		return m, m.fetchCmd(m.ctrl.SetMonth(m.now().In(m.ctrl.Rules().Location())))
	case key.Matches(keyMsg, m.keys.Refresh):
		return m, m.fetchCmd(m.ctrl.Refresh())
	case key.Matches(keyMsg, m.keys.Logout):
		if err := m.session.Logout(); err != nil {
			logger.Warn("Logout incomplete", "error", err)
		}
		m.state = StateLogin
		m.form = m.newLoginForm()
		return m, m.form.Init()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < calendar.Cells {
		m.cursor = next
	}
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rows := m.rows()
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		m.ctrl.CloseDay()
		m.state = StateCalendar
	case key.Matches(keyMsg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.row < len(rows)-1 {
			m.row++
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if m.row < len(rows) {
			row := rows[m.row]
			m.pending = &row
			m.state = StateConfirmDelete
		}
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.state = StateCalendar
		return m, m.fetchCmd(m.ctrl.ChangeMonth(-1))
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.state = StateCalendar
		return m, m.fetchCmd(m.ctrl.ChangeMonth(1))
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		row := *m.pending
		m.pending = nil
		m.state = StateDetail
		return m, m.deleteCmd(row)
	case key.Matches(keyMsg, m.keys.Cancel):
		m.pending = nil
		m.state = StateDetail
	case keyMsg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}
