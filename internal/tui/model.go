// Package tui is the terminal front end: a month calendar with a day detail
// overlay, token login, delete confirmation and toasts.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timesheet/internal/auth"
	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/notifier"
	"github.com/julianstephens/timesheet/internal/timesheet"
	"github.com/julianstephens/timesheet/internal/worklog"
)

type SessionState int

const (
	StateLogin SessionState = iota
	StateAuthenticating
	StateCalendar
	StateDetail
	StateConfirmDelete
)

const toastTickInterval = time.Second

type LoginFormModel struct {
	Token string
}

type worklogsMsg struct{ result timesheet.Result }

type deleteMsg struct{ result timesheet.DeleteResult }

type loginMsg struct {
	user auth.User
	err  error
}

type toastTickMsg time.Time

// detailRow is one selectable worklog in the day overlay.
type detailRow struct {
	issue worklog.Issue
	entry worklog.Entry
}

type Model struct {
	ctx     context.Context
	ctrl    *timesheet.Controller
	session *auth.Session
	toasts  *notifier.Store
	now     func() time.Time

	state     SessionState
	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	form      *huh.Form
	loginForm *LoginFormModel
	loginErr  string

	cursor    int
	gridMonth time.Time
	row       int
	pending   *detailRow

	width    int
	height   int
	quitting bool
}

// NewModel returns the TUI for ctrl. A signed-in session starts on the
// calendar, otherwise on the login form.
func NewModel(ctx context.Context, ctrl *timesheet.Controller, session *auth.Session, toasts *notifier.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = subtleStyle

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		session: session,
		toasts:  toasts,
		now:     time.Now,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}

	session.OnAuthorize(func(user auth.User) {
		toasts.Notify(notifier.Toast{Title: fmt.Sprintf("Вы вошли как %s", user.Name), Variant: notifier.Success})
	})
	session.OnLogout(toasts.Clear)

	if user, err := session.Current(); err == nil {
		ctrl.SetUserID(user.ID)
		m.state = StateCalendar
	} else {
		m.state = StateLogin
		m.form = m.newLoginForm()
	}
	m.resetCursor()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDetail:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Delete, m.keys.Back, m.keys.Quit}
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	default:
		return m.keys.ShortHelp()
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, toastTick()}
	if m.state == StateLogin {
		cmds = append(cmds, m.form.Init())
	} else {
		cmds = append(cmds, m.fetchCmd(m.ctrl.Start()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) newLoginForm() *huh.Form {
	m.loginForm = &LoginFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OAuth-токен").
				Description("Токен трекера, он будет сохранён в системном хранилище ключей").
				EchoMode(huh.EchoModePassword).
				Value(&m.loginForm.Token).
				Validate(func(s string) error {
					if len(s) == 0 {
						return auth.ErrEmptyToken
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

func (m Model) fetchCmd(req timesheet.Request) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return worklogsMsg{result: ctrl.Fetch(ctx, req)}
	}
}

func (m Model) deleteCmd(row detailRow) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return deleteMsg{result: ctrl.Delete(ctx, row.issue.ID, row.entry.ID)}
	}
}

func (m Model) loginCmd(token string) tea.Cmd {
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		user, err := session.Login(ctx, token)
		return loginMsg{user: user, err: err}
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func (m Model) days() []calendar.Day {
	var days []calendar.Day
	for _, week := range m.ctrl.Weeks() {
		days = append(days, week...)
	}
	return days
}

// resetCursor puts the cursor on today when it is in the shown month, or on
// the 1st otherwise.
func (m *Model) resetCursor() {
	m.gridMonth = m.ctrl.ActiveMonth()
	days := m.days()

	first := -1
	for i, d := range days {
		if !d.IsCurrentMonth {
			continue
		}
		if d.IsToday {
			m.cursor = i
			return
		}
		if first < 0 {
			first = i
		}
	}
	m.cursor = max(first, 0)
}

func (m Model) rows() []detailRow {
	detail, ok := m.ctrl.Detail()
	if !ok {
		return nil
	}
	var rows []detailRow
	for _, group := range detail.Groups {
		for _, entry := range group.Entries {
			rows = append(rows, detailRow{issue: group.Issue, entry: entry})
		}
	}
	return rows
}
