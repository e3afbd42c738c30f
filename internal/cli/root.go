package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/timesheet/internal/auth"
	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/keyring"
	"github.com/julianstephens/timesheet/internal/notifier"
	"github.com/julianstephens/timesheet/internal/timesheet"
	"github.com/julianstephens/timesheet/internal/tracker"
	"github.com/julianstephens/timesheet/internal/workdate"
)

// ErrNotInteractive is returned when a prompt is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("input is not a terminal")

// Globals are the flags shared by every command. Each one can also come from
// the environment or the JSON config file. Defaults are filled from Vars.
type Globals struct {
	ConfigDir    string        `help:"Directory for logs." type:"path" default:"${config_dir}" env:"TIMESHEET_CONFIG_DIR"`
	Debug        bool          `help:"Log debug output to stderr." env:"TIMESHEET_DEBUG"`
	APIURL       string        `name:"api-url" help:"Tracker API base URL." default:"${api_url}" env:"TIMESHEET_API_URL"`
	OrgID        string        `help:"Tracker organization id (X-Org-ID)." env:"TIMESHEET_ORG_ID"`
	CloudOrgID   string        `help:"Cloud organization id (X-Cloud-Org-ID)." env:"TIMESHEET_CLOUD_ORG_ID"`
	DayOffset    time.Duration `help:"Shift applied to UTC instants before taking the date." default:"3h" env:"TIMESHEET_DAY_OFFSET"`
	WorkdayHours int           `help:"Hours in a day of duration codes." default:"8" env:"TIMESHEET_WORKDAY_HOURS"`
	Locale       string        `help:"Language of titles (ru, en)." default:"ru" env:"TIMESHEET_LOCALE"`
}

// Vars are the kong interpolation values used by the flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"version":     constants.Version,
		"config_dir":  constants.DefaultConfigDir,
		"api_url":     constants.DefaultAPIURL,
		"listen_addr": constants.DefaultListenAddr,
	}
}

// Rules returns the workday rules configured by g.
func (g Globals) Rules() workdate.Rules {
	return workdate.Rules{DayOffset: g.DayOffset, WorkdayHours: g.WorkdayHours}
}

// Context is passed to every command's Run method.
type Context struct {
	Ctx     context.Context
	Client  *tracker.Client
	Session *auth.Session
	Toasts  *notifier.Store
	Rules   workdate.Rules
	Locale  calendar.Locale
	Now     func() time.Time

	Out    io.Writer
	ErrOut io.Writer

	// Prompt reads a secret value; Confirm asks a yes/no question.
	Prompt  func(title string) (string, error)
	Confirm func(title string) (bool, error)
}

// NewContext wires the tracker client, the keyring-backed session and the
// toast store from g.
func NewContext(ctx context.Context, g Globals) (*Context, error) {
	if g.WorkdayHours < 1 || g.WorkdayHours > 24 {
		return nil, fmt.Errorf("workday-hours must be between 1 and 24, got %d", g.WorkdayHours)
	}
	locale, err := calendar.ParseLocale(g.Locale)
	if err != nil {
		return nil, err
	}

	client := tracker.NewClient(tracker.Config{
		BaseURL:    g.APIURL,
		OrgID:      g.OrgID,
		CloudOrgID: g.CloudOrgID,
	})

	return &Context{
		Ctx:     ctx,
		Client:  client,
		Session: auth.NewSession(client, keyring.Store{}),
		Toasts:  notifier.NewStore(notifier.WithForward(notifier.NewTray())),
		Rules:   g.Rules(),
		Locale:  locale,
		Now:     time.Now,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
		Prompt:  promptSecret,
		Confirm: confirm,
	}, nil
}

// User returns the signed-in user, restoring the cached session if needed.
func (c *Context) User() (auth.User, error) {
	if user, err := c.Session.Current(); err == nil {
		return user, nil
	}
	user, err := c.Session.Restore()
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			return auth.User{}, fmt.Errorf("not logged in, run `timesheet login`: %w", err)
		}
		return auth.User{}, err
	}
	return user, nil
}

// Controller returns a controller for user's worklogs.
func (c *Context) Controller(user auth.User) *timesheet.Controller {
	return timesheet.New(
		timesheet.Deps{Source: c.Client, Deleter: c.Client, Notifier: c.Toasts},
		timesheet.Options{UserID: user.ID, Rules: c.Rules, Locale: c.Locale, Now: c.Now},
	)
}

// load fetches req and applies it, reporting a failed fetch on ErrOut. The
// month is still shown, empty.
func (c *Context) load(ctrl *timesheet.Controller, req timesheet.Request) {
	res := ctrl.Fetch(c.Ctx, req)
	if res.Err != nil {
		fmt.Fprintf(c.ErrOut, "warning: worklogs unavailable: %v\n", res.Err)
	}
	ctrl.Apply(res)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func promptSecret(title string) (string, error) {
	if !isTerminal(os.Stdin) {
		return "", ErrNotInteractive
	}
	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	return value, err
}

func confirm(title string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return false, ErrNotInteractive
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Да").
		Negative("Нет").
		Value(&ok).
		Run()
	return ok, err
}
