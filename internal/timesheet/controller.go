// Package timesheet drives the month view: navigation, loading, the open day
// and deletions. A Controller has a single writer. Blocking calls (Fetch,
// Delete) touch no controller state and may run on other goroutines; their
// results are committed with Apply and ApplyDelete on the owning loop.
package timesheet

import (
	"context"
	"time"

	"github.com/julianstephens/timesheet/internal/calendar"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/notifier"
	"github.com/julianstephens/timesheet/internal/workdate"
	"github.com/julianstephens/timesheet/internal/worklog"
)

// Source loads the worklogs of one user and period.
type Source interface {
	FetchWorklogs(ctx context.Context, q worklog.Query) ([]worklog.Worklog, error)
}

// Deleter removes a single worklog.
type Deleter interface {
	DeleteWorklog(ctx context.Context, issueID string, worklogID int64) error
}

// State is the loading state of the active month.
type State int

const (
	Idle State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Source   Source
	Deleter  Deleter
	Notifier notifier.Notifier
}

// Options configure a Controller.
type Options struct {
	UserID string
	Rules  workdate.Rules
	Locale calendar.Locale
	// Now defaults to time.Now.
	Now func() time.Time
}

// Request identifies one fetch of a month.
type Request struct {
	Seq   uint64
	Month time.Time
	Query worklog.Query
}

// Result is the outcome of Fetch. Worklogs is never nil.
type Result struct {
	Request  Request
	Worklogs []worklog.Worklog
	Err      error
}

// DeleteResult is the outcome of Delete.
type DeleteResult struct {
	IssueID   string
	WorklogID int64
	Err       error
}

// Detail is the open day.
type Detail struct {
	DateKey string
	Title   string
	Summary worklog.DaySummary
	Groups  []worklog.IssueGroup
}

// Controller owns the active month and everything derived from it.
type Controller struct {
	deps       Deps
	userID     string
	rules      workdate.Rules
	locale     calendar.Locale
	now        func() time.Time
	aggregator worklog.Aggregator

	state     State
	seq       uint64
	month     time.Time
	worklogs  []worklog.Worklog
	summaries worklog.Summaries
	weeks     [][]calendar.Day
	queue     string
	detail    *Detail
}

// New returns an idle controller on the current month with an empty grid.
func New(deps Deps, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Locale == "" {
		opts.Locale = calendar.LocaleRU
	}
	if opts.Rules == (workdate.Rules{}) {
		opts.Rules = workdate.DefaultRules()
	}

	c := &Controller{
		deps:       deps,
		userID:     opts.UserID,
		rules:      opts.Rules,
		locale:     opts.Locale,
		now:        opts.Now,
		aggregator: worklog.NewAggregator(opts.Rules),
	}
	c.month = c.firstOfMonth(c.now().In(opts.Rules.Location()))
	c.GetMonthlyTimesheet(c.month, nil)
	return c
}

// SetUserID changes whose worklogs subsequent requests load.
func (c *Controller) SetUserID(id string) {
	c.userID = id
}

// Start requests the active month.
func (c *Controller) Start() Request {
	return c.request(c.month, true)
}

// SetMonth makes t's month active and requests it.
func (c *Controller) SetMonth(t time.Time) Request {
	return c.request(c.firstOfMonth(t), true)
}

// ChangeMonth moves the active month by offset months. The day of month is
// reset to 1 first so that month lengths never skip a month.
func (c *Controller) ChangeMonth(offset int) Request {
	next := time.Date(c.month.Year(), c.month.Month()+time.Month(offset), 1, 0, 0, 0, 0, c.rules.Location())
	return c.request(next, true)
}

// Refresh requests the active month again, keeping the open day.
func (c *Controller) Refresh() Request {
	return c.request(c.month, false)
}

func (c *Controller) request(month time.Time, closeDetail bool) Request {
	c.seq++
	c.month = month
	c.state = Loading
	if closeDetail {
		c.detail = nil
	}

	return Request{
		Seq:   c.seq,
		Month: month,
		Query: worklog.Query{
			UserID: c.userID,
			Period: c.rules.MonthPeriod(month),
		},
	}
}

// Fetch loads the worklogs of req. Failures are logged and yield an empty
// list.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	worklogs, err := c.deps.Source.FetchWorklogs(ctx, req.Query)
	if err != nil {
		logger.Warn("Worklog fetch failed", "month", req.Month.Format("2006-01"), "error", err)
		worklogs = nil
	}
	if worklogs == nil {
		worklogs = []worklog.Worklog{}
	}
	return Result{Request: req, Worklogs: worklogs, Err: err}
}

// Apply commits res unless a newer request was made or the active month
// changed since res was requested. It reports whether res was applied.
func (c *Controller) Apply(res Result) bool {
	if res.Request.Seq != c.seq || !res.Request.Month.Equal(c.month) {
		logger.Debug("Discarding stale worklogs", "seq", res.Request.Seq, "latest", c.seq)
		return false
	}

	c.GetMonthlyTimesheet(res.Request.Month, res.Worklogs)
	c.state = Ready

	if c.detail != nil {
		c.detail = c.deriveDetail(c.detail.DateKey)
	}
	return true
}

// Load fetches and applies req.
func (c *Controller) Load(ctx context.Context, req Request) bool {
	return c.Apply(c.Fetch(ctx, req))
}

// GetMonthlyTimesheet replaces the dataset and rebuilds the summaries and
// grid for month.
func (c *Controller) GetMonthlyTimesheet(month time.Time, worklogs []worklog.Worklog) {
	summaries := c.aggregator.GroupByDate(worklogs)
	days := calendar.BuildDays(month, summaries, c.rules, c.now())
	queue, _ := worklog.PrimaryQueue(worklogs)

	c.worklogs = worklogs
	c.summaries = summaries
	c.weeks = calendar.ChunkByWeek(days)
	c.queue = queue
}

// OpenDay shows the entries of dateKey. It does nothing while loading.
func (c *Controller) OpenDay(dateKey string) bool {
	if c.state == Loading {
		return false
	}
	c.detail = c.deriveDetail(dateKey)
	return true
}

// CloseDay clears the selection.
func (c *Controller) CloseDay() {
	c.detail = nil
}

func (c *Controller) deriveDetail(dateKey string) *Detail {
	summary, ok := c.summaries.Get(dateKey)
	if !ok {
		summary = worklog.EmptySummary(dateKey)
	}

	title := dateKey
	if day, err := workdate.ParseDateKey(dateKey, c.rules.Location()); err == nil {
		title = c.locale.DayTitle(day)
	}

	return &Detail{
		DateKey: dateKey,
		Title:   title,
		Summary: summary,
		Groups:  worklog.GroupByIssue(summary),
	}
}

// Delete asks the tracker to remove a worklog.
func (c *Controller) Delete(ctx context.Context, issueID string, worklogID int64) DeleteResult {
	err := c.deps.Deleter.DeleteWorklog(ctx, issueID, worklogID)
	if err != nil {
		logger.Warn("Worklog delete failed", "issue", issueID, "worklog", worklogID, "error", err)
	}
	return DeleteResult{IssueID: issueID, WorklogID: worklogID, Err: err}
}

// ApplyDelete reacts to a finished deletion. A failure raises a danger toast
// and changes nothing. A success returns the refresh request to run.
func (c *Controller) ApplyDelete(res DeleteResult) (Request, bool) {
	if res.Err != nil {
		if c.deps.Notifier != nil {
			title, desc := c.locale.DeleteFailed()
			c.deps.Notifier.Notify(notifier.Toast{Title: title, Desc: desc, Variant: notifier.Danger})
		}
		return Request{}, false
	}
	logger.Info("Worklog deleted", "issue", res.IssueID, "worklog", res.WorklogID)
	return c.Refresh(), true
}

// DeleteEntry deletes a worklog and reloads the month on success.
func (c *Controller) DeleteEntry(ctx context.Context, issueID string, worklogID int64) bool {
	req, ok := c.ApplyDelete(c.Delete(ctx, issueID, worklogID))
	if !ok {
		return false
	}
	c.Load(ctx, req)
	return true
}

func (c *Controller) firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.rules.Location())
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Loading() bool { return c.state == Loading }
func (c *Controller) ActiveMonth() time.Time { return c.month }
func (c *Controller) Rules() workdate.Rules { return c.rules }
func (c *Controller) Locale() calendar.Locale { return c.locale }

// MonthTitle is the localized name of the active month.
func (c *Controller) MonthTitle() string {
	return c.locale.MonthTitle(c.month)
}

// Weeks is the 6x7 grid of the active month.
func (c *Controller) Weeks() [][]calendar.Day {
	return c.weeks
}

// Summaries of the active month, keyed by date.
func (c *Controller) Summaries() worklog.Summaries {
	return c.summaries
}

// Worklogs of the active month in fetch order.
func (c *Controller) Worklogs() []worklog.Worklog {
	return c.worklogs
}

// Detail returns the open day, if any.
func (c *Controller) Detail() (Detail, bool) {
	if c.detail == nil {
		return Detail{}, false
	}
	return *c.detail, true
}

// PrimaryQueue is the queue most worklogs of the month belong to.
func (c *Controller) PrimaryQueue() string {
	return c.queue
}

// MonthTotal sums the minutes of every day in the dataset.
func (c *Controller) MonthTotal() int {
	return c.summaries.Total()
}
