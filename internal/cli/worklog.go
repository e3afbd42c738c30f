package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timesheet/internal/tracker"
	"github.com/julianstephens/timesheet/internal/workdate"
)

type DeleteCmd struct {
	IssueID   string `arg:"" help:"Issue id or key."`
	WorklogID int64  `arg:"" help:"Worklog id."`
	Yes       bool   `short:"y" help:"Do not ask for confirmation."`
}

func (cmd *DeleteCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}

	if !cmd.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Удалить запись #%d из %s?", cmd.WorklogID, cmd.IssueID))
		if err != nil {
			return fmt.Errorf("confirmation failed (pass --yes to skip): %w", err)
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Cancelled")
			return nil
		}
	}

	ctrl := ctx.Controller(user)
	res := ctrl.Delete(ctx.Ctx, cmd.IssueID, cmd.WorklogID)
	if _, ok := ctrl.ApplyDelete(res); !ok {
		return fmt.Errorf("failed to delete worklog %d: %w", cmd.WorklogID, res.Err)
	}

	fmt.Fprintf(ctx.Out, "Deleted worklog #%d from %s\n", cmd.WorklogID, cmd.IssueID)
	return nil
}

type EditCmd struct {
	IssueID   string  `arg:"" help:"Issue id or key."`
	WorklogID int64   `arg:"" help:"Worklog id."`
	Duration  string  `required:"" help:"New duration, as a code (PT1H30M) or Go duration (1h30m)."`
	Comment   *string `help:"New comment."`
}

func (cmd *EditCmd) Run(ctx *Context) error {
	if _, err := ctx.User(); err != nil {
		return err
	}

	code, err := parseDurationFlag(cmd.Duration, ctx.Rules)
	if err != nil {
		return err
	}

	updated, err := ctx.Client.UpdateWorklog(ctx.Ctx, tracker.UpdateParams{
		IssueID:   cmd.IssueID,
		WorklogID: cmd.WorklogID,
		Duration:  code,
		Comment:   cmd.Comment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Updated worklog #%d: %s\n", updated.ID,
		workdate.FormatMinutes(ctx.Rules.ParseDuration(updated.Duration)))
	return nil
}

// parseDurationFlag accepts a duration code or a Go duration of whole minutes
// and returns the code sent to the tracker.
func parseDurationFlag(s string, rules workdate.Rules) (string, error) {
	s = strings.TrimSpace(s)

	var minutes int
	if strings.HasPrefix(strings.ToUpper(s), "P") {
		minutes = rules.ParseDuration(strings.ToUpper(s))
	} else if d, err := time.ParseDuration(s); err == nil && d%time.Minute == 0 {
		minutes = int(d / time.Minute)
	}

	if minutes <= 0 {
		return "", fmt.Errorf("invalid duration %q, expected e.g. PT1H30M or 1h30m", s)
	}
	return rules.FormatDuration(minutes), nil
}
