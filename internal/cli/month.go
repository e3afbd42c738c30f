package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/workdate"
)

type MonthCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month." placeholder:"YYYY-MM"`
	JSON  bool   `help:"Print the grid as JSON."`
}

func (cmd *MonthCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}

	ctrl := ctx.Controller(user)
	req := ctrl.Start()
	if cmd.Month != "" {
		month, err := workdate.ParseMonth(cmd.Month, ctx.Rules.Location())
		if err != nil {
			return err
		}
		req = ctrl.SetMonth(month)
	}
	ctx.load(ctrl, req)

	if cmd.JSON {
		return writeJSON(ctx, map[string]interface{}{
			"month":             ctrl.ActiveMonth().Format(constants.MonthFormat),
			"title":             ctrl.MonthTitle(),
			"period":            req.Query.Period,
			"weeks":             ctrl.Weeks(),
			"monthTotalMinutes": ctrl.MonthTotal(),
			"primaryQueue":      ctrl.PrimaryQueue(),
		})
	}

	renderMonth(ctx.Out, ctrl)
	return nil
}

type DayCmd struct {
	Date string `arg:"" help:"Day to show (YYYY-MM-DD or 'today')."`
	JSON bool   `help:"Print the day as JSON."`
}

func (cmd *DayCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}

	dateKey := cmd.Date
	if dateKey == "today" {
		dateKey = ctx.Rules.TodayKey(ctx.Now())
	}
	day, err := workdate.ParseDateKey(dateKey, ctx.Rules.Location())
	if err != nil {
		return err
	}

	ctrl := ctx.Controller(user)
	ctx.load(ctrl, ctrl.SetMonth(day))
	ctrl.OpenDay(dateKey)
	detail, _ := ctrl.Detail()

	if cmd.JSON {
		return writeJSON(ctx, map[string]interface{}{
			"dateKey":      detail.DateKey,
			"title":        detail.Title,
			"totalMinutes": detail.Summary.TotalMinutes,
			"groups":       detail.Groups,
		})
	}

	renderDay(ctx.Out, detail)
	return nil
}

func writeJSON(ctx *Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(ctx.Out, string(jsonBytes))
	return nil
}
