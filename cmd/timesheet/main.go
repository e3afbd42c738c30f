package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timesheet/internal/cli"
	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/errors"
	"github.com/julianstephens/timesheet/internal/logger"
)

var CLI struct {
	cli.Globals

	Version kong.VersionFlag

	Login  cli.LoginCmd  `cmd:"" help:"Sign in with a tracker OAuth token."`
	Logout cli.LogoutCmd `cmd:"" help:"Forget the cached session."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the signed-in user."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Month  cli.MonthCmd  `cmd:"" help:"Show the calendar of a month."`
	Day    cli.DayCmd    `cmd:"" help:"Show the worklogs of a day."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a worklog."`
	Edit   cli.EditCmd   `cmd:"" help:"Change the duration or comment of a worklog."`
	Serve  cli.ServeCmd  `cmd:"" help:"Serve the timesheet as a JSON API."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Monthly worklog calendar for the issue tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		cli.Vars(),
	)

	// Only the API server mirrors logs to stderr; the TUI owns the terminal.
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: CLI.ConfigDir,
		Stderr:    ctx.Command() == "serve",
	}); err != nil {
		logger.Discard()
	}

	appCtx, err := cli.NewContext(context.Background(), CLI.Globals)
	if err != nil {
		errors.Fatal(err)
	}

	errors.Fatal(ctx.Run(appCtx))
}
