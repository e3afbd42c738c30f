package cli

import (
	"fmt"
)

type LoginCmd struct {
	Token string `help:"OAuth token. Prompted for when omitted." env:"TIMESHEET_TOKEN"`
}

func (cmd *LoginCmd) Run(ctx *Context) error {
	token := cmd.Token
	if token == "" {
		var err error
		token, err = ctx.Prompt("OAuth-токен трекера")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}

	user, err := ctx.Session.Login(ctx.Ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Logged in as %s (%s)\n", user.Name, user.ID)
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "Logged out")
	return nil
}

type WhoamiCmd struct{}

func (cmd *WhoamiCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s (%s)\n", user.Name, user.ID)
	return nil
}
