package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timesheet/internal/auth"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if !isTerminal(os.Stdout) {
		return errors.New("the TUI needs a terminal, use `timesheet month` for plain output")
	}

	user, err := ctx.Session.Restore()
	if err != nil && !errors.Is(err, auth.ErrUnauthorized) {
		logger.Warn("Cached session unavailable", "error", err)
	}

	model := tui.NewModel(ctx.Ctx, ctx.Controller(user), ctx.Session, ctx.Toasts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
