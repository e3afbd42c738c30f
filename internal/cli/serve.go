package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/timesheet/internal/auth"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/web"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:"${listen_addr}" env:"TIMESHEET_ADDR"`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	if _, err := ctx.Session.Restore(); err != nil && !errors.Is(err, auth.ErrUnauthorized) {
		logger.Warn("Cached session unavailable", "error", err)
	}

	srv := web.NewServer(
		web.Config{
			Addr:   cmd.Addr,
			Rules:  ctx.Rules,
			Locale: ctx.Locale,
			Now:    ctx.Now,
		},
		web.Deps{
			Source:  ctx.Client,
			Deleter: ctx.Client,
			Session: ctx.Session,
			Toasts:  ctx.Toasts,
		},
	)

	sigCtx, stop := signal.NotifyContext(ctx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(sigCtx)
}
