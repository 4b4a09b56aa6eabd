package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/MovieCatalog/internal/config"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/mail"
)

type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	router   http.Handler
	consumer ports.MailConsumer
	sender   mail.Sender
	closers  []func() error
}

// NewApp takes ownership of closers, which are called in reverse order on Shutdown.
// consumer is nil when no broker is configured.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	consumer ports.MailConsumer,
	sender mail.Sender,
	closers ...func() error,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		consumer: consumer,
		sender:   sender,
		closers:  closers,
	}
}

func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run blocks until SIGINT or SIGTERM and then releases every resource.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = runServer(ctx, a.cfg, a.router, a.logger)
	case "worker":
		err = runWorker(ctx, a.consumer, a.sender, a.logger)
	default:
		err = fmt.Errorf("unknown mode %q (use 'server' or 'worker')", *mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	if err != nil {
		return err
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown closes every resource of the application.
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
