package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/mail"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

// runWorker delivers queued mail until ctx is cancelled.
func runWorker(ctx context.Context, consumer ports.MailConsumer, sender mail.Sender, logger *slog.Logger) error {
	if consumer == nil {
		return errors.New("worker mode requires RABBITMQ_URL")
	}

	logger.Info("worker started, waiting for mail")

	handle := func(ctx context.Context, payload payloads.MailPayload) error {
		if err := sender.Send(ctx, payload); err != nil {
			logger.Error("failed to deliver mail", "template", payload.Template, "error", err)
			return err
		}
		return nil
	}

	if err := consumer.StartConsumingMail(ctx, handle); err != nil {
		return fmt.Errorf("start mail consumer: %w", err)
	}

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}
