// Package mail holds the delivery side of the mail hand-off.
package mail

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

// Sender delivers one mail.
type Sender interface {
	Send(ctx context.Context, payload payloads.MailPayload) error
}

// LogSender records each mail instead of delivering it.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, payload payloads.MailPayload) error {
	s.logger.Info("mail delivered",
		"template", payload.Template,
		"to", payload.To,
		"subject", payload.Subject,
	)
	return nil
}

// LogPublisher implements ports.MailPublisher when no broker is configured.
type LogPublisher struct {
	sender Sender
}

func NewLogPublisher(sender Sender) *LogPublisher {
	return &LogPublisher{sender: sender}
}

func (p *LogPublisher) PublishMail(ctx context.Context, payload payloads.MailPayload) error {
	return p.sender.Send(ctx, payload)
}
