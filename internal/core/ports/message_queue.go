package ports

import (
	"context"

	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

// MailPublisher hands outgoing mail to the delivery pipeline.
type MailPublisher interface {
	PublishMail(ctx context.Context, payload payloads.MailPayload) error
}

// MailConsumer is used by the worker to receive queued mail.
type MailConsumer interface {
	// StartConsumingMail calls handler for every message until ctx is cancelled.
	// It returns once the consumer is registered.
	StartConsumingMail(ctx context.Context, handler func(context.Context, payloads.MailPayload) error) error
}
