package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

type recordingSender struct {
	sent []payloads.MailPayload
}

func (r *recordingSender) Send(_ context.Context, p payloads.MailPayload) error {
	r.sent = append(r.sent, p)
	return nil
}

func TestLogPublisher_HandsOffToSender(t *testing.T) {
	rec := &recordingSender{}
	pub := NewLogPublisher(rec)

	err := pub.PublishMail(context.Background(), payloads.MailPayload{Template: payloads.MailPasswordReset, To: "a@b.c"})
	assert.NoError(t, err)
	assert.Len(t, rec.sent, 1)
	assert.Equal(t, payloads.MailPasswordReset, rec.sent[0].Template)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender(logger.Discard()).Send(context.Background(), payloads.MailPayload{To: "a@b.c"}))
}
