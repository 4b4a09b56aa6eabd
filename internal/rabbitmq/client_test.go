package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

type fakeAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAck) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestDispatch(t *testing.T) {
	body, err := json.Marshal(payloads.MailPayload{Template: payloads.MailActivation, To: "neo@matrix.io"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       []byte
		handlerErr error
		want       fakeAck
	}{
		{"delivered", body, nil, fakeAck{acked: true}},
		{"malformed body is dropped", []byte("{"), nil, fakeAck{nacked: true}},
		{"handler failure is requeued", body, errors.New("smtp down"), fakeAck{nacked: true, requeued: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAck{}
			var got payloads.MailPayload
			dispatch(context.Background(), tt.body, ack, func(_ context.Context, p payloads.MailPayload) error {
				got = p
				return tt.handlerErr
			}, logger.Discard())

			assert.Equal(t, tt.want, *ack)
			if tt.want.acked {
				assert.Equal(t, "neo@matrix.io", got.To)
			}
		})
	}
}
