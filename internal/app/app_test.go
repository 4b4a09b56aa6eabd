package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/handler"
	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

type queuedConsumer struct {
	payloads []payloads.MailPayload
}

func (c *queuedConsumer) StartConsumingMail(ctx context.Context, fn func(context.Context, payloads.MailPayload) error) error {
	for _, p := range c.payloads {
		_ = fn(ctx, p)
	}
	return nil
}

type collectingSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *collectingSender) Send(_ context.Context, p payloads.MailPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p.Template)
	return nil
}

func TestRunWorker_DeliversUntilCancelled(t *testing.T) {
	consumer := &queuedConsumer{payloads: []payloads.MailPayload{{Template: "activation"}, {Template: "password_reset"}}}
	sender := &collectingSender{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWorker(ctx, consumer, sender, logger.Discard()) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, []string{"activation", "password_reset"}, sender.sent)
}

func TestRunWorker_RequiresBroker(t *testing.T) {
	err := runWorker(context.Background(), nil, &collectingSender{}, logger.Discard())
	assert.Error(t, err)
}

func TestShutdown_ClosesInReverseOrder(t *testing.T) {
	var order []string
	closer := func(name string, err error) func() error {
		return func() error {
			order = append(order, name)
			return err
		}
	}
	a := NewApp(nil, logger.Discard(), nil, nil, nil,
		closer("db", nil),
		closer("redis", errors.New("already closed")),
		closer("queue", nil),
	)

	err := a.Shutdown()
	assert.Error(t, err)
	assert.Equal(t, []string{"queue", "redis", "db"}, order)
	assert.NoError(t, a.Shutdown())
}

type routeFunc func(r chi.Router)

func (f routeFunc) Routes(r chi.Router) { f(r) }

type staticAuth struct{ caller *domain.Caller }

func (s staticAuth) Authenticate(context.Context, string) (*domain.Caller, error) {
	return s.caller, nil
}

func TestNewRouter_AttachesCaller(t *testing.T) {
	want := &domain.Caller{UserID: 7, Role: domain.RoleUser}
	router := NewRouter(time.Second, staticAuth{caller: want}, logger.Discard(), routeFunc(func(r chi.Router) {
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, want, handler.CallerFrom(r.Context()))
			w.WriteHeader(http.StatusNoContent)
		})
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRun_UnknownMode(t *testing.T) {
	a := NewApp(nil, logger.Discard(), nil, nil, nil)
	mode := "batch"
	assert.Error(t, a.Run(context.Background(), &mode))
}
