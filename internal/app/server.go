package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/MovieCatalog/internal/config"
	"github.com/GoArmGo/MovieCatalog/internal/handler"
)

const shutdownTimeout = 30 * time.Second

// Routes registers the endpoints of one handler on the root router.
type Routes interface {
	Routes(r chi.Router)
}

// NewRouter builds the HTTP API. Every request carries the caller identity
// when a valid bearer token is present.
func NewRouter(timeout time.Duration, authn handler.Authenticator, logger *slog.Logger, routes ...Routes) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(handler.OptionalAuth(authn, logger))

	for _, rt := range routes {
		rt.Routes(r)
	}
	return r
}

// runServer serves router until ctx is cancelled and then drains open requests.
func runServer(ctx context.Context, cfg *config.Config, router http.Handler, logger *slog.Logger) error {
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", serverAddr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
