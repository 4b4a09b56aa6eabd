package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

// RequestLogger logs every HTTP request with its status and duration.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter records the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Authenticator resolves a bearer token to a caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Caller, error)
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller attached by OptionalAuth, nil when anonymous.
func CallerFrom(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(callerKey{}).(*domain.Caller)
	return caller
}

// OptionalAuth attaches the caller of a valid bearer token. It never rejects.
func OptionalAuth(auth Authenticator, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			caller, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debug("ignoring invalid bearer token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RequireAuth answers 401 when no caller is attached.
func RequireAuth(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CallerFrom(r.Context()) == nil {
				respondWithError(w, http.StatusUnauthorized, "authentication required", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly answers 401 for anonymous and 403 for non-admin callers.
func AdminOnly(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFrom(r.Context())
			if caller == nil {
				respondWithError(w, http.StatusUnauthorized, "authentication required", logger)
				return
			}
			if !caller.IsAdmin() {
				respondWithError(w, http.StatusForbidden, "admin role required", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
