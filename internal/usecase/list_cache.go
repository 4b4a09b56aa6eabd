package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

// ListCache caches anonymous catalog responses under a per-kind version.
// Bumping the version makes every older key unreachable.
type ListCache struct {
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewListCache(cache ports.Cache, ttl time.Duration, logger *slog.Logger) *ListCache {
	return &ListCache{cache: cache, ttl: ttl, logger: logger}
}

func versionKey(kind domain.Kind) string {
	return fmt.Sprintf("catalog:%s:version", kind)
}

// Key builds the cache key of one query of kind.
func (c *ListCache) Key(ctx context.Context, kind domain.Kind, query string) string {
	var version int64
	if _, err := c.cache.GetJSON(ctx, versionKey(kind), &version); err != nil {
		c.logger.Warn("failed to read cache version", "kind", kind, "error", err)
	}
	return fmt.Sprintf("catalog:%s:v%d:%s", kind, version, query)
}

func (c *ListCache) Get(ctx context.Context, key string, dest any) bool {
	found, err := c.cache.GetJSON(ctx, key, dest)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (c *ListCache) Set(ctx context.Context, key string, value any) {
	if err := c.cache.SetJSON(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Invalidate bumps the version of kind.
func (c *ListCache) Invalidate(ctx context.Context, kind domain.Kind) {
	if _, err := c.cache.Incr(ctx, versionKey(kind)); err != nil {
		c.logger.Warn("failed to bump cache version", "kind", kind, "error", err)
	}
}
