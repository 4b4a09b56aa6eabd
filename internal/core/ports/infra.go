package ports

import (
	"context"
	"io"
	"time"
)

// Cache is a JSON key/value store with counters.
type Cache interface {
	// GetJSON decodes the value under key into dest and reports whether it was present.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// FileStorage stores binary objects such as posters and avatars.
type FileStorage interface {
	// UploadFile stores the object under key and returns its public URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
