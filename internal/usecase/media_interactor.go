package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type mediaUseCase struct {
	files  ports.FileStorage
	logger *slog.Logger
}

// NewMediaUseCase accepts a nil files when object storage is not configured.
func NewMediaUseCase(files ports.FileStorage, logger *slog.Logger) MediaUseCase {
	return &mediaUseCase{files: files, logger: logger}
}

func (uc *mediaUseCase) Upload(ctx context.Context, folder string, file Upload) (string, error) {
	if uc.files == nil {
		return "", apperrors.Internal("file storage is not configured")
	}
	if file.Size > MaxUploadSize {
		return "", apperrors.BadRequest("file is larger than 5 MiB")
	}

	contentType := strings.ToLower(strings.TrimSpace(file.ContentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", apperrors.BadRequest("only jpeg, png, gif and webp images are accepted")
	}
	if e := strings.ToLower(path.Ext(file.Filename)); e == ".jpeg" && ext == ".jpg" {
		ext = e
	}

	start := time.Now()
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	url, err := uc.files.UploadFile(ctx, key, file.Reader, contentType)
	if err != nil {
		uc.logger.Error("failed to upload file", "key", key, "error", err)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	uc.logger.Info("file stored",
		"key", key,
		"size", file.Size,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return url, nil
}
