package usecase

import (
	"context"
	"io"
)

// MaxUploadSize bounds poster and avatar uploads.
const MaxUploadSize = 5 << 20

// Upload is one file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// MediaUseCase validates images and stores them in object storage.
type MediaUseCase interface {
	// Upload stores file under folder and returns its public URL.
	Upload(ctx context.Context, folder string, file Upload) (string, error)
}
