package storage

import (
	"context"
)

type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, folder, filename string) (string, error)

	DeleteFile(ctx context.Context, fileURL string) error
}
