package content

import (
	"anyonedrive/pkg/models"
	"context"
	"io"
)

// StorageService resolves a file inside a share and opens its content
type StorageService interface {
	Open(shareURL string) (models.FolderInfo, error)
	ResolveFile(ctx context.Context, root models.FolderInfo, itemPath string) (models.FileInfo, error)
	GetFileStream(ctx context.Context, file models.FileInfo) (io.ReadCloser, error)
}
