package download

import (
	"anyonedrive/internal/storage"
	"anyonedrive/pkg/models"
	"context"
	"io"
)

// StorageService lists and opens the files that go into an archive
type StorageService interface {
	ListFiles(ctx context.Context, folder models.FolderInfo, recursive bool) ([]storage.Entry, error)
	GetFileStream(ctx context.Context, file models.FileInfo) (io.ReadCloser, error)
}

// FolderResolver turns a share link and path into a folder handle
type FolderResolver interface {
	Open(shareURL string) (models.FolderInfo, error)
	ResolveFolder(ctx context.Context, root models.FolderInfo, itemPath string) (models.FolderInfo, error)
}
