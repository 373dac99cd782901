package storage

import (
	"anyonedrive/pkg/models"
	"context"
	"io"
)

// Provider defines the interface for browsing a shared folder with a cloud provider
type Provider interface {
	ListItems(ctx context.Context, folder models.FolderInfo) ([]models.Item, error)
	ListFiles(ctx context.Context, folder models.FolderInfo) ([]models.FileInfo, error)
	ListFolders(ctx context.Context, folder models.FolderInfo) ([]models.FolderInfo, error)
	GetStream(ctx context.Context, file models.FileInfo) (io.ReadCloser, error)
}
