package storage

import (
	"anyonedrive/internal/logging"
	"anyonedrive/internal/providers/onedrive"
	"anyonedrive/pkg/models"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
)

// SkipDir can be returned by a WalkFunc to skip the children of a folder.
// Returned for a file, it skips the remaining items of the folder holding that file.
var SkipDir = errors.New("skip this folder")

// WalkFunc is called for every item below the walked folder.
// itemPath is relative to the walked folder and uses "/" separators.
type WalkFunc func(itemPath string, item models.Item) error

// Service is the main storage service that browses shared folders through a provider
type Service struct {
	oneDriveStorage Provider
	logger          *slog.Logger
}

// NewService creates a new storage service with an injected provider dependency
func NewService(oneDriveStorage Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		oneDriveStorage: oneDriveStorage,
		logger:          logger,
	}
}

// Open builds the root folder handle of a share link
func (s *Service) Open(shareURL string) (models.FolderInfo, error) {
	folder, err := models.NewFolder(shareURL)
	if err != nil {
		return models.FolderInfo{}, fmt.Errorf("%w: %v", onedrive.ErrInvalidShareURL, err)
	}
	return folder, nil
}

// ListFolderContents lists the children of a folder, optionally restricted to files or folders
func (s *Service) ListFolderContents(ctx context.Context, folder models.FolderInfo, filter ItemKindFilter) ([]models.Item, error) {
	switch filter {
	case FilterAll, "":
		return s.oneDriveStorage.ListItems(ctx, folder)
	case FilterFiles:
		files, err := s.oneDriveStorage.ListFiles(ctx, folder)
		if err != nil {
			return nil, err
		}
		items := make([]models.Item, 0, len(files))
		for _, file := range files {
			items = append(items, file)
		}
		return items, nil
	case FilterFolders:
		folders, err := s.oneDriveStorage.ListFolders(ctx, folder)
		if err != nil {
			return nil, err
		}
		items := make([]models.Item, 0, len(folders))
		for _, sub := range folders {
			items = append(items, sub)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidKind, filter)
	}
}

// Resolve descends from root along a "/"-separated path of item names.
// An empty path resolves to root itself.
func (s *Service) Resolve(ctx context.Context, root models.FolderInfo, itemPath string) (models.Item, error) {
	var current models.Item = root
	walked := ""

	for _, name := range SplitPath(itemPath) {
		folder, ok := current.(models.FolderInfo)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotAFolder, walked)
		}

		children, err := s.oneDriveStorage.ListItems(ctx, folder)
		if err != nil {
			return nil, fmt.Errorf("failed to list folder contents: %w", err)
		}

		walked = path.Join(walked, name)
		current = nil
		for _, child := range children {
			if child.Info().Name == name {
				current = child
				break
			}
		}
		if current == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, walked)
		}
	}

	return current, nil
}

// ResolveFolder resolves a path that must point to a folder
func (s *Service) ResolveFolder(ctx context.Context, root models.FolderInfo, itemPath string) (models.FolderInfo, error) {
	item, err := s.Resolve(ctx, root, itemPath)
	if err != nil {
		return models.FolderInfo{}, err
	}
	folder, ok := item.(models.FolderInfo)
	if !ok {
		return models.FolderInfo{}, fmt.Errorf("%w: %s", ErrNotAFolder, itemPath)
	}
	return folder, nil
}

// ResolveFile resolves a path that must point to a file
func (s *Service) ResolveFile(ctx context.Context, root models.FolderInfo, itemPath string) (models.FileInfo, error) {
	item, err := s.Resolve(ctx, root, itemPath)
	if err != nil {
		return models.FileInfo{}, err
	}
	file, ok := item.(models.FileInfo)
	if !ok {
		return models.FileInfo{}, fmt.Errorf("%w: %s", ErrNotAFile, itemPath)
	}
	return file, nil
}

// Walk visits every item below folder depth-first, in the order the provider returns them.
// Each folder is listed once.
func (s *Service) Walk(ctx context.Context, folder models.FolderInfo, fn WalkFunc) error {
	return s.walk(ctx, folder, "", fn)
}

func (s *Service) walk(ctx context.Context, folder models.FolderInfo, prefix string, fn WalkFunc) error {
	s.logger.DebugContext(ctx, "walking folder", logging.Operation("storage.walk"), logging.Path(prefix))

	children, err := s.oneDriveStorage.ListItems(ctx, folder)
	if err != nil {
		return fmt.Errorf("failed to list folder %q: %w", prefix, err)
	}

	for _, child := range children {
		childPath := path.Join(prefix, child.Info().Name)

		err := fn(childPath, child)
		sub, isFolder := child.(models.FolderInfo)
		if errors.Is(err, SkipDir) {
			if isFolder {
				continue
			}
			return nil
		}
		if err != nil {
			return err
		}

		if isFolder {
			if err := s.walk(ctx, sub, childPath, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// ListTree returns every item below folder with its relative path
func (s *Service) ListTree(ctx context.Context, folder models.FolderInfo) ([]Entry, error) {
	entries := make([]Entry, 0)
	err := s.Walk(ctx, folder, func(itemPath string, item models.Item) error {
		entries = append(entries, Entry{Kind: item.Kind(), Path: itemPath, Item: item})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListFiles lists the files of a folder, descending into sub-folders when recursive is set
func (s *Service) ListFiles(ctx context.Context, folder models.FolderInfo, recursive bool) ([]Entry, error) {
	if !recursive {
		files, err := s.oneDriveStorage.ListFiles(ctx, folder)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(files))
		for _, file := range files {
			entries = append(entries, Entry{Kind: models.KindFile, Path: file.Name, Item: file})
		}
		return entries, nil
	}

	entries := make([]Entry, 0)
	err := s.Walk(ctx, folder, func(itemPath string, item models.Item) error {
		if item.Kind() == models.KindFile {
			entries = append(entries, Entry{Kind: models.KindFile, Path: itemPath, Item: item})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetFileStream retrieves a file stream for downloading
func (s *Service) GetFileStream(ctx context.Context, file models.FileInfo) (io.ReadCloser, error) {
	return s.oneDriveStorage.GetStream(ctx, file)
}

// SplitPath splits a "/"-separated item path into names, ignoring empty segments
func SplitPath(itemPath string) []string {
	parts := strings.Split(itemPath, "/")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
