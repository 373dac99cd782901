package download

import (
	"anyonedrive/internal/logging"
	"anyonedrive/internal/storage"
	"anyonedrive/pkg/blockio"
	"anyonedrive/pkg/models"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
)

type Service struct {
	storageService StorageService
	blockSize      int
	logger         *slog.Logger
}

func NewService(storageService StorageService, blockSize int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	if blockSize <= 0 {
		blockSize = blockio.DefaultBlockSize
	}
	return &Service{
		storageService: storageService,
		blockSize:      blockSize,
		logger:         logger,
	}
}

// StreamZipArchive writes every file below root into a ZIP archive on the writer.
// Entry names are relative to root.
func (s *Service) StreamZipArchive(ctx context.Context, writer io.Writer, root models.FolderInfo, recursive bool) error {
	entries, err := s.storageService.ListFiles(ctx, root, recursive)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	return s.WriteZipArchive(ctx, writer, entries)
}

// WriteZipArchive streams the given files into a ZIP archive without temporary storage.
// Files that fail to download are logged and skipped. A cancelled context aborts the archive.
func (s *Service) WriteZipArchive(ctx context.Context, writer io.Writer, entries []storage.Entry) error {
	zipWriter := zip.NewWriter(writer)
	logger := logging.WithOperation(s.logger, "download.zip")

	added := 0
	for _, entry := range entries {
		file, ok := entry.Item.(models.FileInfo)
		if !ok {
			continue
		}

		if err := ctx.Err(); err != nil {
			_ = zipWriter.Close()
			return fmt.Errorf("zip archive aborted: %w", err)
		}

		if err := s.addFileToZip(ctx, zipWriter, entry.Path, file); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				_ = zipWriter.Close()
				return fmt.Errorf("zip archive aborted: %w", ctxErr)
			}
			// Continue with other files even if one fails
			logger.WarnContext(ctx, "skipping file", logging.Path(entry.Path), logging.Err(err))
			continue
		}
		added++
	}

	logger.InfoContext(ctx, "zip archive written",
		slog.Int("files", added), slog.Int("skipped", len(entries)-added))

	return zipWriter.Close()
}

// addFileToZip downloads a file from the share and adds it to the ZIP archive
func (s *Service) addFileToZip(ctx context.Context, zipWriter *zip.Writer, name string, file models.FileInfo) error {
	fileStream, err := s.storageService.GetFileStream(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to get file stream: %w", err)
	}
	defer fileStream.Close()

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: file.UpdatedAt,
	}
	zipFile, err := zipWriter.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create ZIP entry: %w", err)
	}

	if _, err := blockio.Copy(zipFile, fileStream, s.blockSize); err != nil {
		return fmt.Errorf("failed to write file to ZIP: %w", err)
	}

	return nil
}
