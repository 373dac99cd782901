package download

import (
	"anyonedrive/internal/logging"
	"anyonedrive/internal/storage"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for download operations
type Handler struct {
	service  *Service
	storage  StorageService
	resolver FolderResolver
	logger   *slog.Logger
}

// NewHandler creates a new download handler
func NewHandler(service *Service, storageService *storage.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		service:  service,
		storage:  storageService,
		resolver: storageService,
		logger:   logger,
	}
}

// RegisterRoutes registers download routes with the Echo router
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/downloads/zip", h.DownloadZip)
}

// DownloadZip handles POST /downloads/zip
// It streams the files of a shared folder as a ZIP archive directly to the response
func (h *Handler) DownloadZip(c echo.Context) error {
	var req ZipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.ShareURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "share_url is required",
		})
	}

	ctx := c.Request().Context()

	root, err := h.resolver.Open(req.ShareURL)
	if err != nil {
		return storage.ErrorJSON(c, err)
	}

	folder, err := h.resolver.ResolveFolder(ctx, root, req.Path)
	if err != nil {
		return storage.ErrorJSON(c, err)
	}

	entries, err := h.storage.ListFiles(ctx, folder, req.Recursive)
	if err != nil {
		return storage.ErrorJSON(c, err)
	}

	if len(entries) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "No files found in the shared folder",
		})
	}

	// Set appropriate headers for ZIP download
	name := folder.Name
	if name == "" {
		name = "onedrive-share"
	}
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s.zip", name, timestamp)

	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Response().WriteHeader(http.StatusOK)

	// Stream the ZIP archive directly to the response
	if err := h.service.WriteZipArchive(ctx, c.Response(), entries); err != nil {
		// Headers are already sent, the connection is closed with a truncated archive
		h.logger.ErrorContext(ctx, "failed to stream ZIP archive",
			logging.Operation("download.zip"), logging.Path(req.Path), logging.Err(err))
		return nil
	}

	return nil
}
