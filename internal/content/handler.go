// Package content proxies the content of a single shared file.
package content

import (
	"anyonedrive/internal/logging"
	"anyonedrive/internal/storage"
	"anyonedrive/pkg/blockio"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	storageService StorageService
	blockSize      int
	logger         *slog.Logger
}

func NewHandler(storageService StorageService, blockSize int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	if blockSize <= 0 {
		blockSize = blockio.DefaultBlockSize
	}
	return &Handler{
		storageService: storageService,
		blockSize:      blockSize,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/content", h.handleContent)
}

func (h *Handler) handleContent(c echo.Context) error {
	shareURL := c.QueryParam("share_url")
	itemPath := c.QueryParam("path")

	if shareURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "share_url is required",
		})
	}

	if itemPath == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "path is required",
		})
	}

	ctx := c.Request().Context()

	root, err := h.storageService.Open(shareURL)
	if err != nil {
		return storage.ErrorJSON(c, err)
	}

	file, err := h.storageService.ResolveFile(ctx, root, itemPath)
	if err != nil {
		return storage.ErrorJSON(c, err)
	}

	stream, err := h.storageService.GetFileStream(ctx, file)
	if err != nil {
		return storage.ErrorJSON(c, err)
	}
	defer stream.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, contentType)
	header.Set(echo.HeaderContentLength, strconv.FormatInt(file.Size, 10))
	header.Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("inline", map[string]string{"filename": file.Name}))
	header.Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	c.Response().WriteHeader(http.StatusOK)

	written, err := blockio.Copy(c.Response(), stream, h.blockSize)
	if err != nil {
		// Headers are already sent, the client sees a short body
		h.logger.ErrorContext(ctx, "failed to stream file",
			logging.Operation("content.stream"), logging.Path(itemPath), logging.Err(err),
			slog.Int64("written", written), slog.Int64("size", file.Size))
	}

	return nil
}
