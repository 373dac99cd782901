package storage

import (
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for storage operations
type Handler struct {
	service *Service
}

// NewHandler creates a new storage handler
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers storage routes with the Echo router
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/storage/items", h.GetFolderContents)
	e.GET("/storage/tree", h.GetTree)
}

// GetFolderContents handles GET /storage/items
// It lists the children of a folder inside a share, optionally only files or only folders
func (h *Handler) GetFolderContents(c echo.Context) error {
	shareURL := c.QueryParam("share_url")
	itemPath := c.QueryParam("path")
	kind := ItemKindFilter(c.QueryParam("kind"))

	if shareURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "share_url query parameter is required",
		})
	}

	ctx := c.Request().Context()

	root, err := h.service.Open(shareURL)
	if err != nil {
		return ErrorJSON(c, err)
	}

	folder, err := h.service.ResolveFolder(ctx, root, itemPath)
	if err != nil {
		return ErrorJSON(c, err)
	}

	items, err := h.service.ListFolderContents(ctx, folder, kind)
	if err != nil {
		return ErrorJSON(c, err)
	}

	contents := make([]Entry, 0, len(items))
	for _, item := range items {
		contents = append(contents, Entry{
			Kind: item.Kind(),
			Path: joinPath(itemPath, item.Info().Name),
			Item: item,
		})
	}

	return c.JSON(http.StatusOK, GetFolderContentsResponse{
		Folder:   folder,
		Path:     itemPath,
		Contents: contents,
	})
}

// GetTree handles GET /storage/tree
// It walks a folder recursively and returns every item with its path
func (h *Handler) GetTree(c echo.Context) error {
	shareURL := c.QueryParam("share_url")
	itemPath := c.QueryParam("path")

	if shareURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "share_url query parameter is required",
		})
	}

	ctx := c.Request().Context()

	root, err := h.service.Open(shareURL)
	if err != nil {
		return ErrorJSON(c, err)
	}

	folder, err := h.service.ResolveFolder(ctx, root, itemPath)
	if err != nil {
		return ErrorJSON(c, err)
	}

	entries, err := h.service.ListTree(ctx, folder)
	if err != nil {
		return ErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, GetTreeResponse{
		Folder:  folder,
		Path:    itemPath,
		Entries: entries,
	})
}

// ErrorJSON writes the error response mapped by GetErrorResponse
func ErrorJSON(c echo.Context, err error) error {
	resp := GetErrorResponse(err)
	return c.JSON(resp.StatusCode, map[string]string{
		"error": resp.Message,
	})
}

func joinPath(parent, name string) string {
	return path.Join(strings.Join(SplitPath(parent), "/"), name)
}
