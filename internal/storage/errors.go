package storage

import (
	"context"
	"errors"
	"net/http"

	"anyonedrive/internal/providers/onedrive"
	"anyonedrive/pkg/blockio"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrNotAFolder  = errors.New("path must point to a folder, not a file")
	ErrNotAFile    = errors.New("path must point to a file, not a folder")
	ErrInvalidKind = errors.New("kind must be one of all, files, folders")
)

type ErrorResponse struct {
	StatusCode int
	Message    string
}

// GetErrorResponse returns appropriate HTTP response for an error
func GetErrorResponse(err error) ErrorResponse {
	switch {
	case errors.Is(err, onedrive.ErrInvalidShareURL):
		return ErrorResponse{http.StatusBadRequest, err.Error()}
	case errors.Is(err, ErrNotFound):
		return ErrorResponse{http.StatusNotFound, err.Error()}
	case errors.Is(err, ErrNotAFolder), errors.Is(err, ErrNotAFile), errors.Is(err, ErrInvalidKind):
		return ErrorResponse{http.StatusBadRequest, err.Error()}
	case errors.Is(err, blockio.ErrInvalidBlockSize):
		return ErrorResponse{http.StatusBadRequest, err.Error()}
	case errors.Is(err, onedrive.ErrAPIRequestFailed):
		var apiErr *onedrive.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return ErrorResponse{http.StatusNotFound, "Shared folder not found. Please check the share link."}
		}
		return ErrorResponse{http.StatusBadGateway, "OneDrive rejected the request. Please try again later."}
	case errors.Is(err, onedrive.ErrDeserializationFailed), errors.Is(err, onedrive.ErrUnknownItemType):
		return ErrorResponse{http.StatusBadGateway, err.Error()}
	case errors.Is(err, onedrive.ErrMissingDownloadURL):
		return ErrorResponse{http.StatusBadGateway, err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorResponse{http.StatusGatewayTimeout, "Request timed out. Please try again."}
	case errors.Is(err, context.Canceled):
		return ErrorResponse{http.StatusRequestTimeout, "Request was cancelled."}
	default:
		return ErrorResponse{http.StatusInternalServerError, "An unexpected error occurred. Please try again."}
	}
}
