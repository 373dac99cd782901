package onedrive

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShareURL       = errors.New("invalid share url")
	ErrAPIRequestFailed      = errors.New("OneDrive API request failed")
	ErrDeserializationFailed = errors.New("failed to decode OneDrive response")
	ErrUnknownItemType       = errors.New("item is neither a file nor a folder")
	ErrMissingDownloadURL    = errors.New("download URL not available")
)

// APIError is returned when the API answers with a non-success status.
// It matches ErrAPIRequestFailed with errors.Is.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OneDrive API error (status %d) at URL '%s'", e.StatusCode, e.Endpoint)
}

func (e *APIError) Unwrap() error {
	return ErrAPIRequestFailed
}
