package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ItemKind tells a file apart from a folder
type ItemKind string

const (
	KindFile   ItemKind = "file"
	KindFolder ItemKind = "folder"
)

// Item is either a FileInfo or a FolderInfo
type Item interface {
	Kind() ItemKind
	Info() ItemInfo
	isItem()
}

// ItemInfo holds the fields shared by files and folders
type ItemInfo struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hashes holds the content hashes reported for a file
type Hashes struct {
	QuickXor string `json:"quick_xor,omitempty"`
	SHA1     string `json:"sha1,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
}

// FileInfo represents a file in a shared folder. URL is the direct content-download link.
type FileInfo struct {
	ItemInfo
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type,omitempty"`
	Hashes   Hashes `json:"hashes"`
}

// FolderInfo represents a shared folder or one of its sub-folders.
// URL is the folder's web link, or the public share link for a folder built by the caller.
type FolderInfo struct {
	ItemInfo
	ChildCount int    `json:"child_count"`
	ID         string `json:"-"` // Item ID within the share
	ShareToken string `json:"-"` // Token of the share the folder was reached through
}

func (FileInfo) Kind() ItemKind     { return KindFile }
func (f FileInfo) Info() ItemInfo   { return f.ItemInfo }
func (FileInfo) isItem()            {}
func (FolderInfo) Kind() ItemKind   { return KindFolder }
func (f FolderInfo) Info() ItemInfo { return f.ItemInfo }
func (FolderInfo) isItem()          {}

// NewFolder creates a folder handle from a public share link
func NewFolder(shareURL string) (FolderInfo, error) {
	cleanURL := strings.TrimSpace(shareURL)
	if cleanURL == "" {
		return FolderInfo{}, errors.New("share URL cannot be empty")
	}

	parsedURL, err := url.Parse(cleanURL)
	if err != nil {
		return FolderInfo{}, fmt.Errorf("invalid URL format: %w", err)
	}

	if !parsedURL.IsAbs() || parsedURL.Host == "" {
		return FolderInfo{}, fmt.Errorf("URL must be absolute: %s", cleanURL)
	}

	return FolderFromURL(parsedURL), nil
}

// FolderFromURL creates a folder handle from an already parsed share link.
// A nil URL yields a folder without a link, which no listing accepts.
func FolderFromURL(shareURL *url.URL) FolderInfo {
	if shareURL == nil {
		return FolderInfo{}
	}
	return FolderInfo{ItemInfo: ItemInfo{URL: shareURL.String()}}
}
