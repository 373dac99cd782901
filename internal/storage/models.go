package storage

import "anyonedrive/pkg/models"

// ItemKindFilter selects which children a listing returns
type ItemKindFilter string

const (
	FilterAll     ItemKindFilter = "all"
	FilterFiles   ItemKindFilter = "files"
	FilterFolders ItemKindFilter = "folders"
)

// Entry is an item together with its path from the share root
type Entry struct {
	Kind models.ItemKind `json:"kind"`
	Path string          `json:"path"`
	Item models.Item     `json:"item"`
}

// GetFolderContentsResponse represents the response for getting folder contents
type GetFolderContentsResponse struct {
	Folder   models.FolderInfo `json:"folder"`
	Path     string            `json:"path"`
	Contents []Entry           `json:"contents"`
}

// GetTreeResponse represents the response for walking a folder tree
type GetTreeResponse struct {
	Folder  models.FolderInfo `json:"folder"`
	Path    string            `json:"path"`
	Entries []Entry           `json:"entries"`
}
