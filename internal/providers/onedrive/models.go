package onedrive

import "time"

// DriveItem represents an item in a shared OneDrive folder (used for API responses).
// Field matching is case-insensitive, so both "value" and "Value" decode.
type DriveItem struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	CTag                 string           `json:"cTag,omitempty"`
	ETag                 string           `json:"eTag,omitempty"`
	CreatedDateTime      time.Time        `json:"createdDateTime"`
	LastModifiedDateTime time.Time        `json:"lastModifiedDateTime"`
	Size                 int64            `json:"size"`
	WebURL               string           `json:"webUrl"`
	ContentDownloadURL   string           `json:"@content.downloadUrl,omitempty"`
	GraphDownloadURL     string           `json:"@microsoft.graph.downloadUrl,omitempty"`
	File                 *FileFacet       `json:"file,omitempty"`
	Folder               *FolderFacet     `json:"folder,omitempty"`
	ParentReference      *ParentReference `json:"parentReference,omitempty"`
	FileSystemInfo       *FileSystemInfo  `json:"fileSystemInfo,omitempty"`
	CreatedBy            *IdentitySet     `json:"createdBy,omitempty"`
	LastModifiedBy       *IdentitySet     `json:"lastModifiedBy,omitempty"`
	Shared               *Shared          `json:"shared,omitempty"`
}

// FileFacet is present when the item is a file
type FileFacet struct {
	MimeType string      `json:"mimeType"`
	Hashes   *FileHashes `json:"hashes,omitempty"`
}

// FileHashes holds the hashes OneDrive computed for the file content
type FileHashes struct {
	QuickXorHash string `json:"quickXorHash,omitempty"`
	Sha1Hash     string `json:"sha1Hash,omitempty"`
	Sha256Hash   string `json:"sha256Hash,omitempty"`
}

// FolderFacet is present when the item is a folder
type FolderFacet struct {
	ChildCount int         `json:"childCount"`
	FolderType string      `json:"folderType,omitempty"`
	FolderView *FolderView `json:"folderView,omitempty"`
}

// FolderView holds the display preferences of a folder
type FolderView struct {
	ViewType  string `json:"viewType,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// ParentReference points at the folder containing the item
type ParentReference struct {
	DriveID   string `json:"driveId"`
	DriveType string `json:"driveType,omitempty"`
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Path      string `json:"path,omitempty"`
	ShareID   string `json:"shareId,omitempty"`
}

// FileSystemInfo holds client-side timestamps
type FileSystemInfo struct {
	CreatedDateTime      time.Time `json:"createdDateTime"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
}

// IdentitySet describes who created or modified an item
type IdentitySet struct {
	Application *Identity `json:"application,omitempty"`
	Device      *Identity `json:"device,omitempty"`
	User        *Identity `json:"user,omitempty"`
}

// Identity is a single actor
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// Shared describes the sharing state of an item
type Shared struct {
	EffectiveRoles []string `json:"effectiveRoles,omitempty"`
	Scope          string   `json:"scope,omitempty"`
	Owner          *struct {
		User *Identity `json:"user,omitempty"`
	} `json:"owner,omitempty"`
}

// APIResponse represents the children collection returned by the shares API
type APIResponse struct {
	Count    int         `json:"@odata.count"`
	Value    []DriveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink,omitempty"`
}

// downloadURL returns the direct content link, preferring the one the public API returns
func (item DriveItem) downloadURL() string {
	if item.ContentDownloadURL != "" {
		return item.ContentDownloadURL
	}
	return item.GraphDownloadURL
}
