package onedrive

import (
	"fmt"

	"anyonedrive/pkg/models"
)

// classify converts a DriveItem into a file or folder handle.
// Items carrying both facets, or neither, are rejected.
func classify(item DriveItem, shareToken string) (models.Item, error) {
	switch {
	case item.File != nil && item.Folder != nil:
		return nil, fmt.Errorf("%w: %q carries both file and folder facets", ErrUnknownItemType, item.Name)
	case item.File != nil:
		return toFileInfo(item), nil
	case item.Folder != nil:
		return toFolderInfo(item, shareToken), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownItemType, item.Name)
	}
}

func toItemInfo(item DriveItem, itemURL string) models.ItemInfo {
	return models.ItemInfo{
		Name:      item.Name,
		URL:       itemURL,
		CreatedAt: item.CreatedDateTime,
		UpdatedAt: item.LastModifiedDateTime,
	}
}

func toFileInfo(item DriveItem) models.FileInfo {
	file := models.FileInfo{
		ItemInfo: toItemInfo(item, item.downloadURL()),
		Size:     item.Size,
	}

	if item.File != nil {
		file.MimeType = item.File.MimeType
		if item.File.Hashes != nil {
			file.Hashes = models.Hashes{
				QuickXor: item.File.Hashes.QuickXorHash,
				SHA1:     item.File.Hashes.Sha1Hash,
				SHA256:   item.File.Hashes.Sha256Hash,
			}
		}
	}

	return file
}

func toFolderInfo(item DriveItem, shareToken string) models.FolderInfo {
	folder := models.FolderInfo{
		ItemInfo:   toItemInfo(item, item.WebURL),
		ID:         item.ID,
		ShareToken: shareToken,
	}

	if item.Folder != nil {
		folder.ChildCount = item.Folder.ChildCount
	}

	return folder
}
