package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFolder(t *testing.T) {
	tests := []struct {
		name     string
		shareURL string
		expected string
		wantErr  string
	}{
		{name: "share link", shareURL: "https://1drv.ms/f/s!abc?e=x", expected: "https://1drv.ms/f/s!abc?e=x"},
		{name: "surrounding spaces", shareURL: "  https://1drv.ms/f/s!abc  ", expected: "https://1drv.ms/f/s!abc"},
		{name: "any absolute link", shareURL: "https://onedrive.live.com/?id=B8!9564", expected: "https://onedrive.live.com/?id=B8!9564"},
		{name: "empty", shareURL: "", wantErr: "cannot be empty"},
		{name: "blank", shareURL: "   ", wantErr: "cannot be empty"},
		{name: "relative path", shareURL: "/f/s!abc", wantErr: "must be absolute"},
		{name: "plain words", shareURL: "not a url", wantErr: "must be absolute"},
		{name: "scheme without host", shareURL: "https:///f/s!abc", wantErr: "must be absolute"},
		{name: "unparsable", shareURL: "https://1drv.ms/%zz", wantErr: "invalid URL format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, err := NewFolder(tt.shareURL)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, FolderInfo{}, folder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, folder.URL)
			assert.Empty(t, folder.Name)
			assert.Empty(t, folder.ShareToken)
		})
	}
}

func TestFolderFromURL(t *testing.T) {
	parsed, err := url.Parse("https://1drv.ms/f/s!abc")
	require.NoError(t, err)
	assert.Equal(t, "https://1drv.ms/f/s!abc", FolderFromURL(parsed).URL)

	assert.NotPanics(t, func() {
		assert.Equal(t, FolderInfo{}, FolderFromURL(nil))
	})
}

func TestItemKinds(t *testing.T) {
	items := []Item{
		FileInfo{ItemInfo: ItemInfo{Name: "a.txt"}},
		FolderInfo{ItemInfo: ItemInfo{Name: "docs"}},
	}

	assert.Equal(t, KindFile, items[0].Kind())
	assert.Equal(t, "a.txt", items[0].Info().Name)
	assert.Equal(t, KindFolder, items[1].Kind())
	assert.Equal(t, "docs", items[1].Info().Name)
}
