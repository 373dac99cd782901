package onedrive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anyonedrive/pkg/models"
)

func TestService_ShareToken(t *testing.T) {
	service := NewOneDriveService()

	tests := []struct {
		name     string
		shareURL string
		expected string
		wantErr  bool
	}{
		{name: "link with e parameter", shareURL: "https://1drv.ms/f/s!AuveTnis1UC4ylwrkuYqhdobhUGy?e=aq9M7h", expected: "s!AuveTnis1UC4ylwrkuYqhdobhUGy"},
		{name: "link without parameters", shareURL: "https://1drv.ms/f/s!AuveTnis1UC4ylwrkuYqhdobhUGy", expected: "s!AuveTnis1UC4ylwrkuYqhdobhUGy"},
		{name: "trailing slash", shareURL: "https://1drv.ms/f/s!abc/", expected: "s!abc"},
		{name: "surrounding spaces", shareURL: "  https://1drv.ms/f/s!abc?e=1  ", expected: "s!abc"},
		{name: "missing token", shareURL: "https://1drv.ms/f/", wantErr: true},
		{name: "missing token with e parameter", shareURL: "https://1drv.ms/f/?e=abc", wantErr: true},
		{name: "file link", shareURL: "https://1drv.ms/u/s!abc?e=1", wantErr: true},
		{name: "other host", shareURL: "https://onedrive.live.com/f/s!abc", wantErr: true},
		{name: "plain http", shareURL: "http://1drv.ms/f/s!abc", wantErr: true},
		{name: "nested path", shareURL: "https://1drv.ms/f/c/abc/def", expected: "c/abc/def"},
		{name: "nested token with e parameter", shareURL: "https://1drv.ms/f/c/3b4f8b1ee2c1d6a0/EqZ7tA1b2c3d4?e=AbCdEf", expected: "c/3b4f8b1ee2c1d6a0/EqZ7tA1b2c3d4"},
		{name: "unknown query", shareURL: "https://1drv.ms/f/s!abc?x=1", expected: "s!abc?x=1"},
		{name: "e parameter after other query", shareURL: "https://1drv.ms/f/s!abc?x=1?e=2", expected: "s!abc?x=1"},
		{name: "empty", shareURL: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.ShareToken(tt.shareURL)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidShareURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestService_ResolveEndpoint(t *testing.T) {
	service := NewOneDriveService()

	root, err := models.NewFolder("https://1drv.ms/f/s!AuveTnis1UC4ylwrkuYqhdobhUGy?e=aq9M7h")
	require.NoError(t, err)

	endpoint, token, err := service.ResolveEndpoint(root)
	require.NoError(t, err)
	assert.Equal(t, "https://api.onedrive.com/v1.0/shares/s!AuveTnis1UC4ylwrkuYqhdobhUGy/root/children", endpoint)
	assert.Equal(t, "s!AuveTnis1UC4ylwrkuYqhdobhUGy", token)
}

func TestService_ResolveEndpoint_SubFolder(t *testing.T) {
	service := NewOneDriveService(WithBaseURL("https://api.example.com/v1.0/"))

	sub := models.FolderInfo{
		ItemInfo:   models.ItemInfo{Name: "Single folder", URL: "https://onedrive.live.com/?id=B8!9564"},
		ID:         "B8!9564",
		ShareToken: "s!abc",
	}

	endpoint, token, err := service.ResolveEndpoint(sub)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1.0/shares/s!abc/items/B8!9564/children", endpoint)
	assert.Equal(t, "s!abc", token)
}

func TestService_ResolveEndpoint_SubFolderWithShareLink(t *testing.T) {
	service := NewOneDriveService()

	sub := models.FolderInfo{
		ItemInfo:   models.ItemInfo{Name: "Single folder", URL: "https://1drv.ms/f/s!sub"},
		ID:         "B8!9564",
		ShareToken: "s!abc",
	}

	endpoint, _, err := service.ResolveEndpoint(sub)
	require.NoError(t, err)
	assert.Equal(t, "https://api.onedrive.com/v1.0/shares/s!sub/root/children", endpoint)
}

func TestService_ResolveEndpoint_Invalid(t *testing.T) {
	service := NewOneDriveService()

	folder, err := models.NewFolder("https://onedrive.live.com/?id=B8!9564")
	require.NoError(t, err)

	_, _, err = service.ResolveEndpoint(folder)
	assert.ErrorIs(t, err, ErrInvalidShareURL)
}

func TestService_CustomShareHost(t *testing.T) {
	service := NewOneDriveService(WithShareHost("share.example.com"))

	token, err := service.ShareToken("https://share.example.com/f/tok123?e=x")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	_, err = service.ShareToken("https://1drv.ms/f/tok123")
	assert.ErrorIs(t, err, ErrInvalidShareURL)
}
