package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DOCKER_ENV", "ONEDRIVE_API_URL", "ONEDRIVE_SHARE_HOST", "PORT", "DOMAIN",
	"LOG_LEVEL", "LOG_FORMAT", "BLOCK_SIZE", "HTTP_TIMEOUT",
}

// clearEnv blanks every variable the config reads; t.Setenv restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.onedrive.com/v1.0", cfg.APIURL)
	assert.Equal(t, "1drv.ms", cfg.ShareHost)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.Domain)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 65536, cfg.BlockSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ONEDRIVE_API_URL", "http://localhost:9000/v1.0")
	t.Setenv("ONEDRIVE_SHARE_HOST", "share.example.com")
	t.Setenv("PORT", "9999")
	t.Setenv("DOMAIN", "drive.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("BLOCK_SIZE", "4096")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/v1.0", cfg.APIURL)
	assert.Equal(t, "share.example.com", cfg.ShareHost)
	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, "drive.example.com", cfg.Domain)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 4096, cfg.BlockSize)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"LOG_LEVEL", "chatty"},
		{"LOG_FORMAT", "xml"},
		{"BLOCK_SIZE", "big"},
		{"BLOCK_SIZE", "0"},
		{"BLOCK_SIZE", "-5"},
		{"HTTP_TIMEOUT", "30"},
		{"HTTP_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("PORT=7070\nBLOCK_SIZE=1024\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("BLOCK_SIZE")
	})
	// godotenv does not override variables that are already set
	os.Unsetenv("PORT")
	os.Unsetenv("BLOCK_SIZE")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 1024, cfg.BlockSize)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_DockerSkipsDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCKER_ENV", "1")

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("PORT=7070\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{Port: "8080"}
	assert.Equal(t, ":8080", cfg.Addr())

	cfg.ListenAddr = "127.0.0.1:9000"
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}
