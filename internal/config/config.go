// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"anyonedrive/internal/logging"
	"anyonedrive/internal/providers/onedrive"
	"anyonedrive/pkg/blockio"
)

const (
	DefaultPort        = "8080"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogFormat   = "text"
)

// Config holds every setting of the CLI and the HTTP gateway
type Config struct {
	APIURL      string
	ShareHost   string
	Port        string
	ListenAddr  string // overrides Port when set
	Domain      string
	LogLevel    slog.Level
	LogFormat   string
	BlockSize   int
	HTTPTimeout time.Duration
}

// Load reads .env files for local development, then the environment.
// The files are skipped when DOCKER_ENV is set. Missing files are not an error.
func Load(files ...string) (*Config, error) {
	if os.Getenv("DOCKER_ENV") == "" {
		if len(files) == 0 {
			files = []string{".env"}
		}
		for _, file := range files {
			if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load %s: %w", file, err)
			}
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from environment variables, applying defaults
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIURL:      getEnv("ONEDRIVE_API_URL", onedrive.DefaultBaseURL),
		ShareHost:   getEnv("ONEDRIVE_SHARE_HOST", onedrive.DefaultShareHost),
		Port:        getEnv("PORT", DefaultPort),
		Domain:      os.Getenv("DOMAIN"),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		BlockSize:   blockio.DefaultBlockSize,
		HTTPTimeout: DefaultHTTPTimeout,
	}

	level, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", cfg.LogFormat)
	}

	if v := os.Getenv("BLOCK_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid BLOCK_SIZE %q: must be a positive integer", v)
		}
		cfg.BlockSize = size
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: must be a positive duration", v)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

// Addr is the listen address of the HTTP gateway
func (c *Config) Addr() string {
	if c.ListenAddr != "" {
		return c.ListenAddr
	}
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
