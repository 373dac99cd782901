package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"anyonedrive/internal/config"
	"anyonedrive/internal/logging"
	"anyonedrive/internal/providers/onedrive"
	"anyonedrive/internal/storage"
)

// version will be set by main
var version = "dev"

// rootCmd represents the base command for the anyonedrive application
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anyonedrive",
		Short: "Browse and download publicly shared OneDrive folders",
		Long: `anyonedrive reads publicly shared OneDrive folders without signing in.

It can run as:
  - A CLI that lists folders and downloads files from a share link
  - An HTTP gateway exposing the same operations (serve)`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newLsCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newZipCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "anyonedrive version %s\n" .Version}}`)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// app bundles what the browsing commands need
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	storage *storage.Service
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	provider := onedrive.NewOneDriveService(
		onedrive.WithBaseURL(cfg.APIURL),
		onedrive.WithShareHost(cfg.ShareHost),
		onedrive.WithRequestTimeout(cfg.HTTPTimeout),
		onedrive.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		storage: storage.NewService(provider, logger),
	}, nil
}
