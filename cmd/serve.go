package cmd

import (
	"github.com/spf13/cobra"

	"anyonedrive/internal/config"
	"anyonedrive/internal/logging"
	"anyonedrive/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Long: `Serve the share browser over HTTP until interrupted. The listen address
defaults to :$PORT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			return server.New(cfg, logger, version).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, e.g. 127.0.0.1:8080")
	return cmd
}
