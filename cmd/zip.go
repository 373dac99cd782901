package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"anyonedrive/internal/download"
)

func newZipCmd() *cobra.Command {
	var output string
	var recursive bool

	cmd := &cobra.Command{
		Use:   "zip <share-url> [path]",
		Short: "Download the files of a shared folder as a ZIP archive",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			root, err := a.storage.Open(args[0])
			if err != nil {
				return err
			}

			folder, err := a.storage.ResolveFolder(ctx, root, optionalArg(args, 1))
			if err != nil {
				return err
			}

			if output == "" {
				name := folder.Name
				if name == "" {
					name = "onedrive-share"
				}
				output = name + ".zip"
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			service := download.NewService(a.storage, a.cfg.BlockSize, a.logger)
			if err := service.StreamZipArchive(ctx, f, folder, recursive); err != nil {
				return err
			}

			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output archive (default: <folder>.zip)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include files of sub-folders")
	return cmd
}
