package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"anyonedrive/internal/logging"
	"anyonedrive/pkg/blockio"
)

func newGetCmd() *cobra.Command {
	var output string
	var blockSize int

	cmd := &cobra.Command{
		Use:   "get <share-url> <path>",
		Short: "Download one file from a shared folder",
		Long: `Download the file at path inside a shared folder. The content is read in
fixed-size blocks. Use -o - to write to standard output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			if blockSize == 0 {
				blockSize = a.cfg.BlockSize
			}
			if blockSize < 0 {
				return fmt.Errorf("%w: %d", blockio.ErrInvalidBlockSize, blockSize)
			}

			ctx := cmd.Context()
			root, err := a.storage.Open(args[0])
			if err != nil {
				return err
			}

			file, err := a.storage.ResolveFile(ctx, root, args[1])
			if err != nil {
				return err
			}

			if output == "" {
				output = file.Name
			}

			stream, err := a.storage.GetFileStream(ctx, file)
			if err != nil {
				return err
			}
			defer stream.Close()

			if output == "-" {
				written, err := blockio.Copy(cmd.OutOrStdout(), stream, blockSize)
				if err != nil {
					return fmt.Errorf("failed to download %s: %w", file.Name, err)
				}
				a.logger.Info("downloaded file", logging.Path(args[1]), slog.Int64("bytes", written))
				return nil
			}

			written, err := writeFile(output, stream, blockSize)
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", file.Name, err)
			}

			if written != file.Size {
				a.logger.Warn("downloaded size differs from listing",
					logging.Path(args[1]), slog.Int64("written", written), slog.Int64("size", file.Size))
			}
			a.logger.Info("downloaded file", logging.Path(args[1]), slog.Int64("bytes", written), slog.String("output", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: the file name, - for stdout)")
	cmd.Flags().IntVar(&blockSize, "block-size", 0, "Read block size in bytes (default: BLOCK_SIZE)")
	return cmd
}

// writeFile copies r into a new file at name in blocks. A partial file is removed on error.
func writeFile(name string, r io.Reader, blockSize int) (int64, error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", name, err)
	}

	written, err := blockio.Copy(f, r, blockSize)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return written, err
	}

	return written, nil
}
