package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"anyonedrive/pkg/models"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <share-url> [path]",
		Short: "Print every item below a shared folder",
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

			out := cmd.OutOrStdout()
			files, folders := 0, 0
			err = a.storage.Walk(ctx, folder, func(itemPath string, item models.Item) error {
				depth := strings.Count(itemPath, "/")
				name := item.Info().Name
				if item.Kind() == models.KindFolder {
					folders++
					name += "/"
				} else {
					files++
				}
				_, err := fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), name)
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "\n%d folders, %d files\n", folders, files)
			return err
		},
	}
}
