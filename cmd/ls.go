package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"anyonedrive/internal/storage"
	"anyonedrive/pkg/models"
)

func newLsCmd() *cobra.Command {
	var filesOnly, foldersOnly bool

	cmd := &cobra.Command{
		Use:   "ls <share-url> [path]",
		Short: "List the items of a shared folder",
		Long: `List the direct children of a shared folder. The optional path selects a
sub-folder by name, with "/" between levels.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			filter := storage.FilterAll
			switch {
			case filesOnly:
				filter = storage.FilterFiles
			case foldersOnly:
				filter = storage.FilterFolders
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

			items, err := a.storage.ListFolderContents(ctx, folder, filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, item := range items {
				fmt.Fprintln(w, formatItem(item))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&filesOnly, "files", false, "List only files")
	cmd.Flags().BoolVar(&foldersOnly, "folders", false, "List only folders")
	cmd.MarkFlagsMutuallyExclusive("files", "folders")
	return cmd
}

// formatItem renders one tab-separated listing row
func formatItem(item models.Item) string {
	info := item.Info()
	modified := "-"
	if !info.UpdatedAt.IsZero() {
		modified = info.UpdatedAt.UTC().Format(time.DateTime)
	}

	switch v := item.(type) {
	case models.FileInfo:
		return fmt.Sprintf("file\t%d\t%s\t%s", v.Size, modified, v.Name)
	case models.FolderInfo:
		return fmt.Sprintf("folder\t%d items\t%s\t%s/", v.ChildCount, modified, v.Name)
	default:
		return fmt.Sprintf("?\t-\t%s\t%s", modified, info.Name)
	}
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
