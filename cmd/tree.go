package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repodoc/pkg/combine"
)

func newTreeCmd(logger *zap.Logger) *cobra.Command {
	var (
		absolute    bool
		displayRoot string
	)

	c := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print the structure map of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("error resolving %s: %w", dir, err)
			}

			opts := combine.TreeOptions{PathType: combine.PathRelative}
			if absolute {
				opts = combine.TreeOptions{PathType: combine.PathAbsolute, DisplayRoot: displayRoot}
			}
			tree, err := combine.RenderTree(afero.NewOsFs(), root, opts, logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", combine.StructureTitle, tree)
			return err
		},
	}
	c.Flags().BoolVar(&absolute, "absolute", false, "name entries by their full path")
	c.Flags().StringVar(&displayRoot, "display-root", "", "prefix shown in place of the root with --absolute")
	return c
}
