package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"repodoc/pkg/version"
)

// newVersionCmd displays version information. --short prints the version
// number only.
func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Display the version of repodoc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return err
		},
	}
	c.Flags().BoolP("short", "s", false, "Print the version number only")
	return c
}
