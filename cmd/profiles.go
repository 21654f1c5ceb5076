package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repodoc/pkg/filter"
)

func newProfilesCmd(logger *zap.Logger) *cobra.Command {
	var dir string

	c := &cobra.Command{
		Use:   "profiles [name...]",
		Short: "List built-in profiles or print the patterns of the named ones",
		Long: `Without arguments, profiles lists the profiles compiled into the binary.
With names, it resolves them the way a conversion would (profiles directory
first, then built-in) and prints the combined allow and deny patterns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range filter.BuiltinProfiles() {
					if _, err := fmt.Fprintln(out, name); err != nil {
						return err
					}
				}
				return nil
			}

			var names []string
			for _, a := range args {
				names = append(names, strings.Split(a, ",")...)
			}
			ps, err := filter.OSLoader(dir, logger).LoadPatternSet(names)
			if err != nil {
				return err
			}
			return printPatterns(out, ps)
		},
	}
	c.Flags().StringVar(&dir, "profiles-dir", "config", "directory holding profile pattern files")
	return c
}

func printPatterns(w io.Writer, ps filter.PatternSet) error {
	var sb strings.Builder
	sb.WriteString("allow:\n")
	for _, p := range ps.Allow() {
		sb.WriteString("  " + p + "\n")
	}
	sb.WriteString("deny:\n")
	for _, p := range ps.Deny() {
		sb.WriteString("  " + p + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
