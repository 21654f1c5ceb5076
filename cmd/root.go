package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "repodoc"

// NewRootCmd builds the command tree. Running the root command without a
// subcommand performs a conversion.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "repodoc converts a source tree into PDF, TXT or DOCX documents",
		Long: `repodoc walks a directory, zip archive or git repository, keeps the files
selected by the configured profiles and writes them, preceded by a map of the
folder structure, into one or more PDF, TXT or DOCX documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, logger)
		},
	}
	addConvertFlags(rootCmd)

	rootCmd.AddCommand(
		newConvertCmd(logger),
		newTreeCmd(logger),
		newProfilesCmd(logger),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}
