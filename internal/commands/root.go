package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/buildinfo"
	"github.com/tally-app/tally/internal/config"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Import card statements and categorize transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to tally.yaml")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newImportCommand(opts),
		newEnrichCommand(opts),
		newProfilesCommand(opts),
		newFilesCommand(opts),
		newExportCommand(opts),
		newWatchCommand(opts),
	)

	return rootCmd
}
