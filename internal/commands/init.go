package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/config"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var classifierKind string
	var endpoint string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a tally.yaml and data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Dir(opts.configPath)
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Classifier.Kind = classifierKind
			cfg.Classifier.Endpoint = endpoint
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := runInit(absDir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&classifierKind, "classifier", config.ClassifierNone, "categorization service: none, http or gemini")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "categorization service URL (for --classifier http)")

	return cmd
}

func runInit(dir string, cfg *config.Config) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	dataDir := filepath.Join(dir, cfg.DataDir)
	dirs := []string{
		dataDir,
		filepath.Join(dataDir, "inbox"),
		filepath.Join(dataDir, "inbox", "processed"),
		filepath.Join(dataDir, "inbox", "rejected"),
		filepath.Join(dataDir, "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := filepath.ToSlash(filepath.Join(cfg.DataDir, "tally.db")) + "\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
