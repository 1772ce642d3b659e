package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/auditlog"
)

func newEnrichCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Categorize uncategorized transactions once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			e := a.enricher()
			if e == nil {
				return errNoClassifier
			}

			sum, err := e.EnrichUncategorized(cmd.Context())
			if err != nil {
				a.audit(auditlog.ActionEnrich, "", 0, "failed: "+err.Error())
				return err
			}
			details := fmt.Sprintf("requested %d, updated %d, missing %d", sum.Requested, sum.Updated, sum.Missing)
			a.audit(auditlog.ActionEnrich, "", 0, details)
			fmt.Fprintf(cmd.OutOrStdout(), "Categorized %d of %d transactions\n", sum.Updated, sum.Requested)
			return nil
		},
	}
}
