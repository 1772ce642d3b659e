package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/auditlog"
)

func newFilesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List imported files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			files, err := a.store.Files(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILENAME\tPROFILE\tROWS\tUPLOADED")
			for _, f := range files {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", f.ID, f.Filename, f.ProfileID, f.TransactionCount, f.UploadedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newFilesDeleteCommand(opts))
	return cmd
}

func newFilesDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an imported file and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.store.File(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := a.store.DeleteFile(cmd.Context(), id); err != nil {
				return err
			}

			a.audit(auditlog.ActionDelete, f.Filename, f.ID, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (file %d)\n", f.Filename, f.ID)
			return nil
		},
	}
}
