package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/auditlog"
	"github.com/tally-app/tally/internal/importer"
	"github.com/tally-app/tally/internal/model"
)

type importOptions struct {
	profileID string
	kind      string
	inbox     bool
	noEnrich  bool
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	iopts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import [file.csv...]",
		Short: "Import card statement CSV files",
		Long: "Import one or more CSV statements using a bank profile. With --inbox, every\n" +
			"CSV in <data_dir>/inbox is imported and moved to inbox/processed or inbox/rejected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !iopts.inbox && len(args) == 0 {
				return errors.New("no files given (pass CSV paths or --inbox)")
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			return runImport(cmd, a, iopts, args)
		},
	}

	cmd.Flags().StringVarP(&iopts.profileID, "profile", "p", "default", "bank profile id (see \"tally profiles\")")
	cmd.Flags().StringVarP(&iopts.kind, "kind", "k", "", "account kind: credit or debit (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().BoolVar(&iopts.inbox, "inbox", false, "import every CSV in the inbox directory")
	cmd.Flags().BoolVar(&iopts.noEnrich, "no-enrich", false, "skip categorization after import")

	return cmd
}

type importTarget struct {
	name  string
	path  string
	inbox bool
}

func runImport(cmd *cobra.Command, a *app, opts *importOptions, args []string) error {
	var trigger importer.Trigger
	if e := a.enricher(); e != nil && a.cfg.Enrich.OnImport && !opts.noEnrich {
		trigger = e
	}
	imp := a.importer(trigger)

	var targets []importTarget
	for _, p := range args {
		targets = append(targets, importTarget{name: filepath.Base(p), path: p})
	}
	if opts.inbox {
		files, err := importer.ScanInbox(a.cfg.DataPath())
		if err != nil {
			return err
		}
		for _, f := range files {
			targets = append(targets, importTarget{name: f.Name, path: f.Path, inbox: true})
		}
	}

	out := cmd.OutOrStdout()
	var failed int
	for _, t := range targets {
		ok, err := importOne(cmd, a, imp, opts, t, out)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
		if t.inbox {
			move := importer.MarkProcessed
			if !ok {
				move = importer.MarkRejected
			}
			if err := move(a.cfg.DataPath(), t.name); err != nil {
				a.log.Warn().Err(err).Str("filename", t.name).Msg("moving inbox file")
			}
		}
	}

	if len(targets) == 0 {
		fmt.Fprintln(out, "Inbox is empty")
	}
	if failed > 0 && failed == len(targets) && !opts.inbox {
		return fmt.Errorf("no files imported")
	}
	return nil
}

// importOne imports a single file. It returns false when the file was
// rejected as a duplicate or had no data rows; other failures are errors.
func importOne(cmd *cobra.Command, a *app, imp *importer.Importer, opts *importOptions, t importTarget, out io.Writer) (bool, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", t.path, err)
	}

	res, err := imp.Import(cmd.Context(), importer.Request{
		CSV:       string(data),
		Filename:  t.name,
		Kind:      model.AccountKind(opts.kind),
		ProfileID: opts.profileID,
	})
	switch {
	case errors.Is(err, importer.ErrDuplicateFile):
		fmt.Fprintf(out, "%s: already imported, skipped\n", t.name)
		a.audit(auditlog.ActionReject, t.name, 0, "duplicate file")
		return false, nil
	case err != nil:
		return false, err
	case res.Skipped:
		fmt.Fprintf(out, "%s: no data rows, skipped\n", t.name)
		a.audit(auditlog.ActionReject, t.name, 0, "no data rows")
		return false, nil
	}

	fmt.Fprintf(out, "%s: imported %d transactions (file %d", t.name, res.Imported, res.File.ID)
	if n := len(res.Malformed); n > 0 {
		fmt.Fprintf(out, ", %d malformed rows %v", n, res.Malformed)
	}
	fmt.Fprintln(out, ")")

	a.audit(auditlog.ActionImport, t.name, res.File.ID,
		fmt.Sprintf("profile %s: imported %d, malformed %d", res.File.ProfileID, res.Imported, len(res.Malformed)))
	return true, nil
}
