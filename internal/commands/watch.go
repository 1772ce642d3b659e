package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/auditlog"
	"github.com/tally-app/tally/internal/jobs"
	"github.com/tally-app/tally/internal/model"
	"github.com/tally-app/tally/internal/store"
)

const shutdownTimeout = 30 * time.Second

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Categorize new transactions on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			if a.classifier == nil {
				return errNoClassifier
			}
			if schedule == "" {
				schedule = a.cfg.Enrich.Schedule
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := a.log.With().Str("component", "jobs").Logger()
			q := jobs.NewQueue(a.enricherFor(onDemandStore{app: a}),
				jobs.WithQueueLogger(log),
				jobs.WithOnDone(func(j jobs.Job) {
					details := fmt.Sprintf("job %s (%s): %s, updated %d, missing %d", j.ID, j.Reason, j.Status, j.Summary.Updated, j.Summary.Missing)
					a.audit(auditlog.ActionEnrich, "", 0, details)
				}),
			)
			sched, err := jobs.NewScheduler(q, schedule, log)
			if err != nil {
				return err
			}

			// The worker outlives the signal so a queued pass can drain.
			workCtx, cancelWork := context.WithCancel(context.WithoutCancel(ctx))
			defer cancelWork()

			q.Start(workCtx)
			sched.Start()
			sched.RunNow()
			fmt.Fprintf(cmd.OutOrStdout(), "Watching (%s), press Ctrl+C to stop\n", schedule)

			<-ctx.Done()

			<-sched.Stop().Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return q.Stop(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule (default enrich.schedule from tally.yaml)")
	return cmd
}

// onDemandStore opens the database for each call, so the lock is held only
// while reading or writing and never across a classifier request. Other
// tally commands can use the database while watch runs.
type onDemandStore struct {
	app *app
}

func (s onDemandStore) with(fn func(st *store.Store) error) error {
	st, err := s.app.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			s.app.log.Warn().Err(err).Msg("closing database")
		}
	}()
	return fn(st)
}

func (s onDemandStore) Uncategorized(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := s.with(func(st *store.Store) error {
		var err error
		out, err = st.Uncategorized(ctx)
		return err
	})
	return out, err
}

func (s onDemandStore) SetCategory(ctx context.Context, txID uint64, name string) (model.Transaction, error) {
	var out model.Transaction
	err := s.with(func(st *store.Store) error {
		var err error
		out, err = st.SetCategory(ctx, txID, name)
		return err
	})
	return out, err
}
