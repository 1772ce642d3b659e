package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tally-app/tally/internal/accounts"
	"github.com/tally-app/tally/internal/auditlog"
	"github.com/tally-app/tally/internal/classifier"
	"github.com/tally-app/tally/internal/config"
	"github.com/tally-app/tally/internal/enrich"
	"github.com/tally-app/tally/internal/importer"
	"github.com/tally-app/tally/internal/logger"
	"github.com/tally-app/tally/internal/profile"
	"github.com/tally-app/tally/internal/store"
)

var errNoClassifier = errors.New("no classifier configured (set classifier.kind in tally.yaml)")

// app holds everything a command needs, built from the config file.
type app struct {
	cfg        *config.Config
	log        zerolog.Logger
	store      *store.Store
	profiles   *profile.Registry
	classifier classifier.Classifier
	now        func() time.Time
}

// openApp loads the app and opens the database. The database stays locked
// until Close.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	a, err := loadApp(cmd, opts)
	if err != nil {
		return nil, err
	}
	if a.store, err = a.openStore(); err != nil {
		return nil, err
	}
	return a, nil
}

// loadApp builds everything except the database handle.
func loadApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	if err := config.LoadEnvFile(filepath.Join(filepath.Dir(opts.configPath), ".env")); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	profiles := profile.Default()
	if err := profile.LoadDefinitions(profiles, cfg.Profiles); err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}

	cls, err := newClassifier(cmd.Context(), cfg.Classifier)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataPath(), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	log.Debug().Str("data_dir", cfg.DataPath()).Str("classifier", cfg.Classifier.Kind).Msg("loaded config")
	return &app{
		cfg:        cfg,
		log:        log,
		profiles:   profiles,
		classifier: cls,
		now:        time.Now,
	}, nil
}

func newClassifier(ctx context.Context, c config.ClassifierConfig) (classifier.Classifier, error) {
	switch c.Kind {
	case config.ClassifierHTTP:
		return classifier.NewHTTPClient(c.Endpoint, c.Timeout), nil
	case config.ClassifierGemini:
		model := c.Model
		if model == "" {
			model = classifier.DefaultGeminiModel
		}
		g, err := classifier.NewGemini(ctx, c.APIKey, model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, nil
	}
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.cfg.DBPath())
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing database")
	}
}

// enricher returns nil when no classifier is configured.
func (a *app) enricher() *enrich.Enricher {
	return a.enricherFor(a.store)
}

func (a *app) enricherFor(st enrich.Store) *enrich.Enricher {
	if a.classifier == nil {
		return nil
	}
	return enrich.New(st, a.classifier,
		enrich.WithLogger(a.log.With().Str("component", "enrich").Logger()),
		enrich.WithTimeout(a.cfg.Classifier.Timeout),
	)
}

func (a *app) importer(trigger importer.Trigger) *importer.Importer {
	opts := []importer.Option{
		importer.WithLogger(a.log.With().Str("component", "import").Logger()),
		importer.WithClock(a.now),
	}
	if trigger != nil {
		opts = append(opts, importer.WithTrigger(trigger))
	}
	return importer.New(a.profiles, a.store, accounts.NewResolver(a.store), opts...)
}

// audit appends to the import log. Failures are logged, not returned.
func (a *app) audit(action auditlog.Action, filename string, fileID uint64, details string) {
	entry := auditlog.Entry{
		Timestamp: a.now().UTC(),
		Action:    action,
		Filename:  filename,
		FileID:    fileID,
		Details:   details,
	}
	if err := auditlog.Append(a.cfg.DataPath(), []auditlog.Entry{entry}); err != nil {
		a.log.Warn().Err(err).Msg("writing import log")
	}
}
