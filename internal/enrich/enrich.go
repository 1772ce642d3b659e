package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tally-app/tally/internal/classifier"
	"github.com/tally-app/tally/internal/importer"
	"github.com/tally-app/tally/internal/model"
)

// ErrEnrichmentFailed wraps a classifier failure. No transaction is changed
// when it is returned.
var ErrEnrichmentFailed = errors.New("enrichment failed")

// Store is the persistence the enricher reads and updates.
type Store interface {
	Uncategorized(ctx context.Context) ([]model.Transaction, error)
	SetCategory(ctx context.Context, txID uint64, name string) (model.Transaction, error)
}

// Summary reports one enrichment pass.
type Summary struct {
	Requested int // transactions sent to the classifier
	Updated   int // transactions that received a category
	Missing   int // transactions left uncategorized
}

// Enricher assigns categories to uncategorized transactions.
type Enricher struct {
	store      Store
	classifier classifier.Classifier
	log        zerolog.Logger
	timeout    time.Duration
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Enricher) { e.log = l }
}

// WithTimeout bounds each classifier call. Zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(e *Enricher) { e.timeout = d }
}

// New creates an Enricher.
func New(st Store, c classifier.Classifier, opts ...Option) *Enricher {
	e := &Enricher{store: st, classifier: c, log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// EnrichUncategorized sends every uncategorized transaction to the
// classifier in one batch and stores the categories it returns. Results
// that are missing, empty or "Uncategorized" leave the transaction as it
// was, so a later pass picks it up again. A classifier failure is logged and
// returned wrapped in ErrEnrichmentFailed; it is not retried.
func (e *Enricher) EnrichUncategorized(ctx context.Context) (Summary, error) {
	pending, err := e.store.Uncategorized(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing uncategorized: %w", err)
	}
	if len(pending) == 0 {
		return Summary{}, nil
	}

	items := make([]classifier.Item, len(pending))
	for i, t := range pending {
		items[i] = classifier.Item{ID: t.ID, Description: importer.CleanDescription(t.Description)}
	}

	results, err := e.categorize(ctx, items)
	if err != nil {
		e.log.Error().Err(err).Int("requested", len(items)).Msg("categorization failed")
		return Summary{Requested: len(items), Missing: len(items)}, fmt.Errorf("%w: %w", ErrEnrichmentFailed, err)
	}

	byID := make(map[uint64]string, len(results))
	for _, r := range results {
		cat := strings.TrimSpace(r.Category)
		if cat == "" || strings.EqualFold(cat, model.Uncategorized) {
			continue
		}
		if _, ok := byID[r.ID]; !ok {
			byID[r.ID] = cat
		}
	}

	sum := Summary{Requested: len(items)}
	for _, t := range pending {
		cat, ok := byID[t.ID]
		if !ok {
			sum.Missing++
			continue
		}
		if _, err := e.store.SetCategory(ctx, t.ID, cat); err != nil {
			return sum, fmt.Errorf("setting category for transaction %d: %w", t.ID, err)
		}
		sum.Updated++
	}

	e.log.Info().Int("requested", sum.Requested).Int("updated", sum.Updated).Int("missing", sum.Missing).Msg("enrichment finished")
	return sum, nil
}

func (e *Enricher) categorize(ctx context.Context, items []classifier.Item) ([]classifier.Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.classifier.Categorize(ctx, items)
}

// Trigger runs one enrichment pass inline, so an Enricher can be handed to
// the importer directly.
func (e *Enricher) Trigger(ctx context.Context) error {
	_, err := e.EnrichUncategorized(ctx)
	return err
}
