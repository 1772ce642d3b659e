package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tally-app/tally/internal/fingerprint"
	"github.com/tally-app/tally/internal/model"
	"github.com/tally-app/tally/internal/profile"
	"github.com/tally-app/tally/internal/store"
)

var (
	// ErrProfileNotFound is returned when the requested profile id is not
	// registered.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDuplicateFile is returned when a file with the same content
	// fingerprint was already imported.
	ErrDuplicateFile = store.ErrDuplicateFile
	// ErrInvalidKind is returned for an account kind other than credit or
	// debit.
	ErrInvalidKind = errors.New("invalid account kind")
)

// Store is the persistence the importer writes to.
type Store interface {
	CreateFile(ctx context.Context, f model.File) (model.File, error)
	DeleteFile(ctx context.Context, id uint64) error
	PutTransaction(ctx context.Context, t *model.Transaction) error
}

// AccountResolver maps an account number to an account ID.
type AccountResolver interface {
	Resolve(ctx context.Context, holder, number string, kind model.AccountKind) (uint64, error)
}

// Trigger starts categorization of uncategorized transactions. It is called
// once after every import that created a file.
type Trigger interface {
	Trigger(ctx context.Context) error
}

// TriggerFunc adapts a function to Trigger.
type TriggerFunc func(ctx context.Context) error

// Trigger calls f.
func (f TriggerFunc) Trigger(ctx context.Context) error { return f(ctx) }

// Request is one CSV file to import.
type Request struct {
	CSV       string
	Filename  string
	Kind      model.AccountKind
	ProfileID string
}

// Result summarizes an import.
type Result struct {
	// Skipped is set when the content had fewer than two non-blank lines
	// and nothing was recorded.
	Skipped  bool
	File     model.File
	Imported int
	// Malformed holds the row index of every skipped row, counting
	// non-blank lines with the header at 0.
	Malformed []int
}

// Importer turns CSV files into stored transactions.
type Importer struct {
	profiles *profile.Registry
	store    Store
	accounts AccountResolver
	trigger  Trigger
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithTrigger sets what runs after each import.
func WithTrigger(t Trigger) Option {
	return func(i *Importer) { i.trigger = t }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(i *Importer) { i.log = l }
}

// WithClock overrides the upload timestamp source.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) { i.now = now }
}

// New creates an Importer.
func New(profiles *profile.Registry, st Store, accounts AccountResolver, opts ...Option) *Importer {
	i := &Importer{
		profiles: profiles,
		store:    st,
		accounts: accounts,
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Import records req as a File and stores each well-formed row as an
// uncategorized transaction, then fires the trigger once.
//
// Content with fewer than two non-blank lines returns a Skipped result and
// no error. Identical content (modulo line endings, surrounding whitespace
// and blank lines) is rejected with ErrDuplicateFile. If storing a row
// fails, the file and its rows are removed before the error is returned.
func (i *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	p, ok := i.profiles.Get(req.ProfileID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, req.ProfileID)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}

	lines := fingerprint.Lines(req.CSV)
	if len(lines) < 2 {
		i.log.Debug().Str("filename", req.Filename).Msg("no data rows, skipping")
		return &Result{Skipped: true}, nil
	}

	fileFP := fingerprint.File(req.CSV)
	file, err := i.store.CreateFile(ctx, model.File{
		Filename:         req.Filename,
		UploadedAt:       i.now(),
		Fingerprint:      fileFP,
		Size:             len(req.CSV),
		TransactionCount: len(lines) - 1,
		ProfileID:        p.ID,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateFile) {
			return nil, fmt.Errorf("%s: %w", req.Filename, ErrDuplicateFile)
		}
		return nil, fmt.Errorf("recording file: %w", err)
	}

	res := &Result{File: file}
	log := i.log.With().Uint64("file_id", file.ID).Str("filename", req.Filename).Str("profile", p.ID).Logger()

	for idx := 1; idx < len(lines); idx++ {
		fields := Tokenize(lines[idx])
		draft, err := Normalize(fields, p)
		if err != nil {
			log.Warn().Int("row", idx).Err(err).Msg("skipping row")
			res.Malformed = append(res.Malformed, idx)
			continue
		}

		if err := i.storeRow(ctx, file, draft, req.Kind, fingerprint.Row(fileFP, idx, fields)); err != nil {
			i.rollback(ctx, log, file.ID)
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
		res.Imported++
	}

	log.Info().Int("imported", res.Imported).Int("malformed", len(res.Malformed)).Msg("imported file")

	if i.trigger != nil {
		if err := i.trigger.Trigger(ctx); err != nil {
			log.Warn().Err(err).Msg("categorization trigger failed")
		}
	}
	return res, nil
}

func (i *Importer) storeRow(ctx context.Context, file model.File, d Draft, kind model.AccountKind, fp string) error {
	accountID, err := i.accounts.Resolve(ctx, d.Holder, d.AccountNumber, kind)
	if err != nil {
		return err
	}

	t := &model.Transaction{
		Date:          d.Date,
		ProcessedDate: d.ProcessedDate,
		Description:   d.Description,
		Amount:        d.Amount,
		AccountID:     accountID,
		CategoryName:  model.Uncategorized,
		Fingerprint:   fp,
		FileID:        file.ID,
	}
	if err := i.store.PutTransaction(ctx, t); err != nil {
		return fmt.Errorf("storing transaction: %w", err)
	}
	return nil
}

func (i *Importer) rollback(ctx context.Context, log zerolog.Logger, fileID uint64) {
	if err := i.store.DeleteFile(context.WithoutCancel(ctx), fileID); err != nil {
		log.Error().Err(err).Msg("rolling back partial import")
	}
}
