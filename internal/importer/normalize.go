package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-app/tally/internal/profile"
)

// ErrMalformedRow marks a row that cannot be mapped by its profile. Such
// rows are skipped, never persisted.
var ErrMalformedRow = errors.New("malformed row")

// Draft is a row normalized by a profile, before account resolution.
type Draft struct {
	Date          time.Time
	ProcessedDate time.Time
	Description   string
	Amount        decimal.Decimal
	Holder        string
	AccountNumber string
}

// Tokenize splits a CSV line on commas and trims every field. Quoted fields
// are not supported.
func Tokenize(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// Normalize maps tokenized fields through p. The row must have exactly
// p.ExpectedColumns() fields, and its dates and amount must parse; any other
// row yields an error wrapping ErrMalformedRow. The amount sign is whatever
// the profile's amount parser produces.
func Normalize(fields []string, p profile.Profile) (Draft, error) {
	if want := p.ExpectedColumns(); len(fields) != want {
		return Draft{}, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, want, len(fields))
	}

	m := p.Mapping
	raw := make(map[string]string, 6)
	for _, nf := range []struct {
		name  string
		field profile.Field
	}{
		{"date", m.Date},
		{"processed_date", m.ProcessedDate},
		{"description", m.Description},
		{"holder", m.Holder},
		{"account_number", m.AccountNumber},
		{"amount", m.Amount},
	} {
		v, ok := nf.field.Resolve(fields)
		if !ok {
			return Draft{}, fmt.Errorf("%w: %s: %s not in row", ErrMalformedRow, nf.name, nf.field)
		}
		raw[nf.name] = v
	}

	dateParser := p.Parsers.Date
	if dateParser == nil {
		dateParser = profile.ParseDate
	}
	processedParser := p.Parsers.ProcessedDate
	if processedParser == nil {
		processedParser = dateParser
	}
	amountParser := p.Parsers.Amount
	if amountParser == nil {
		amountParser = profile.ParseAmount
	}

	date, err := dateParser(raw["date"])
	if err != nil {
		return Draft{}, fmt.Errorf("%w: date: %v", ErrMalformedRow, err)
	}
	processed, err := processedParser(raw["processed_date"])
	if err != nil {
		return Draft{}, fmt.Errorf("%w: processed_date: %v", ErrMalformedRow, err)
	}
	amount, err := amountParser(raw["amount"])
	if err != nil {
		return Draft{}, fmt.Errorf("%w: amount: %v", ErrMalformedRow, err)
	}

	return Draft{
		Date:          date,
		ProcessedDate: processed,
		Description:   CleanDescription(raw["description"]),
		Amount:        amount,
		Holder:        raw["holder"],
		AccountNumber: raw["account_number"],
	}, nil
}

// CleanDescription collapses whitespace runs to one space and trims.
func CleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
