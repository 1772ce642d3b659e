package profile

import (
	"fmt"
)

// Mapping locates the six canonical values of a row.
type Mapping struct {
	Date          Field `yaml:"date"`
	ProcessedDate Field `yaml:"processed_date"`
	Description   Field `yaml:"description"`
	Holder        Field `yaml:"holder"`
	AccountNumber Field `yaml:"account_number"`
	Amount        Field `yaml:"amount"`
}

// Parsers are optional per-field overrides. A nil parser falls back to the
// generic one; a nil ProcessedDate falls back to Date first.
type Parsers struct {
	Date          DateParser
	ProcessedDate DateParser
	Amount        AmountParser
}

// Profile describes how one bank's CSV export maps onto a transaction.
type Profile struct {
	ID          string
	Name        string
	Description string
	// Columns is the exact number of columns a data row must have. Zero
	// means one past the highest mapped column.
	Columns int
	Mapping Mapping
	Parsers Parsers
}

// ExpectedColumns returns the column count a row must have to be accepted.
func (p Profile) ExpectedColumns() int {
	if p.Columns > 0 {
		return p.Columns
	}
	n := 0
	for _, f := range p.Mapping.fields() {
		if f.field.IsColumn() && f.field.Index()+1 > n {
			n = f.field.Index() + 1
		}
	}
	return n
}

type namedField struct {
	name  string
	field Field
}

func (m Mapping) fields() []namedField {
	return []namedField{
		{"date", m.Date},
		{"processed_date", m.ProcessedDate},
		{"description", m.Description},
		{"holder", m.Holder},
		{"account_number", m.AccountNumber},
		{"amount", m.Amount},
	}
}

// ValidationError describes one problem with a profile.
type ValidationError struct {
	ProfileID   string
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("profile %q: %s", e.ProfileID, e.Description)
	}
	return fmt.Sprintf("profile %q [%s]: %s", e.ProfileID, e.Field, e.Description)
}

// Validate checks that a profile has an id, that all six fields are mapped
// and that every mapped column fits in the expected row width.
func Validate(p Profile) []ValidationError {
	var errs []ValidationError

	if p.ID == "" {
		errs = append(errs, ValidationError{Description: "id is required"})
	}
	if p.Columns < 0 {
		errs = append(errs, ValidationError{ProfileID: p.ID, Description: fmt.Sprintf("columns must not be negative, got %d", p.Columns)})
	}

	width := p.ExpectedColumns()
	if width == 0 {
		errs = append(errs, ValidationError{ProfileID: p.ID, Description: "at least one field must read a column"})
	}

	for _, nf := range p.Mapping.fields() {
		switch {
		case !nf.field.IsSet():
			errs = append(errs, ValidationError{ProfileID: p.ID, Field: nf.name, Description: "must be a column or a literal"})
		case nf.field.IsColumn() && nf.field.Index() < 0:
			errs = append(errs, ValidationError{ProfileID: p.ID, Field: nf.name, Description: fmt.Sprintf("column %d is negative", nf.field.Index())})
		case nf.field.IsColumn() && width > 0 && nf.field.Index() >= width:
			errs = append(errs, ValidationError{ProfileID: p.ID, Field: nf.name, Description: fmt.Sprintf("column %d is outside a %d-column row", nf.field.Index(), width)})
		}
	}

	return errs
}
