package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the category label of a transaction that has not been
// enriched, or whose classifier result was missing.
const Uncategorized = "Uncategorized"

// Transaction is one canonical row imported from a CSV file.
type Transaction struct {
	ID            uint64          `json:"id"`
	Date          time.Time       `json:"date"`
	ProcessedDate time.Time       `json:"processed_date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // sign as produced by the profile
	AccountID     uint64          `json:"account_id"`
	CategoryID    *uint64         `json:"category_id,omitempty"` // nil = not yet categorized
	CategoryName  string          `json:"category_name"`
	Fingerprint   string          `json:"fingerprint"`
	FileID        uint64          `json:"file_id"`
}

// Categorized reports whether a category identity has been assigned.
func (t Transaction) Categorized() bool {
	return t.CategoryID != nil
}

// Category is a spending category label. Name is unique.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
