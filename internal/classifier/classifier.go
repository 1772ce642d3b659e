package classifier

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is returned when the service answers with a non-2xx
// status.
var ErrUnexpectedStatus = errors.New("unexpected http status code")

// ErrBadResponse is returned when a response cannot be decoded.
var ErrBadResponse = errors.New("bad classifier response")

// Item is one transaction sent for categorization.
type Item struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
}

// Result is the category the service chose for an item.
type Result struct {
	ID       uint64 `json:"id"`
	Category string `json:"category"`
}

// Classifier assigns categories to a batch of transactions. A returned
// batch may omit items; callers treat those as not categorized.
type Classifier interface {
	Categorize(ctx context.Context, items []Item) ([]Result, error)
}

// Single categorizes one description.
type Single interface {
	CategorizeOne(ctx context.Context, description string) (string, error)
}

func unexpectedStatus(code int) error {
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
}

func badResponse(err error) error {
	return fmt.Errorf("%w: %w", ErrBadResponse, err)
}

// uniqueDescriptions returns the distinct descriptions of items in first-seen
// order.
func uniqueDescriptions(items []Item) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if seen[it.Description] {
			continue
		}
		seen[it.Description] = true
		out = append(out, it.Description)
	}
	return out
}
