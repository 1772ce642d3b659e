package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/tally-app/tally/internal/model"
)

// Store is the persistence the resolver needs. GetOrCreateAccount must be an
// atomic conditional insert keyed by number.
type Store interface {
	GetOrCreateAccount(ctx context.Context, holder, number string, kind model.AccountKind) (model.Account, bool, error)
}

// Resolver maps account numbers to account IDs, creating accounts on first
// sight. Accounts never change, so resolved numbers are cached.
type Resolver struct {
	store    Store
	mu       sync.RWMutex
	byNumber map[string]model.Account
}

// NewResolver creates a Resolver on top of store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store, byNumber: make(map[string]model.Account)}
}

// Resolve returns the ID of the account with number. If no such account
// exists one is created with holder and kind; otherwise the existing account
// wins and holder and kind are ignored.
func (r *Resolver) Resolve(ctx context.Context, holder, number string, kind model.AccountKind) (uint64, error) {
	if a, ok := r.Get(number); ok {
		return a.ID, nil
	}

	a, _, err := r.store.GetOrCreateAccount(ctx, holder, number, kind)
	if err != nil {
		return 0, fmt.Errorf("resolving account %q: %w", number, err)
	}

	r.mu.Lock()
	r.byNumber[number] = a
	r.mu.Unlock()
	return a.ID, nil
}

// Get returns a cached account by number.
func (r *Resolver) Get(number string) (model.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byNumber[number]
	return a, ok
}
