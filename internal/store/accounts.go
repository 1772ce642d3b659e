package store

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/tally-app/tally/internal/model"
)

// GetOrCreateAccount returns the account with number, inserting one with
// holder and kind if none exists. An existing account is returned unchanged.
// created reports whether this call inserted it.
func (s *Store) GetOrCreateAccount(ctx context.Context, holder, number string, kind model.AccountKind) (acct model.Account, created bool, err error) {
	err = s.update(ctx, func(tx *bolt.Tx) error {
		accounts := tx.Bucket(bucketAccounts)
		byNumber := tx.Bucket(bucketAccountsByNumber)

		if id := byNumber.Get([]byte(number)); id != nil {
			return get(accounts, id, &acct)
		}

		id, err := accounts.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating account id: %w", err)
		}
		acct = model.Account{ID: id, Holder: holder, Number: number, Kind: kind}
		if err := put(accounts, itob(id), acct); err != nil {
			return err
		}
		created = true
		return byNumber.Put([]byte(number), itob(id))
	})
	if err != nil {
		return model.Account{}, false, err
	}
	return acct, created, nil
}

// Account returns the account with id.
func (s *Store) Account(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := s.view(ctx, func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketAccounts), itob(id), &a)
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("account %d: %w", id, err)
	}
	return a, nil
}

// Accounts returns every account in id order.
func (s *Store) Accounts(ctx context.Context) ([]model.Account, error) {
	var out []model.Account
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		out, err = all[model.Account](tx.Bucket(bucketAccounts))
		return err
	})
	return out, err
}
