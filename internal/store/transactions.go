package store

import (
	"bytes"
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/tally-app/tally/internal/model"
)

// PutTransaction stores t keyed by its fingerprint. A transaction with the
// same fingerprint is overwritten in place and keeps its ID. t.ID is set on
// return.
func (s *Store) PutTransaction(ctx context.Context, t *model.Transaction) error {
	if t.Fingerprint == "" {
		return fmt.Errorf("transaction has no fingerprint")
	}
	return s.update(ctx, func(tx *bolt.Tx) error {
		txns := tx.Bucket(bucketTransactions)
		byFP := tx.Bucket(bucketTransactionsByFP)

		if existing := byFP.Get([]byte(t.Fingerprint)); existing != nil {
			var old model.Transaction
			if err := get(txns, existing, &old); err != nil {
				return err
			}
			if err := tx.Bucket(bucketTransactionsByFile).Delete(compositeKey(old.FileID, old.ID)); err != nil {
				return err
			}
			t.ID = old.ID
		} else {
			id, err := txns.NextSequence()
			if err != nil {
				return fmt.Errorf("allocating transaction id: %w", err)
			}
			t.ID = id
		}

		if t.CategoryName == "" {
			t.CategoryName = model.Uncategorized
		}
		if err := put(txns, itob(t.ID), t); err != nil {
			return err
		}
		if err := byFP.Put([]byte(t.Fingerprint), itob(t.ID)); err != nil {
			return err
		}
		if err := tx.Bucket(bucketTransactionsByFile).Put(compositeKey(t.FileID, t.ID), nil); err != nil {
			return err
		}
		return indexCategory(tx, *t)
	})
}

func indexCategory(tx *bolt.Tx, t model.Transaction) error {
	idx := tx.Bucket(bucketUncategorized)
	if t.Categorized() {
		return idx.Delete(itob(t.ID))
	}
	return idx.Put(itob(t.ID), nil)
}

func deleteTransaction(tx *bolt.Tx, id uint64) error {
	txns := tx.Bucket(bucketTransactions)
	var t model.Transaction
	if err := get(txns, itob(id), &t); err != nil {
		return fmt.Errorf("transaction %d: %w", id, err)
	}
	if err := tx.Bucket(bucketTransactionsByFP).Delete([]byte(t.Fingerprint)); err != nil {
		return err
	}
	if err := tx.Bucket(bucketTransactionsByFile).Delete(compositeKey(t.FileID, t.ID)); err != nil {
		return err
	}
	if err := tx.Bucket(bucketUncategorized).Delete(itob(id)); err != nil {
		return err
	}
	return txns.Delete(itob(id))
}

// Transaction returns the transaction with id.
func (s *Store) Transaction(ctx context.Context, id uint64) (model.Transaction, error) {
	var t model.Transaction
	err := s.view(ctx, func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketTransactions), itob(id), &t)
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", id, err)
	}
	return t, nil
}

// TransactionByFingerprint looks up a transaction by row fingerprint.
func (s *Store) TransactionByFingerprint(ctx context.Context, fp string) (model.Transaction, bool, error) {
	var t model.Transaction
	found := false
	err := s.view(ctx, func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketTransactionsByFP).Get([]byte(fp))
		if id == nil {
			return nil
		}
		found = true
		return get(tx.Bucket(bucketTransactions), id, &t)
	})
	return t, found, err
}

// Transactions returns every transaction in id order.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		out, err = all[model.Transaction](tx.Bucket(bucketTransactions))
		return err
	})
	return out, err
}

// TransactionsByFile returns the transactions imported from a file, in id
// order.
func (s *Store) TransactionsByFile(ctx context.Context, fileID uint64) ([]model.Transaction, error) {
	var out []model.Transaction
	err := s.view(ctx, func(tx *bolt.Tx) error {
		txns := tx.Bucket(bucketTransactions)
		prefix := itob(fileID)
		c := tx.Bucket(bucketTransactionsByFile).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			var t model.Transaction
			if err := get(txns, k[8:], &t); err != nil {
				return err
			}
			out = append(out, t)
		}
		return nil
	})
	return out, err
}

// Uncategorized returns every transaction without a category identity.
func (s *Store) Uncategorized(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := s.view(ctx, func(tx *bolt.Tx) error {
		txns := tx.Bucket(bucketTransactions)
		return tx.Bucket(bucketUncategorized).ForEach(func(k, _ []byte) error {
			var t model.Transaction
			if err := get(txns, k, &t); err != nil {
				return err
			}
			out = append(out, t)
			return nil
		})
	})
	return out, err
}
