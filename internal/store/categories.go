package store

import (
	"context"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/tally-app/tally/internal/model"
)

// SetCategory resolves name to a category, creating it if needed, and
// assigns it to the transaction. Only the category fields change.
func (s *Store) SetCategory(ctx context.Context, txID uint64, name string) (model.Transaction, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Transaction{}, fmt.Errorf("empty category name")
	}

	var t model.Transaction
	err := s.update(ctx, func(tx *bolt.Tx) error {
		txns := tx.Bucket(bucketTransactions)
		if err := get(txns, itob(txID), &t); err != nil {
			return fmt.Errorf("transaction %d: %w", txID, err)
		}

		cat, err := getOrCreateCategory(tx, name)
		if err != nil {
			return err
		}
		id := cat.ID
		t.CategoryID = &id
		t.CategoryName = cat.Name

		if err := put(txns, itob(t.ID), t); err != nil {
			return err
		}
		return indexCategory(tx, t)
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

func getOrCreateCategory(tx *bolt.Tx, name string) (model.Category, error) {
	cats := tx.Bucket(bucketCategories)
	byName := tx.Bucket(bucketCategoriesByName)
	key := []byte(strings.ToLower(name))

	var c model.Category
	if id := byName.Get(key); id != nil {
		err := get(cats, id, &c)
		return c, err
	}

	id, err := cats.NextSequence()
	if err != nil {
		return c, fmt.Errorf("allocating category id: %w", err)
	}
	c = model.Category{ID: id, Name: name}
	if err := put(cats, itob(id), c); err != nil {
		return c, err
	}
	return c, byName.Put(key, itob(id))
}

// Categories returns every category in id order.
func (s *Store) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		out, err = all[model.Category](tx.Bucket(bucketCategories))
		return err
	})
	return out, err
}
