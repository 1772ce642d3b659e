package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrDuplicateFile is returned by CreateFile when a file with the same
	// fingerprint already exists.
	ErrDuplicateFile = errors.New("file already imported")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
)

var (
	bucketFiles              = []byte("files")
	bucketFilesByFP          = []byte("files_by_fp")
	bucketAccounts           = []byte("accounts")
	bucketAccountsByNumber   = []byte("accounts_by_number")
	bucketTransactions       = []byte("transactions")
	bucketTransactionsByFP   = []byte("transactions_by_fp")
	bucketTransactionsByFile = []byte("transactions_by_file")
	bucketUncategorized      = []byte("uncategorized")
	bucketCategories         = []byte("categories")
	bucketCategoriesByName   = []byte("categories_by_name")
)

var allBuckets = [][]byte{
	bucketFiles,
	bucketFilesByFP,
	bucketAccounts,
	bucketAccountsByNumber,
	bucketTransactions,
	bucketTransactionsByFP,
	bucketTransactionsByFile,
	bucketUncategorized,
	bucketCategories,
	bucketCategoriesByName,
}

// Store persists files, accounts, transactions and categories in a bbolt
// database. Writes are serialized by bbolt; every conditional insert runs
// inside a single write transaction.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(fn)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// compositeKey joins two ids so a cursor can seek by the first one.
func compositeKey(a, b uint64) []byte {
	k := make([]byte, 16)
	binary.BigEndian.PutUint64(k[:8], a)
	binary.BigEndian.PutUint64(k[8:], b)
	return k
}

func put(b *bolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return b.Put(key, data)
}

func get(b *bolt.Bucket, key []byte, v any) error {
	data := b.Get(key)
	if data == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}

func all[T any](b *bolt.Bucket) ([]T, error) {
	var out []T
	err := b.ForEach(func(_, data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decoding record: %w", err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}
