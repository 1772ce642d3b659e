package store

import (
	"bytes"
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/tally-app/tally/internal/model"
)

// CreateFile inserts f and assigns its ID. It returns ErrDuplicateFile when
// the fingerprint is already stored; the check and insert are atomic.
func (s *Store) CreateFile(ctx context.Context, f model.File) (model.File, error) {
	err := s.update(ctx, func(tx *bolt.Tx) error {
		byFP := tx.Bucket(bucketFilesByFP)
		if byFP.Get([]byte(f.Fingerprint)) != nil {
			return ErrDuplicateFile
		}

		files := tx.Bucket(bucketFiles)
		id, err := files.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating file id: %w", err)
		}
		f.ID = id

		if err := put(files, itob(id), f); err != nil {
			return err
		}
		return byFP.Put([]byte(f.Fingerprint), itob(id))
	})
	if err != nil {
		return model.File{}, err
	}
	return f, nil
}

// FileByFingerprint looks up a file by content fingerprint.
func (s *Store) FileByFingerprint(ctx context.Context, fp string) (model.File, bool, error) {
	var f model.File
	found := false
	err := s.view(ctx, func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketFilesByFP).Get([]byte(fp))
		if id == nil {
			return nil
		}
		found = true
		return get(tx.Bucket(bucketFiles), id, &f)
	})
	return f, found, err
}

// File returns the file with id.
func (s *Store) File(ctx context.Context, id uint64) (model.File, error) {
	var f model.File
	err := s.view(ctx, func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketFiles), itob(id), &f)
	})
	if err != nil {
		return model.File{}, fmt.Errorf("file %d: %w", id, err)
	}
	return f, nil
}

// Files returns every file in id order.
func (s *Store) Files(ctx context.Context) ([]model.File, error) {
	var out []model.File
	err := s.view(ctx, func(tx *bolt.Tx) error {
		var err error
		out, err = all[model.File](tx.Bucket(bucketFiles))
		return err
	})
	return out, err
}

// DeleteFile removes a file and every transaction imported from it.
func (s *Store) DeleteFile(ctx context.Context, id uint64) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		var f model.File
		if err := get(files, itob(id), &f); err != nil {
			return fmt.Errorf("file %d: %w", id, err)
		}

		byFile := tx.Bucket(bucketTransactionsByFile)
		var keys [][]byte
		c := byFile.Cursor()
		prefix := itob(id)
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := deleteTransaction(tx, btoi(k[8:])); err != nil {
				return err
			}
		}

		if err := tx.Bucket(bucketFilesByFP).Delete([]byte(f.Fingerprint)); err != nil {
			return err
		}
		return files.Delete(itob(id))
	})
}
