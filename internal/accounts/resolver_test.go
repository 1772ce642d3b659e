package accounts

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-app/tally/internal/model"
	"github.com/tally-app/tally/internal/store"
)

type countingStore struct {
	mu    sync.Mutex
	calls int
	accts map[string]model.Account
	err   error
}

func (c *countingStore) GetOrCreateAccount(_ context.Context, holder, number string, kind model.AccountKind) (model.Account, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return model.Account{}, false, c.err
	}
	if a, ok := c.accts[number]; ok {
		return a, false, nil
	}
	a := model.Account{ID: uint64(len(c.accts) + 1), Holder: holder, Number: number, Kind: kind}
	c.accts[number] = a
	return a, true, nil
}

func TestResolve_CreatesOnce(t *testing.T) {
	st := &countingStore{accts: map[string]model.Account{}}
	r := NewResolver(st)
	ctx := context.Background()

	id1, err := r.Resolve(ctx, "J DOE", "1234", model.AccountKindCredit)
	require.NoError(t, err)
	id2, err := r.Resolve(ctx, "SOMEONE ELSE", "1234", model.AccountKindDebit)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, st.calls, "second lookup should hit the cache")

	a, ok := r.Get("1234")
	require.True(t, ok)
	assert.Equal(t, "J DOE", a.Holder)
}

func TestResolve_DistinctNumbers(t *testing.T) {
	r := NewResolver(&countingStore{accts: map[string]model.Account{}})
	ctx := context.Background()

	a, err := r.Resolve(ctx, "J DOE", "1111", model.AccountKindCredit)
	require.NoError(t, err)
	b, err := r.Resolve(ctx, "J DOE", "2222", model.AccountKindCredit)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestResolve_StoreError(t *testing.T) {
	r := NewResolver(&countingStore{accts: map[string]model.Account{}, err: errors.New("disk full")})
	_, err := r.Resolve(context.Background(), "J DOE", "1234", model.AccountKindCredit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, ok := r.Get("1234")
	assert.False(t, ok)
}

func TestResolve_ConcurrentAgainstStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	ids := make([]uint64, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Separate resolvers model separate import sessions.
			id, err := NewResolver(st).Resolve(ctx, "holder", "9999", model.AccountKindDebit)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	accts, err := st.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accts, 1)
}
