package profile

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixColumns(id string) Profile {
	return Profile{
		ID: id,
		Mapping: Mapping{
			Date:          Column(0),
			ProcessedDate: Column(1),
			Description:   Column(2),
			Holder:        Column(3),
			AccountNumber: Column(4),
			Amount:        Column(5),
		},
	}
}

func TestRegistry_GetMiss(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestRegistry_AddOrReplace(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddOrReplace(sixColumns("mine")))

	got, ok := r.Get("MINE")
	require.True(t, ok)
	assert.Equal(t, "mine", got.ID)
	assert.Equal(t, 6, got.ExpectedColumns())

	replacement := sixColumns("mine")
	replacement.Name = "Replaced"
	require.NoError(t, r.AddOrReplace(replacement))

	got, ok = r.Get("mine")
	require.True(t, ok)
	assert.Equal(t, "Replaced", got.Name)
	assert.Len(t, r.All(), 1)
}

func TestRegistry_AddOrReplace_RejectsInvalid(t *testing.T) {
	r := NewRegistry()
	p := sixColumns("broken")
	p.Mapping.Amount = Field{}

	err := r.AddOrReplace(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")

	_, ok := r.Get("broken")
	assert.False(t, ok)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddOrReplace(sixColumns("a")))

	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	_, ok := r.Get("a")
	assert.False(t, ok)
}

func TestRegistry_AllSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.AddOrReplace(sixColumns(id)))
	}
	var ids []string
	for _, p := range r.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.AddOrReplace(sixColumns("custom"))
			_, _ = r.Get("amex")
			_ = r.All()
		}()
	}
	wg.Wait()
	_, ok := r.Get("custom")
	assert.True(t, ok)
}

func TestDefault_BuiltinProfiles(t *testing.T) {
	r := Default()
	want := map[string]int{
		"default":    6,
		"amex":       4,
		"chase":      6,
		"discover":   5,
		"rbc":        7,
		"td":         6,
		"scotiabank": 5,
		"bmo":        4,
		"cibc":       5,
		"tangerine":  5,
	}
	assert.Len(t, r.All(), len(want))
	for id, cols := range want {
		p, ok := r.Get(id)
		require.True(t, ok, "profile %s", id)
		assert.Equal(t, cols, p.ExpectedColumns(), "profile %s", id)
		assert.Empty(t, Validate(p), "profile %s", id)
	}
}

func TestDefault_LiteralFields(t *testing.T) {
	p, ok := Default().Get("chase")
	require.True(t, ok)
	assert.True(t, p.Mapping.Holder.IsLiteral())
	assert.Equal(t, "Chase", p.Mapping.Holder.Value())
	assert.Equal(t, "Chase Card", p.Mapping.AccountNumber.Value())
	assert.Equal(t, 5, p.Mapping.Amount.Index())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr string
	}{
		{"valid", func(*Profile) {}, ""},
		{"missing id", func(p *Profile) { p.ID = "" }, "id is required"},
		{"unset field", func(p *Profile) { p.Mapping.Holder = Field{} }, "holder"},
		{"negative column", func(p *Profile) { p.Mapping.Date = Column(-1) }, "negative"},
		{"column outside width", func(p *Profile) { p.Columns = 4 }, "outside a 4-column row"},
		{"all literals", func(p *Profile) {
			p.Mapping = Mapping{
				Date: Literal("x"), ProcessedDate: Literal("x"), Description: Literal("x"),
				Holder: Literal("x"), AccountNumber: Literal("x"), Amount: Literal("1"),
			}
		}, "at least one field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sixColumns("p")
			tt.mutate(&p)
			errs := Validate(p)
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if strings.Contains(e.Error(), tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "no error mentions %q: %v", tt.wantErr, errs)
		})
	}
}
