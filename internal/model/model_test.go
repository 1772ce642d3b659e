package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountKind_Valid(t *testing.T) {
	tests := []struct {
		kind AccountKind
		want bool
	}{
		{AccountKindCredit, true},
		{AccountKindDebit, true},
		{"savings", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Valid(), "kind %q", tt.kind)
	}
}

func TestTransaction_Categorized(t *testing.T) {
	txn := Transaction{CategoryName: Uncategorized}
	assert.False(t, txn.Categorized())

	id := uint64(3)
	txn.CategoryID = &id
	assert.True(t, txn.Categorized())
}
