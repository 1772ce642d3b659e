package model

// AccountKind classifies an account as a credit card or a debit/bank account.
type AccountKind string

const (
	AccountKindCredit AccountKind = "credit"
	AccountKindDebit  AccountKind = "debit"
)

// Valid reports whether k is a known account kind.
func (k AccountKind) Valid() bool {
	return k == AccountKindCredit || k == AccountKindDebit
}

// Account is a holder/number pair. Number is unique across all accounts and
// an account never changes after it is created.
type Account struct {
	ID     uint64      `json:"id"`
	Holder string      `json:"holder"`
	Number string      `json:"number"`
	Kind   AccountKind `json:"kind"`
}
