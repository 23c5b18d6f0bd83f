package domain

import "time"

// Transaction is an immutable ledger entry against an account.
type Transaction struct {
	ID          string
	AccountID   string
	Type        string
	AmountCents int64
	Description string
	CardBrand   string
	CardLast4   string
	CreatedAt   time.Time
}

const (
	TxTypeDeposit = "deposit"
)
