package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Account is a deposit account. Balances are stored in integer cents;
// dollar amounts only exist at the API boundary.
type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	AccountType   string
	BalanceCents  int64
	CreatedAt     time.Time
}

const (
	TypeChecking = "checking"
	TypeSavings  = "savings"
)

// NewAccountNumber generates a random 10-digit account number. Uniqueness
// is enforced by the database constraint, not here.
func NewAccountNumber() (string, error) {
	max := big.NewInt(10_000_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%010d", n), nil
}

// MaskedNumber returns the account number with all but the last four
// digits replaced, for display.
func (a *Account) MaskedNumber() string {
	if len(a.AccountNumber) < 4 {
		return a.AccountNumber
	}
	return "******" + a.AccountNumber[len(a.AccountNumber)-4:]
}
