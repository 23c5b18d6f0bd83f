package repository

import (
	"context"

	"demo-bank/backend/internal/account/domain"
)

// Repository defines persistence for accounts and their transactions.
type Repository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)

	// Deposit atomically credits t.AmountCents to t.AccountID and records
	// t in the ledger.
	Deposit(ctx context.Context, t *domain.Transaction) error

	// ListTransactions returns up to limit transactions for the account,
	// newest first.
	ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error)
}
