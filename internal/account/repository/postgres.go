package repository

import (
	"context"
	"database/sql"
	"errors"

	"demo-bank/backend/internal/account/domain"
	"demo-bank/backend/internal/db"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an account repository backed by handle.
// It takes *sql.DB rather than db.DBTX because Deposit owns its own
// transaction.
func NewPostgresRepository(handle *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: handle}
}

// Create inserts the account using the given handle, which may be a
// transaction shared with other writes (signup creates the user and the
// default account atomically).
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	return createAccount(ctx, r.db, a)
}

// CreateTx inserts the account inside an existing transaction.
func CreateTx(ctx context.Context, tx db.DBTX, a *domain.Account) error {
	return createAccount(ctx, tx, a)
}

func createAccount(ctx context.Context, handle db.DBTX, a *domain.Account) error {
	_, err := handle.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, account_number, account_type, balance_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.AccountNumber, a.AccountType, a.BalanceCents, a.CreatedAt)
	return err
}

// GetByID returns the account for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, account_number, account_type, balance_cents, created_at
		FROM accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.AccountType, &a.BalanceCents, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, account_number, account_type, balance_cents, created_at
		FROM accounts WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.AccountType, &a.BalanceCents, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

// Deposit credits the amount to the account and records the ledger entry
// in one transaction. The balance update and the transaction row are never
// visible separately.
func (r *PostgresRepository) Deposit(ctx context.Context, t *domain.Transaction) error {
	return db.WithTx(ctx, r.db, nil, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE accounts SET balance_cents = balance_cents + $1 WHERE id = $2`,
			t.AmountCents, t.AccountID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (id, account_id, tx_type, amount_cents, description, card_brand, card_last4, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.ID, t.AccountID, t.Type, t.AmountCents, t.Description, t.CardBrand, t.CardLast4, t.CreatedAt)
		return err
	})
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, tx_type, amount_cents, description, card_brand, card_last4, created_at
		FROM transactions WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.AmountCents, &t.Description, &t.CardBrand, &t.CardLast4, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
