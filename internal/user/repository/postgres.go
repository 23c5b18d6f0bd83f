package repository

import (
	"context"
	"database/sql"
	"errors"

	accountdomain "demo-bank/backend/internal/account/domain"
	accountrepo "demo-bank/backend/internal/account/repository"
	"demo-bank/backend/internal/db"
	"demo-bank/backend/internal/user/domain"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, date_of_birth,
	ssn_encrypted, ssn_last4, address, city, state, zip_code, status, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given handle
// for persistence.
func NewPostgresRepository(handle *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: handle}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given (already normalized) email, or
// nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user. The user must have ID set; it is not assigned
// by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	return createUser(ctx, r.db, u)
}

// CreateWithAccount inserts the user and their default account in one
// transaction.
func (r *PostgresRepository) CreateWithAccount(ctx context.Context, u *domain.User, a *accountdomain.Account) error {
	return db.WithTx(ctx, r.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := createUser(ctx, tx, u); err != nil {
			return err
		}
		return accountrepo.CreateTx(ctx, tx, a)
	})
}

func createUser(ctx context.Context, handle db.DBTX, u *domain.User) error {
	_, err := handle.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.DateOfBirth,
		u.SSNEncrypted, u.SSNLast4, u.Address, u.City, u.State, u.ZipCode,
		string(u.Status), u.CreatedAt, u.UpdatedAt)
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var status string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.DateOfBirth, &u.SSNEncrypted, &u.SSNLast4, &u.Address, &u.City, &u.State,
		&u.ZipCode, &status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Status = domain.Status(status)
	return &u, nil
}
