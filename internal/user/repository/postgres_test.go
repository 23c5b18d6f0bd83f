package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	accountdomain "demo-bank/backend/internal/account/domain"
	accountrepo "demo-bank/backend/internal/account/repository"
	"demo-bank/backend/internal/user/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	handle, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { handle.Close() })

	_, err = handle.Exec(`
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			phone         TEXT NOT NULL DEFAULT '',
			date_of_birth TEXT NOT NULL DEFAULT '',
			ssn_encrypted TEXT NOT NULL,
			ssn_last4     TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '',
			city          TEXT NOT NULL DEFAULT '',
			state         TEXT NOT NULL DEFAULT '',
			zip_code      TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    TIMESTAMP NOT NULL,
			updated_at    TIMESTAMP NOT NULL
		);
		CREATE TABLE accounts (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			account_number TEXT NOT NULL UNIQUE,
			account_type   TEXT NOT NULL,
			balance_cents  INTEGER NOT NULL DEFAULT 0,
			created_at     TIMESTAMP NOT NULL
		)`)
	require.NoError(t, err)
	return handle
}

func newUser(email string) *domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "$2a$04$fakehash",
		FirstName:    "Jane",
		LastName:     "Doe",
		Phone:        "555-123-4567",
		DateOfBirth:  "1990-01-15",
		SSNEncrypted: "aXY=:dGFn:Y3Q=",
		SSNLast4:     "6789",
		Address:      "1 Main St",
		City:         "Springfield",
		State:        "CA",
		ZipCode:      "90210",
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewPostgresRepository(newTestDB(t))
	ctx := context.Background()

	u := newUser("jane@example.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.SSNEncrypted, got.SSNEncrypted)
	require.Equal(t, domain.StatusActive, got.Status)

	byEmail, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestGet_Missing(t *testing.T) {
	repo := NewPostgresRepository(newTestDB(t))
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := NewPostgresRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("dup@example.com")))
	require.Error(t, repo.Create(ctx, newUser("dup@example.com")))
}

func TestCreateWithAccount(t *testing.T) {
	handle := newTestDB(t)
	repo := NewPostgresRepository(handle)
	accounts := accountrepo.NewPostgresRepository(handle)
	ctx := context.Background()

	u := newUser("jane@example.com")
	a := &accountdomain.Account{
		ID:            uuid.NewString(),
		UserID:        u.ID,
		AccountNumber: "0123456789",
		AccountType:   accountdomain.TypeChecking,
		CreatedAt:     u.CreatedAt,
	}
	require.NoError(t, repo.CreateWithAccount(ctx, u, a))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	list, err := accounts.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, int64(0), list[0].BalanceCents)
}

func TestCreateWithAccount_RollsBackOnAccountFailure(t *testing.T) {
	handle := newTestDB(t)
	repo := NewPostgresRepository(handle)
	ctx := context.Background()

	first := newUser("jane@example.com")
	firstAccount := &accountdomain.Account{
		ID:            uuid.NewString(),
		UserID:        first.ID,
		AccountNumber: "0123456789",
		AccountType:   accountdomain.TypeChecking,
		CreatedAt:     first.CreatedAt,
	}
	require.NoError(t, repo.CreateWithAccount(ctx, first, firstAccount))

	// Same account number violates the unique constraint; the user insert
	// must not survive the failed account insert.
	second := newUser("john@example.com")
	secondAccount := &accountdomain.Account{
		ID:            uuid.NewString(),
		UserID:        second.ID,
		AccountNumber: "0123456789",
		AccountType:   accountdomain.TypeChecking,
		CreatedAt:     second.CreatedAt,
	}
	require.Error(t, repo.CreateWithAccount(ctx, second, secondAccount))

	got, err := repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.Nil(t, got)
}
