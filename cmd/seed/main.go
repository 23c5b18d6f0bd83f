// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the demo user (demo@example.com) already exists.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	accountdomain "demo-bank/backend/internal/account/domain"
	accountrepo "demo-bank/backend/internal/account/repository"
	"demo-bank/backend/internal/config"
	"demo-bank/backend/internal/db"
	"demo-bank/backend/internal/logging"
	"demo-bank/backend/internal/security"
	userdomain "demo-bank/backend/internal/user/domain"
	userrepo "demo-bank/backend/internal/user/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "Password123!"
	demoSSN      = "123456789"
)

func main() {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "config", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Error(ctx, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "db", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	accounts := accountrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		log.Error(ctx, "seed check", "error", err)
		os.Exit(1)
	}
	if existing != nil {
		log.Info(ctx, "seed already applied, skipping", "email", demoEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(demoPassword))
	if err != nil {
		log.Error(ctx, "hash password", "error", err)
		os.Exit(1)
	}
	cipher, err := security.NewCipherWithFallback(ctx, cfg.EncryptionKey, log)
	if err != nil {
		log.Error(ctx, "encryption", "error", err)
		os.Exit(1)
	}
	encryptedSSN, err := cipher.Encrypt(demoSSN)
	if err != nil {
		log.Error(ctx, "encrypt ssn", "error", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        demoEmail,
		PasswordHash: passwordHash,
		FirstName:    "Demo",
		LastName:     "User",
		Phone:        "5551234567",
		DateOfBirth:  "1990-01-15",
		SSNEncrypted: encryptedSSN,
		SSNLast4:     security.SSNLast4(demoSSN),
		Address:      "1 Main St",
		City:         "San Francisco",
		State:        "CA",
		ZipCode:      "94105",
		Status:       userdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	number, err := accountdomain.NewAccountNumber()
	if err != nil {
		log.Error(ctx, "account number", "error", err)
		os.Exit(1)
	}
	account := &accountdomain.Account{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		AccountNumber: number,
		AccountType:   accountdomain.TypeChecking,
		BalanceCents:  0,
		CreatedAt:     now,
	}
	if err := users.CreateWithAccount(ctx, user, account); err != nil {
		log.Error(ctx, "create demo user", "error", err)
		os.Exit(1)
	}

	// $2,500 starting balance, booked through Deposit so the ledger and the
	// balance agree.
	tx := &accountdomain.Transaction{
		ID:          uuid.New().String(),
		AccountID:   account.ID,
		Type:        accountdomain.TxTypeDeposit,
		AmountCents: 250000,
		Description: "Initial demo balance",
		CreatedAt:   now,
	}
	if err := accounts.Deposit(ctx, tx); err != nil {
		log.Error(ctx, "seed transaction", "error", err)
		os.Exit(1)
	}

	log.Info(ctx, "seed complete", "email", demoEmail, "account", account.AccountNumber)
}
