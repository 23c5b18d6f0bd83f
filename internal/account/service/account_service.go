package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"demo-bank/backend/internal/account/domain"
	"demo-bank/backend/internal/audit"
	auditdomain "demo-bank/backend/internal/audit/domain"
	"demo-bank/backend/internal/policy/engine"
	"demo-bank/backend/internal/validation"
)

// Sentinel errors for the account service; the handler maps them to HTTP
// status codes.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNotAccountOwner = errors.New("account does not belong to user")
	ErrInternal        = errors.New("internal error")
)

const transactionPageSize = 50

// AccountRepo is the minimal account repository needed by the service.
type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
	Deposit(ctx context.Context, t *domain.Transaction) error
	ListTransactions(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error)
}

// FundRequest carries the card funding input. Amount is a decimal dollar
// string as received from the client.
type FundRequest struct {
	Amount     string
	CardNumber string
}

// AccountService manages deposit accounts and card funding.
type AccountService struct {
	repo     AccountRepo
	policies engine.Evaluator
	auditor  audit.AuditLogger
}

// NewAccountService returns an AccountService with the given dependencies.
func NewAccountService(repo AccountRepo, policies engine.Evaluator, auditor audit.AuditLogger) *AccountService {
	return &AccountService{repo: repo, policies: policies, auditor: auditor}
}

// ListAccounts returns all accounts owned by userID.
func (s *AccountService) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Fund validates a card deposit, checks it against the funding policy, and
// atomically credits the account. The full card number is never persisted.
func (s *AccountService) Fund(ctx context.Context, userID, accountID string, req FundRequest) (*domain.Transaction, error) {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	cents, err := domain.ParseCents(req.Amount)
	if err != nil {
		return nil, &validation.Error{Field: "amount", Message: "Invalid amount"}
	}

	card := domain.CleanCardNumber(strings.TrimSpace(req.CardNumber))
	if !domain.ValidCardNumber(card) {
		return nil, &validation.Error{Field: "cardNumber", Message: "Invalid card number"}
	}
	brand := domain.DetectCardBrand(card)

	result, err := s.policies.EvaluateFunding(ctx, engine.FundingInput{
		AmountCents: cents,
		CardBrand:   brand,
		AccountType: account.AccountType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: evaluate funding policy: %v", ErrInternal, err)
	}
	if !result.Allowed {
		return nil, &validation.Error{Field: "amount", Message: result.Reason}
	}

	last4 := card[len(card)-4:]
	tx := &domain.Transaction{
		ID:          uuid.New().String(),
		AccountID:   account.ID,
		Type:        domain.TxTypeDeposit,
		AmountCents: cents,
		Description: fmt.Sprintf("Card deposit (%s ****%s)", brand, last4),
		CardBrand:   brand,
		CardLast4:   last4,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Deposit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: deposit: %v", ErrInternal, err)
	}

	if s.auditor != nil {
		s.auditor.LogEvent(ctx, userID, auditdomain.ActionAccountFund, "account",
			fmt.Sprintf(`{"accountId":%q,"amountCents":%d,"cardBrand":%q}`, account.ID, cents, brand))
	}
	return tx, nil
}

// ListTransactions returns the most recent transactions for an account
// owned by userID, newest first.
func (s *AccountService) ListTransactions(ctx context.Context, userID, accountID string) ([]*domain.Transaction, error) {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, account.ID, transactionPageSize)
}

func (s *AccountService) getOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.UserID != userID {
		return nil, ErrNotAccountOwner
	}
	return account, nil
}

// NewDefaultAccount builds the checking account opened for every new user.
// Persistence is left to the caller so signup can create the user and the
// account in one transaction.
func NewDefaultAccount(userID string, now time.Time) (*domain.Account, error) {
	number, err := domain.NewAccountNumber()
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:            uuid.New().String(),
		UserID:        userID,
		AccountNumber: number,
		AccountType:   domain.TypeChecking,
		BalanceCents:  0,
		CreatedAt:     now,
	}, nil
}
