package repository

import (
	"context"

	accountdomain "demo-bank/backend/internal/account/domain"
	"demo-bank/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error

	// CreateWithAccount inserts the user and opens their default account in
	// one transaction. Signup never produces a user without an account.
	CreateWithAccount(ctx context.Context, u *domain.User, a *accountdomain.Account) error
}
