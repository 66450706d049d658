package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// UserRepository mediates every read and write of user records.
//
// Implementations must enforce email uniqueness atomically and report a
// violation as domain.ErrDuplicateEmail.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
