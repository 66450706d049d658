package ports

import (
	"context"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// CreateEntryInput carries a new income or expense record.
type CreateEntryInput struct {
	Kind           string    `validate:"required,oneof=income expense"`
	Amount         float64   `validate:"gt=0"`
	Category       string    `validate:"required,max=64"`
	Description    string    `validate:"max=255"`
	Date           time.Time `validate:"required"`
	IdempotencyKey string    `validate:"max=128"`
}

// CreateEntryResult reports whether the entry was replayed from an earlier
// request with the same idempotency key.
type CreateEntryResult struct {
	Entry          *domain.Entry
	AlreadyExisted bool
}

type EntryService interface {
	Create(ctx context.Context, owner domain.Identity, in CreateEntryInput) (*CreateEntryResult, error)
	List(ctx context.Context, owner domain.Identity, kind string) ([]*domain.Entry, error)
	Delete(ctx context.Context, owner domain.Identity, id string) error
	Summary(ctx context.Context, owner domain.Identity) (domain.Summary, error)
}
