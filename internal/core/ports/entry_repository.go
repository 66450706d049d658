package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// EntryRepository persists finance entries. Every query is scoped to a user.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	// FindByID returns domain.ErrEntryNotFound when the entry does not exist or
	// belongs to another user.
	FindByID(ctx context.Context, userID, id string) (*domain.Entry, error)
	// ListByUser returns entries ordered by date, newest first. An empty kind
	// returns both kinds.
	ListByUser(ctx context.Context, userID string, kind domain.EntryKind) ([]*domain.Entry, error)
	// Delete returns domain.ErrEntryNotFound when nothing was removed.
	Delete(ctx context.Context, userID, id string) error
}

// IdempotencyStore remembers which entry a client-supplied key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, key string) (entryID string, found bool, err error)
	Remember(ctx context.Context, userID, key, entryID string) error
}
