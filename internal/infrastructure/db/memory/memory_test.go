package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/finance-api/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "Ana", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "h", found.PasswordHash)

	found.Name = "mutated"
	again, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Name, "callers must not share stored records")

	_, err = repo.FindByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUserRepository()

	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), &domain.User{Email: "race@x.com"})
			switch {
			case err == nil:
				ok.Add(1)
			case err == domain.ErrDuplicateEmail:
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(31), dup.Load())
}

func TestEntryRepository(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	older, err := repo.Create(ctx, &domain.Entry{UserID: "u1", Kind: domain.KindIncome, Amount: 100, Date: day(1)})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &domain.Entry{UserID: "u1", Kind: domain.KindExpense, Amount: 20, Date: day(5)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Entry{UserID: "u2", Kind: domain.KindIncome, Amount: 7, Date: day(3)})
	require.NoError(t, err)

	all, err := repo.ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	incomes, err := repo.ListByUser(ctx, "u1", domain.KindIncome)
	require.NoError(t, err)
	require.Len(t, incomes, 1)

	none, err := repo.ListByUser(ctx, "nobody", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = repo.FindByID(ctx, "u2", older.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "u2", older.ID), domain.ErrEntryNotFound)
	require.NoError(t, repo.Delete(ctx, "u1", older.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "u1", older.ID), domain.ErrEntryNotFound)
}

func TestIdempotencyStore(t *testing.T) {
	s := NewIdempotencyStore()
	ctx := context.Background()

	_, found, err := s.Lookup(ctx, "u1", "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Remember(ctx, "u1", "k", "e1"))
	require.NoError(t, s.Remember(ctx, "u1", "k", "e2"))

	id, found, err := s.Lookup(ctx, "u1", "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "e1", id)

	_, found, _ = s.Lookup(ctx, "u2", "k")
	assert.False(t, found)
}
