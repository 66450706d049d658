// Package memory provides process-local repositories for development and
// tests. Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// Store bundles the in-memory repositories.
type Store struct {
	Users   *UserRepository
	Entries *EntryRepository
}

func NewStore() *Store {
	return &Store{
		Users:   NewUserRepository(),
		Entries: NewEntryRepository(),
	}
}

func (s *Store) Name() string { return "memory" }

func (s *Store) Ping(context.Context) error { return nil }

// UserRepository keeps users keyed by email. The existence check and the
// insert happen under one lock, so concurrent registrations of the same
// address cannot both succeed.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}

	stored := *user
	stored.ID = uuid.NewString()
	r.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

type EntryRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Entry
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{byID: make(map[string]*domain.Entry)}
}

func (r *EntryRepository) Create(_ context.Context, e *domain.Entry) (*domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *e
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *EntryRepository) FindByID(_ context.Context, userID, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}
	out := *e
	return &out, nil
}

// ListByUser returns copies ordered by date, newest first.
func (r *EntryRepository) ListByUser(_ context.Context, userID string, kind domain.EntryKind) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Entry, 0)
	for _, e := range r.byID {
		if e.UserID != userID || (kind != "" && e.Kind != kind) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *EntryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return domain.ErrEntryNotFound
	}
	delete(r.byID, id)
	return nil
}

// IdempotencyStore is the in-process counterpart of the Redis store, used
// when no Redis address is configured.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: make(map[string]string)}
}

func (s *IdempotencyStore) Lookup(_ context.Context, userID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[userID+":"+key]
	return id, ok, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, userID, key, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := userID + ":" + key
	if _, ok := s.keys[k]; !ok {
		s.keys[k] = entryID
	}
	return nil
}
