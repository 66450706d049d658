package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
	"github.com/fintrack/finance-api/internal/pkg/validation"
)

// EntryService manages a user's income and expense entries.
type EntryService struct {
	repo      ports.EntryRepository
	idem      ports.IdempotencyStore
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewEntryService returns an EntryService. idem may be nil, in which case
// idempotency keys are ignored.
func NewEntryService(repo ports.EntryRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *EntryService {
	return &EntryService{
		repo:      repo,
		idem:      idem,
		validator: validation.New(),
		logger:    logger,
	}
}

// Create stores a new entry. A repeated idempotency key returns the entry the
// key first produced, with AlreadyExisted set.
func (s *EntryService) Create(ctx context.Context, owner domain.Identity, in ports.CreateEntryInput) (*ports.CreateEntryResult, error) {
	ctx, span := tracer.Start(ctx, "EntryService.Create")
	defer span.End()

	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	useKey := in.IdempotencyKey != "" && s.idem != nil
	if useKey {
		existing, err := s.replay(ctx, owner.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, fail(span, err)
		}
		if existing != nil {
			span.SetAttributes(attribute.Bool("entry.replayed", true))
			s.logger.Info().Str("user_id", owner.UserID).Str("entry_id", existing.ID).Msg("idempotent replay")
			return &ports.CreateEntryResult{Entry: existing, AlreadyExisted: true}, nil
		}
	}

	created, err := s.repo.Create(ctx, &domain.Entry{
		UserID:      owner.UserID,
		Kind:        domain.EntryKind(in.Kind),
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date.UTC(),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fail(span, fmt.Errorf("create entry: %w", err))
	}

	if useKey {
		if err := s.idem.Remember(ctx, owner.UserID, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", owner.UserID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().
		Str("user_id", owner.UserID).
		Str("entry_id", created.ID).
		Str("kind", in.Kind).
		Msg("entry created")

	return &ports.CreateEntryResult{Entry: created}, nil
}

// replay returns the entry previously stored under key, or nil when the key is
// unknown, the entry has since been deleted, or the idempotency store is down.
func (s *EntryService) replay(ctx context.Context, userID, key string) (*domain.Entry, error) {
	entryID, found, err := s.idem.Lookup(ctx, userID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("idempotency lookup failed, creating anyway")
		return nil, nil
	}
	if !found {
		return nil, nil
	}

	existing, err := s.repo.FindByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("create entry: replay: %w", err)
	}
	return existing, nil
}

// List returns the owner's entries, newest first. kind may be empty.
func (s *EntryService) List(ctx context.Context, owner domain.Identity, kind string) ([]*domain.Entry, error) {
	k := domain.EntryKind(strings.TrimSpace(kind))
	if k != "" && !k.Valid() {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "kind",
			Message: "kind must be one of: income expense",
		})
	}

	entries, err := s.repo.ListByUser(ctx, owner.UserID, k)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *EntryService) Delete(ctx context.Context, owner domain.Identity, id string) error {
	if err := s.repo.Delete(ctx, owner.UserID, id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return domain.ErrEntryNotFound
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	s.logger.Info().Str("user_id", owner.UserID).Str("entry_id", id).Msg("entry deleted")
	return nil
}

// Summary totals every entry the owner has.
func (s *EntryService) Summary(ctx context.Context, owner domain.Identity) (domain.Summary, error) {
	ctx, span := tracer.Start(ctx, "EntryService.Summary")
	defer span.End()

	entries, err := s.repo.ListByUser(ctx, owner.UserID, "")
	if err != nil {
		return domain.Summary{}, fail(span, fmt.Errorf("summary: %w", err))
	}
	return domain.Summarize(entries), nil
}
