package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/finance-api/internal/core/domain"
)

type EntryRepository struct {
	db DBTX
}

func NewEntryRepository(db DBTX) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `id, user_id, kind, amount, category, description, date, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*domain.Entry, error) {
	e := &domain.Entry{}
	var kind string
	if err := s.Scan(&e.ID, &e.UserID, &kind, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Kind = domain.EntryKind(kind)
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func (r *EntryRepository) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	query := `
		INSERT INTO entries (user_id, kind, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + entryColumns

	row := r.db.QueryRowContext(ctx, query,
		e.UserID, string(e.Kind), e.Amount, e.Category, e.Description, e.Date, e.CreatedAt)
	out, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

func (r *EntryRepository) FindByID(ctx context.Context, userID, id string) (*domain.Entry, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrEntryNotFound
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND user_id = $2`
	out, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

// ListByUser returns the user's entries, newest date first. An empty kind
// matches both kinds.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, kind domain.EntryKind) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE user_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make([]*domain.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

func (r *EntryRepository) Delete(ctx context.Context, userID, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrEntryNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete entry: %w: %w", domain.ErrStoreUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
