package handler

import (
	"fmt"
	"time"

	"github.com/fintrack/finance-api/internal/core/domain"
)

const idempotencyHeader = "Idempotency-Key"

type createEntryRequest struct {
	Kind        string  `json:"kind"        example:"expense" enums:"income,expense"`
	Amount      float64 `json:"amount"      example:"42.9"`
	Category    string  `json:"category"    example:"Food"`
	Description string  `json:"description" example:"Groceries"`
	// Date accepts RFC 3339 or a plain YYYY-MM-DD calendar date.
	Date string `json:"date" example:"2026-03-01"`
}

// parseDate accepts the two layouts clients send. An empty string yields the
// zero time, which validation reports as a missing date.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return t, nil
}

type entryListResponse struct {
	Data []*domain.Entry `json:"data"`
}
