package domain

import "time"

// EntryKind separates money coming in from money going out.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// Valid reports whether k is a known kind.
func (k EntryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Entry is a single income or expense record owned by one user.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Kind        EntryKind `json:"kind"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary holds the running totals shown on the dashboard.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
	Count         int     `json:"count"`
}

// Summarize folds entries into totals. Balance is income minus expenses.
func Summarize(entries []*Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Kind {
		case KindIncome:
			s.TotalIncome += e.Amount
		case KindExpense:
			s.TotalExpenses += e.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	s.Count = len(entries)
	return s
}
