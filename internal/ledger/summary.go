package ledger

import (
	"strings"

	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CategoryExpense is the sum of expenses of one category.
//
// CategoryID and Name are null for expenses without a category.
type CategoryExpense struct {
	CategoryID *uuid.UUID      `json:"category_id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Name       *string         `json:"name" example:"Groceries"`
	Total      decimal.Decimal `json:"total" example:"450.00"`
}

// Summary is the dashboard overview for a date range.
type Summary struct {
	From             *types.Date       `json:"from" example:"2024-03-01"` // Inclusive lower bound, null if unbounded
	To               *types.Date       `json:"to" example:"2024-03-31"`   // Inclusive upper bound, null if unbounded
	TotalIncome      decimal.Decimal   `json:"total_income" example:"2000.00"`
	TotalExpense     decimal.Decimal   `json:"total_expense" example:"450.00"`
	Net              decimal.Decimal   `json:"net" example:"1550.00"` // total_income - total_expense
	CategoryExpenses []CategoryExpense `json:"category_expenses"`
}

// NewSummary assembles a summary from its sums. The category expenses
// are sorted by SortCategoryExpenses.
func NewSummary(r Range, income, expense decimal.Decimal, categories []Total) Summary {
	s := Summary{
		TotalIncome:      income,
		TotalExpense:     expense,
		Net:              income.Sub(expense),
		CategoryExpenses: make([]CategoryExpense, 0, len(categories)),
	}

	if !r.From.IsZero() {
		from := r.From
		s.From = &from
	}

	if !r.To.IsZero() {
		to := r.To
		s.To = &to
	}

	for _, t := range categories {
		s.CategoryExpenses = append(s.CategoryExpenses, CategoryExpense{
			CategoryID: t.Key,
			Name:       t.Name,
			Total:      t.Total,
		})
	}

	SortCategoryExpenses(s.CategoryExpenses)
	return s
}

// SortCategoryExpenses sorts by total, highest first. Equal totals are
// ordered by name with the uncategorized group last.
func SortCategoryExpenses(expenses []CategoryExpense) {
	slices.SortStableFunc(expenses, func(a, b CategoryExpense) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		switch {
		case a.Name == nil && b.Name == nil:
			return 0
		case a.Name == nil:
			return 1
		case b.Name == nil:
			return -1
		}

		return strings.Compare(*a.Name, *b.Name)
	})
}

// sum adds up all group totals.
func sum(totals []Total) decimal.Decimal {
	s := decimal.Zero
	for _, t := range totals {
		s = s.Add(t.Total)
	}

	return s
}

// byKey indexes group totals by their key. Totals without a key are dropped.
func byKey(totals []Total) map[uuid.UUID]decimal.Decimal {
	m := make(map[uuid.UUID]decimal.Decimal, len(totals))
	for _, t := range totals {
		if t.Key == nil {
			continue
		}
		m[*t.Key] = m[*t.Key].Add(t.Total)
	}

	return m
}
