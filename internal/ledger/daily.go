package ledger

import (
	"iter"

	"github.com/cashbook/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DailyTotals holds the income and expense sums of one calendar day.
type DailyTotals struct {
	Date         types.Date      `json:"date" example:"2024-03-14"`
	IncomeTotal  decimal.Decimal `json:"income_total" example:"2000.00"`
	ExpenseTotal decimal.Decimal `json:"expense_total" example:"42.17"`
}

// Daily returns a sequence with one element per calendar date present in
// entries, in ascending date order. Days without entries are not produced.
//
// The sequence holds no state of its own: every iteration recomputes
// the buckets from entries.
func Daily(entries []Entry) iter.Seq[DailyTotals] {
	return func(yield func(DailyTotals) bool) {
		buckets := make(map[string]*DailyTotals)
		for _, e := range entries {
			key := e.Date.String()

			b, ok := buckets[key]
			if !ok {
				b = &DailyTotals{Date: e.Date, IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
				buckets[key] = b
			}

			switch e.Kind {
			case Income:
				b.IncomeTotal = b.IncomeTotal.Add(e.Amount)
			case Expense:
				b.ExpenseTotal = b.ExpenseTotal.Add(e.Amount)
			}
		}

		days := make([]*DailyTotals, 0, len(buckets))
		for _, b := range buckets {
			days = append(days, b)
		}

		slices.SortFunc(days, func(a, b *DailyTotals) int {
			return a.Date.Compare(b.Date)
		})

		for _, d := range days {
			if !yield(*d) {
				return
			}
		}
	}
}
