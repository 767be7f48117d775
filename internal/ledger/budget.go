package ledger

import (
	"time"

	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status summarises how much of a budget has been consumed.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(70)
)

// BudgetConsumption is a budget together with what has been spent in its period.
type BudgetConsumption struct {
	ID           uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Name         string          `json:"name" example:"Groceries March"`
	Amount       decimal.Decimal `json:"amount" example:"400.00"`
	PeriodStart  types.Date      `json:"period_start" example:"2024-03-01"`
	PeriodEnd    types.Date      `json:"period_end" example:"2024-03-31"`
	CategoryID   uuid.UUID       `json:"category_id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	CategoryName string          `json:"category_name" example:"Groceries"`
	Spent        decimal.Decimal `json:"spent" example:"450.00"`      // Unclamped sum of expenses in the period
	Percent      decimal.Decimal `json:"percent" example:"100"`       // Spent in percent of the amount, at most 100
	Exceeded     bool            `json:"exceeded" example:"true"`     // Spent is greater than the amount
	ExceededBy   decimal.Decimal `json:"exceeded_by" example:"50.00"` // How much more than the amount has been spent, never negative
	Status       Status          `json:"status" example:"exceeded"`   // ok, warning or exceeded
	CreatedAt    time.Time       `json:"created_at" example:"2024-03-01T08:00:00Z"`
}

// Percent returns spent as a percentage of amount, rounded to two decimals
// and clamped to [0, 100]. It is 0 when amount is not positive.
func Percent(spent, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}

	p := spent.Div(amount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}

	if p.IsNegative() {
		return decimal.Zero
	}

	return p.Round(2)
}

// ExceededBy returns spent - amount, or 0 if the budget is not exceeded.
func ExceededBy(spent, amount decimal.Decimal) decimal.Decimal {
	if spent.GreaterThan(amount) {
		return spent.Sub(amount)
	}

	return decimal.Zero
}

// StatusOf classifies the consumption. A budget is exceeded once spent is
// greater than amount and in warning from 70 % consumption on.
func StatusOf(spent, amount decimal.Decimal) Status {
	if spent.GreaterThan(amount) {
		return StatusExceeded
	}

	if amount.IsPositive() && spent.Div(amount).Mul(hundred).GreaterThanOrEqual(warningThreshold) {
		return StatusWarning
	}

	return StatusOK
}

// Consume derives the consumption of a budget from the amount spent in its period.
func Consume(b Budget, spent decimal.Decimal) BudgetConsumption {
	return BudgetConsumption{
		ID:           b.ID,
		Name:         b.Name,
		Amount:       b.Amount,
		PeriodStart:  b.PeriodStart,
		PeriodEnd:    b.PeriodEnd,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		Spent:        spent,
		Percent:      Percent(spent, b.Amount),
		Exceeded:     spent.GreaterThan(b.Amount),
		ExceededBy:   ExceededBy(spent, b.Amount),
		Status:       StatusOf(spent, b.Amount),
		CreatedAt:    b.CreatedAt,
	}
}

// compareBudgets orders budgets by most recent period first,
// then by creation time, newest first.
func compareBudgets(a, b BudgetConsumption) int {
	if c := b.PeriodStart.Compare(a.PeriodStart); c != 0 {
		return c
	}

	return b.CreatedAt.Compare(a.CreatedAt)
}
