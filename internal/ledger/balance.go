package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountBalance is the derived balance of an account.
type AccountBalance struct {
	ID                uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Name              string          `json:"name" example:"Checking"`
	InitialBalance    decimal.Decimal `json:"initial_balance" example:"1000.00"`
	TransactionsTotal decimal.Decimal `json:"transactions_total" example:"300.00"` // Signed sum of all transactions on the account
	CurrentBalance    decimal.Decimal `json:"current_balance" example:"1300.00"`
	CreatedAt         time.Time       `json:"created_at" example:"2022-04-02T19:28:44.491514Z"`
}

// NewAccountBalance derives the balance of an account from the unsigned
// sums of its income and expense transactions.
func NewAccountBalance(a Account, income, expense decimal.Decimal) AccountBalance {
	total := income.Sub(expense)

	return AccountBalance{
		ID:                a.ID,
		Name:              a.Name,
		InitialBalance:    a.InitialBalance,
		TransactionsTotal: total,
		CurrentBalance:    a.InitialBalance.Add(total),
		CreatedAt:         a.CreatedAt,
	}
}

// Balance folds entries onto an initial balance.
func Balance(initial decimal.Decimal, entries []Entry) decimal.Decimal {
	balance := initial
	for _, e := range entries {
		balance = balance.Add(Signed(e.Kind, e.Amount))
	}

	return balance
}
