package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies categories and transactions.
type Kind string

const (
	Income  Kind = "INCOME"
	Expense Kind = "EXPENSE"
)

// ErrInvalidKind is returned for any kind other than INCOME or EXPENSE.
var ErrInvalidKind = Invalid("the kind must be either INCOME or EXPENSE")

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// ParseKind parses a kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrInvalidKind
	}

	return k, nil
}

// Signed returns the contribution of an amount of the given kind to a balance:
// positive for income, negative for expenses.
func Signed(kind Kind, amount decimal.Decimal) decimal.Decimal {
	if kind == Expense {
		return amount.Neg()
	}

	return amount
}
