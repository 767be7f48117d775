package ledger

import (
	"context"
	"time"

	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the engine's view of an account record.
type Account struct {
	ID             uuid.UUID
	Name           string
	InitialBalance decimal.Decimal
	CreatedAt      time.Time
}

// Budget is the engine's view of a budget record.
type Budget struct {
	ID           uuid.UUID
	Name         string
	Amount       decimal.Decimal
	CategoryID   uuid.UUID
	CategoryName string
	PeriodStart  types.Date
	PeriodEnd    types.Date
	CreatedAt    time.Time
}

// Period returns the budget's period as a Range.
func (b Budget) Period() Range {
	return Range{From: b.PeriodStart, To: b.PeriodEnd}
}

// Entry is the engine's view of a transaction record.
type Entry struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	CategoryID *uuid.UUID
	Kind       Kind
	Amount     decimal.Decimal
	Date       types.Date
	CreatedAt  time.Time
}

// Filter restricts the entries a Store considers. Zero fields do not filter.
type Filter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Kind       Kind
	Range      Range
}

// Matches reports whether the entry passes the filter.
func (f Filter) Matches(e Entry) bool {
	if f.AccountID != nil && e.AccountID != *f.AccountID {
		return false
	}

	if f.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *f.CategoryID) {
		return false
	}

	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}

	return f.Range.Contains(e.Date)
}

// GroupBy selects the key a Store groups sums by.
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupAccount
	GroupCategory
)

// Total is one group of a filtered sum.
//
// Key and Name are nil for GroupNone and for entries without a category
// when grouping by category.
type Total struct {
	Key   *uuid.UUID
	Name  *string
	Total decimal.Decimal
}

// Store is the record store the engine reads from.
//
// Every method is scoped to the given user: records owned by other users
// are never returned, counted or deleted.
type Store interface {
	// Accounts returns all accounts of the user, oldest first.
	Accounts(ctx context.Context, userID uuid.UUID) ([]Account, error)

	// Budgets returns all budgets of the user with their category names.
	Budgets(ctx context.Context, userID uuid.UUID) ([]Budget, error)

	// Entries returns all transactions passing the filter, ordered by date ascending.
	Entries(ctx context.Context, userID uuid.UUID, filter Filter) ([]Entry, error)

	// Sum adds up the amounts of all transactions passing the filter,
	// grouped by the given key. Amounts are summed unsigned.
	Sum(ctx context.Context, userID uuid.UUID, filter Filter, group GroupBy) ([]Total, error)

	// CountEntries counts the transactions passing the filter.
	CountEntries(ctx context.Context, userID uuid.UUID, filter Filter) (int64, error)

	// DeleteAccount deletes the account. It returns a NotFound error
	// when the user owns no account with this ID.
	DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error

	// Atomic runs fn against a Store in which all reads and writes form one
	// unit. If fn returns an error, none of its writes are kept.
	Atomic(ctx context.Context, fn func(Store) error) error
}
