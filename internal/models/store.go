package models

import (
	"context"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store reads and deletes ledger records in the database.
type Store struct {
	db *gorm.DB
}

var _ ledger.Store = Store{}

// NewStore returns a Store on the given database.
func NewStore(db *gorm.DB) Store {
	return Store{db: db}
}

func (s Store) Accounts(ctx context.Context, userID uuid.UUID) ([]ledger.Account, error) {
	var accounts []Account
	err := s.db.WithContext(ctx).
		Where(&Account{UserID: userID}).
		Order("created_at ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Account, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, a.Record())
	}

	return records, nil
}

func (s Store) Budgets(ctx context.Context, userID uuid.UUID) ([]ledger.Budget, error) {
	var budgets []Budget
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where(&Budget{UserID: userID}).
		Order("period_start DESC, created_at DESC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Budget, 0, len(budgets))
	for _, b := range budgets {
		records = append(records, b.Record())
	}

	return records, nil
}

func (s Store) Entries(ctx context.Context, userID uuid.UUID, filter ledger.Filter) ([]ledger.Entry, error) {
	var transactions []Transaction
	err := s.transactions(ctx, userID, filter).
		Order("transactions.date ASC, transactions.created_at ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, t.Entry())
	}

	return entries, nil
}

// sumRow is one transaction with the key and name it is grouped by.
type sumRow struct {
	GroupKey *uuid.UUID
	Name     *string
	Amount   decimal.Decimal
}

// Sum adds up the filtered amounts.
//
// The rows are summed with decimal arithmetic instead of SQL SUM, which
// would add them up as floating point numbers.
func (s Store) Sum(ctx context.Context, userID uuid.UUID, filter ledger.Filter, group ledger.GroupBy) ([]ledger.Total, error) {
	query := s.transactions(ctx, userID, filter)

	switch group {
	case ledger.GroupAccount:
		query = query.
			Select("transactions.account_id AS group_key, accounts.name AS name, transactions.amount AS amount").
			Joins("JOIN accounts ON accounts.id = transactions.account_id")
	case ledger.GroupCategory:
		query = query.
			Select("transactions.category_id AS group_key, categories.name AS name, transactions.amount AS amount").
			Joins("LEFT JOIN categories ON categories.id = transactions.category_id")
	default:
		query = query.Select("transactions.amount AS amount")
	}

	var rows []sumRow
	err := general(query.Order("transactions.date ASC, transactions.created_at ASC").Scan(&rows).Error)
	if err != nil {
		return nil, err
	}

	if group == ledger.GroupNone {
		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(r.Amount)
		}
		return []ledger.Total{{Total: total}}, nil
	}

	// Groups keep the order of their first transaction
	var totals []ledger.Total
	index := make(map[uuid.UUID]int)
	uncategorized := -1
	for _, r := range rows {
		if r.GroupKey == nil {
			if uncategorized < 0 {
				uncategorized = len(totals)
				totals = append(totals, ledger.Total{})
			}
			totals[uncategorized].Total = totals[uncategorized].Total.Add(r.Amount)
			continue
		}

		i, ok := index[*r.GroupKey]
		if !ok {
			i = len(totals)
			index[*r.GroupKey] = i
			totals = append(totals, ledger.Total{Key: r.GroupKey, Name: r.Name})
		}
		totals[i].Total = totals[i].Total.Add(r.Amount)
	}

	return totals, nil
}

func (s Store) CountEntries(ctx context.Context, userID uuid.UUID, filter ledger.Filter) (int64, error) {
	var count int64
	err := s.transactions(ctx, userID, filter).Count(&count).Error
	if err != nil {
		return 0, general(err)
	}

	return count, nil
}

func (s Store) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("accounts.id = ? AND accounts.user_id = ?", accountID, userID).
		Delete(&Account{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ledger.NotFound("account")
	}

	return nil
}

// Atomic runs fn in a database transaction.
func (s Store) Atomic(ctx context.Context, fn func(ledger.Store) error) error {
	return general(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	}))
}

// transactions returns a query for the user's transactions that pass the filter.
func (s Store) transactions(ctx context.Context, userID uuid.UUID, filter ledger.Filter) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("transactions.user_id = ?", userID)

	if filter.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *filter.AccountID)
	}

	if filter.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *filter.CategoryID)
	}

	if filter.Kind != "" {
		query = query.Where("transactions.kind = ?", filter.Kind)
	}

	return FilterRange(query, "transactions.date", filter.Range)
}

// FilterRange restricts the query to rows whose date column lies within r.
// Both bounds are inclusive.
func FilterRange(query *gorm.DB, column string, r ledger.Range) *gorm.DB {
	if !r.From.IsZero() {
		query = query.Where(column+" >= ?", r.From)
	}

	if !r.To.IsZero() {
		query = query.Where(column+" <= ?", r.To)
	}

	return query
}
