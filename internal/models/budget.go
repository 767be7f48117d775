package models

import (
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending limit for one expense category over a period.
type Budget struct {
	DefaultModel
	User        User      `json:"-"`
	UserID      uuid.UUID `gorm:"index"`
	Category    Category  `json:"-"`
	CategoryID  uuid.UUID `gorm:"index"`
	Name        string
	Amount      decimal.Decimal `gorm:"type:TEXT"`
	PeriodStart types.Date
	PeriodEnd   types.Date
}

var (
	ErrBudgetNameEmpty       = ledger.Invalid("the budget name must not be empty")
	ErrBudgetCategoryMissing = ledger.Invalid("the budget must have a category")
	ErrBudgetAmountNegative  = ledger.Invalid("the budget amount must not be negative")
	ErrBudgetPeriodMissing   = ledger.Invalid("the budget period must have a start and an end date")
	ErrBudgetPeriodInverted  = ledger.Invalid("the budget period must not end before it starts")
)

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = normalize(b.Name)
	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	switch {
	case b.Name == "":
		return ErrBudgetNameEmpty
	case b.CategoryID == uuid.Nil:
		return ErrBudgetCategoryMissing
	case b.Amount.IsNegative():
		return ErrBudgetAmountNegative
	case b.PeriodStart.IsZero() || b.PeriodEnd.IsZero():
		return ErrBudgetPeriodMissing
	case b.Period().Inverted():
		return ErrBudgetPeriodInverted
	}

	err := checkUser(tx, b.UserID)
	if err != nil {
		return err
	}

	return ownedCategory(tx, b.UserID, b.CategoryID)
}

// Period returns the period the budget covers.
func (b Budget) Period() ledger.Range {
	return ledger.Range{From: b.PeriodStart, To: b.PeriodEnd}
}

// Record returns the budget as the ledger sees it.
func (b Budget) Record() ledger.Budget {
	return ledger.Budget{
		ID:           b.ID,
		Name:         b.Name,
		Amount:       b.Amount,
		CategoryID:   b.CategoryID,
		CategoryName: b.Category.Name,
		PeriodStart:  b.PeriodStart,
		PeriodEnd:    b.PeriodEnd,
		CreatedAt:    b.CreatedAt,
	}
}
