package models

import (
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense on an account.
//
// Amounts are stored unsigned, the kind determines the sign.
type Transaction struct {
	DefaultModel
	User        User       `json:"-"`
	UserID      uuid.UUID  `gorm:"index"`
	Account     Account    `json:"-"`
	AccountID   uuid.UUID  `gorm:"index"`
	Category    *Category  `json:"-"`
	CategoryID  *uuid.UUID `gorm:"index"`
	Kind        ledger.Kind
	Amount      decimal.Decimal `gorm:"type:TEXT"`
	Description *string
	Date        types.Date `gorm:"index"`
}

var (
	ErrTransactionAmountNegative = ledger.Invalid("the transaction amount must not be negative")
	ErrTransactionDateMissing    = ledger.Invalid("the transaction date must be set")
)

// BeforeSave normalizes the description.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = normalizeOptional(t.Description)
	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	if !t.Kind.Valid() {
		return ledger.ErrInvalidKind
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if t.Date.IsZero() {
		return ErrTransactionDateMissing
	}

	return t.checkIntegrity(tx, t.UserID, t.AccountID, t.CategoryID)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := dest[Transaction](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Kind") && !toSave.Kind.Valid() {
		return ledger.ErrInvalidKind
	}

	if tx.Statement.Changed("Amount") && toSave.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if tx.Statement.Changed("Date") && toSave.Date.IsZero() {
		return ErrTransactionDateMissing
	}

	if tx.Statement.Changed("Description") {
		tx.Statement.SetColumn("Description", normalizeOptional(toSave.Description))
	}

	accountID := t.AccountID
	if tx.Statement.Changed("AccountID") {
		accountID = toSave.AccountID
	}

	var categoryID *uuid.UUID
	if tx.Statement.Changed("CategoryID") {
		categoryID = toSave.CategoryID
	}

	if tx.Statement.Changed("AccountID") || categoryID != nil {
		return t.checkIntegrity(tx, t.UserID, accountID, categoryID)
	}

	return nil
}

// checkIntegrity verifies that the referenced account and category
// belong to the owner of the transaction.
func (t *Transaction) checkIntegrity(tx *gorm.DB, userID, accountID uuid.UUID, categoryID *uuid.UUID) error {
	err := tx.Where(&Account{UserID: userID}).First(&Account{}, accountID).Error
	if err != nil {
		return err
	}

	if categoryID != nil {
		return ownedCategory(tx, userID, *categoryID)
	}

	return nil
}

// Entry returns the transaction as the ledger sees it.
func (t Transaction) Entry() ledger.Entry {
	return ledger.Entry{
		ID:         t.ID,
		AccountID:  t.AccountID,
		CategoryID: t.CategoryID,
		Kind:       t.Kind,
		Amount:     t.Amount,
		Date:       t.Date,
		CreatedAt:  t.CreatedAt,
	}
}
