package models

import (
	"github.com/cashbook/backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a place money is held, e.g. a bank account or a wallet.
type Account struct {
	DefaultModel
	User           User            `json:"-"`
	UserID         uuid.UUID       `json:"-" gorm:"index"`
	Name           string          `json:"name" example:"Checking account"`           // Name of the account
	InitialBalance decimal.Decimal `json:"initial_balance" gorm:"type:TEXT"` // Balance before the first transaction
}

var ErrAccountNameEmpty = ledger.Invalid("the account name must not be empty")

// BeforeSave trims whitespace from the name.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = normalize(a.Name)
	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	return checkUser(tx, a.UserID)
}

// BeforeUpdate verifies the state of the account before
// committing an update to the database.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := dest[Account](tx)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Name") {
		name := normalize(toSave.Name)
		if name == "" {
			return ErrAccountNameEmpty
		}
		tx.Statement.SetColumn("Name", name)
	}

	return nil
}

// Record returns the account as the ledger sees it.
func (a Account) Record() ledger.Account {
	return ledger.Account{
		ID:             a.ID,
		Name:           a.Name,
		InitialBalance: a.InitialBalance,
		CreatedAt:      a.CreatedAt,
	}
}
