package models

import (
	"github.com/cashbook/backend/internal/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category classifies transactions and scopes budgets.
type Category struct {
	DefaultModel
	User   User        `json:"-"`
	UserID uuid.UUID   `json:"-" gorm:"index"`
	Name   string      `json:"name" example:"Groceries"`            // Name of the category
	Kind   ledger.Kind `json:"kind" gorm:"index" example:"EXPENSE"` // INCOME or EXPENSE
}

var ErrCategoryNameEmpty = ledger.Invalid("the category name must not be empty")

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = normalize(c.Name)
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if !c.Kind.Valid() {
		return ledger.ErrInvalidKind
	}

	return checkUser(tx, c.UserID)
}

// ownedCategory verifies that the category exists and belongs to the user.
func ownedCategory(tx *gorm.DB, userID, id uuid.UUID) error {
	return tx.Where(&Category{UserID: userID}).First(&Category{}, id).Error
}
