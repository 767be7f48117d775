package models

import (
	"strings"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns all other records. Every query is scoped to one user.
type User struct {
	DefaultModel
	Name         string `json:"name" example:"Ada Lovelace"`
	Email        string `json:"email" gorm:"uniqueIndex" example:"ada@example.com"`
	PasswordHash string `json:"-"`
}

var (
	ErrEmailInUse = ledger.Invalid("a user with this email address already exists")
	ErrEmailEmpty = ledger.Invalid("the email address must not be empty")
)

// BeforeSave normalizes the name and the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = normalize(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	_ = u.DefaultModel.BeforeCreate(tx)

	if u.Email == "" {
		return ErrEmailEmpty
	}

	return nil
}

// checkUser verifies that the user exists.
func checkUser(tx *gorm.DB, id uuid.UUID) error {
	return tx.First(&User{}, id).Error
}
