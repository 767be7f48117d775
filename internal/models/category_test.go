package models_test

import (
	"testing"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryValidation() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		name     string
		category models.Category
		err      error
	}{
		{"Empty name", models.Category{UserID: user.ID, Name: " ", Kind: ledger.Income}, models.ErrCategoryNameEmpty},
		{"Missing kind", models.Category{UserID: user.ID, Name: "Salary"}, ledger.ErrInvalidKind},
		{"Invalid kind", models.Category{UserID: user.ID, Name: "Salary", Kind: "TRANSFER"}, ledger.ErrInvalidKind},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.category).Error
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}
