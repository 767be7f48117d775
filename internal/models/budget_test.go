package models_test

import (
	"testing"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetCreateValidation() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: user.ID})
	start, end := types.NewDate(2024, 3, 1), types.NewDate(2024, 3, 31)

	tests := []struct {
		name   string
		budget models.Budget
		err    error
	}{
		{"Empty name", models.Budget{UserID: user.ID, Name: " ", CategoryID: category.ID, Amount: d("1"), PeriodStart: start, PeriodEnd: end}, models.ErrBudgetNameEmpty},
		{"Missing category", models.Budget{UserID: user.ID, Name: "Food", Amount: d("1"), PeriodStart: start, PeriodEnd: end}, models.ErrBudgetCategoryMissing},
		{"Negative amount", models.Budget{UserID: user.ID, Name: "Food", CategoryID: category.ID, Amount: d("-1"), PeriodStart: start, PeriodEnd: end}, models.ErrBudgetAmountNegative},
		{"Missing period end", models.Budget{UserID: user.ID, Name: "Food", CategoryID: category.ID, Amount: d("1"), PeriodStart: start}, models.ErrBudgetPeriodMissing},
		{"Inverted period", models.Budget{UserID: user.ID, Name: "Food", CategoryID: category.ID, Amount: d("1"), PeriodStart: end, PeriodEnd: start}, models.ErrBudgetPeriodInverted},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.budget).Error
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetSingleDayPeriod() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: user.ID})
	day := types.NewDate(2024, 3, 1)

	budget := suite.createTestBudget(models.Budget{UserID: user.ID, CategoryID: category.ID, Amount: d("5"), PeriodStart: day, PeriodEnd: day})
	suite.Assert().Equal(day, budget.PeriodEnd)
}

func (suite *TestSuiteStandard) TestBudgetCategoryOwnership() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	foreign := suite.createTestCategory(models.Category{UserID: other.ID})

	for _, id := range []uuid.UUID{foreign.ID, uuid.New()} {
		err := models.DB.Create(&models.Budget{
			UserID:      user.ID,
			Name:        "Food",
			CategoryID:  id,
			Amount:      d("100"),
			PeriodStart: types.NewDate(2024, 3, 1),
			PeriodEnd:   types.NewDate(2024, 3, 31),
		}).Error
		suite.Assert().ErrorIs(err, ledger.ErrNotFound)
	}
}
