package models_test

import (
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Name: "  Ada ", Email: "  Ada@Example.COM "})

	var saved models.User
	suite.Require().Nil(models.DB.First(&saved, user.ID).Error)
	suite.Assert().Equal("ada@example.com", saved.Email)
	suite.Assert().Equal("Ada", saved.Name)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser(models.User{Email: "ada@example.com"})

	err := models.DB.Create(&models.User{Email: "ADA@example.com"}).Error
	suite.Assert().ErrorIs(err, models.ErrEmailInUse)
	suite.Assert().ErrorIs(err, ledger.ErrValidation)
}

func (suite *TestSuiteStandard) TestUserEmailEmpty() {
	err := models.DB.Create(&models.User{Email: "   "}).Error
	suite.Assert().ErrorIs(err, models.ErrEmailEmpty)
}
