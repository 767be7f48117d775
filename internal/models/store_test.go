package models_test

import (
	"context"
	"errors"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestStoreEntriesFilter() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	cash := suite.createTestAccount(models.Account{UserID: user.ID})
	bank := suite.createTestAccount(models.Account{UserID: user.ID})
	foreign := suite.createTestAccount(models.Account{UserID: other.ID})
	food := suite.createTestCategory(models.Category{UserID: user.ID})

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: cash.ID, Amount: d("1"), Date: types.NewDate(2024, 2, 29)})
	first := suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: cash.ID, CategoryID: &food.ID, Amount: d("2"), Date: types.NewDate(2024, 3, 1)})
	last := suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: bank.ID, Kind: ledger.Income, Amount: d("3"), Date: types.NewDate(2024, 3, 31)})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: bank.ID, Amount: d("4"), Date: types.NewDate(2024, 4, 1)})
	_ = suite.createTestTransaction(models.Transaction{UserID: other.ID, AccountID: foreign.ID, Amount: d("5"), Date: types.NewDate(2024, 3, 15)})

	store := models.NewStore(models.DB)
	march := ledger.Range{From: types.NewDate(2024, 3, 1), To: types.NewDate(2024, 3, 31)}

	entries, err := store.Entries(context.Background(), user.ID, ledger.Filter{Range: march})
	suite.Require().Nil(err)
	suite.Require().Len(entries, 2)
	suite.Assert().Equal(first.ID, entries[0].ID)
	suite.Assert().Equal(last.ID, entries[1].ID)

	entries, err = store.Entries(context.Background(), user.ID, ledger.Filter{CategoryID: &food.ID})
	suite.Require().Nil(err)
	suite.Require().Len(entries, 1)
	suite.Assert().Equal(first.ID, entries[0].ID)

	entries, err = store.Entries(context.Background(), user.ID, ledger.Filter{AccountID: &bank.ID, Kind: ledger.Expense})
	suite.Require().Nil(err)
	suite.Require().Len(entries, 1)
	suite.Assert().True(entries[0].Amount.Equal(d("4")))

	count, err := store.CountEntries(context.Background(), user.ID, ledger.Filter{})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(4), count)
}

func (suite *TestSuiteStandard) TestStoreSumDecimal() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	for range 10 {
		_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Amount: d("0.1")})
	}

	totals, err := models.NewStore(models.DB).Sum(context.Background(), user.ID, ledger.Filter{Kind: ledger.Expense}, ledger.GroupNone)
	suite.Require().Nil(err)
	suite.Require().Len(totals, 1)
	suite.Assert().True(totals[0].Total.Equal(d("1")), totals[0].Total.String())
}

func (suite *TestSuiteStandard) TestStoreSumGroupedByCategory() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	food := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Food"})
	rent := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Rent"})

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, CategoryID: &food.ID, Amount: d("20")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, CategoryID: &food.ID, Amount: d("5.5")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, CategoryID: &rent.ID, Amount: d("700")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Amount: d("3")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Kind: ledger.Income, CategoryID: &food.ID, Amount: d("1000")})

	totals, err := models.NewStore(models.DB).Sum(context.Background(), user.ID, ledger.Filter{Kind: ledger.Expense}, ledger.GroupCategory)
	suite.Require().Nil(err)
	suite.Require().Len(totals, 3)

	byName := make(map[string]string)
	for _, t := range totals {
		name := "<nil>"
		if t.Name != nil {
			name = *t.Name
			suite.Require().NotNil(t.Key)
		} else {
			suite.Assert().Nil(t.Key)
		}
		byName[name] = t.Total.String()
	}

	suite.Assert().Equal(map[string]string{"Food": "25.5", "Rent": "700", "<nil>": "3"}, byName)
}

func (suite *TestSuiteStandard) TestStoreSumGroupedByAccount() {
	user := suite.createTestUser(models.User{})
	cash := suite.createTestAccount(models.Account{UserID: user.ID, Name: "Cash"})
	bank := suite.createTestAccount(models.Account{UserID: user.ID, Name: "Bank"})

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: cash.ID, Kind: ledger.Income, Amount: d("10")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: bank.ID, Kind: ledger.Income, Amount: d("1")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: cash.ID, Kind: ledger.Income, Amount: d("2")})

	totals, err := models.NewStore(models.DB).Sum(context.Background(), user.ID, ledger.Filter{Kind: ledger.Income}, ledger.GroupAccount)
	suite.Require().Nil(err)
	suite.Require().Len(totals, 2)
	suite.Assert().Equal(cash.ID, *totals[0].Key)
	suite.Assert().Equal("Cash", *totals[0].Name)
	suite.Assert().True(totals[0].Total.Equal(d("12")))
	suite.Assert().Equal(bank.ID, *totals[1].Key)
	suite.Assert().True(totals[1].Total.Equal(d("1")))
}

func (suite *TestSuiteStandard) TestStoreBudgetsWithCategoryName() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Food"})
	budget := suite.createTestBudget(models.Budget{UserID: user.ID, CategoryID: category.ID, Amount: d("400"), PeriodStart: types.NewDate(2024, 3, 1), PeriodEnd: types.NewDate(2024, 3, 31)})

	budgets, err := models.NewStore(models.DB).Budgets(context.Background(), user.ID)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal(budget.ID, budgets[0].ID)
	suite.Assert().Equal("Food", budgets[0].CategoryName)
	suite.Assert().Equal(types.NewDate(2024, 3, 31), budgets[0].PeriodEnd)
}

func (suite *TestSuiteStandard) TestStoreDeleteAccount() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	store := models.NewStore(models.DB)

	err := store.DeleteAccount(context.Background(), other.ID, account.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)

	err = store.DeleteAccount(context.Background(), user.ID, account.ID)
	suite.Require().Nil(err)

	err = store.DeleteAccount(context.Background(), user.ID, account.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}

// The foreign key rejects deletions that bypass the engine's check.
func (suite *TestSuiteStandard) TestStoreDeleteReferencedAccount() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Amount: d("1")})

	err := models.NewStore(models.DB).DeleteAccount(context.Background(), user.ID, account.ID)
	suite.Assert().ErrorIs(err, models.ErrStillReferenced)
	suite.Assert().ErrorIs(err, ledger.ErrConflict)
}

func (suite *TestSuiteStandard) TestStoreAtomicRollback() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	store := models.NewStore(models.DB)
	errAbort := errors.New("abort")

	err := store.Atomic(context.Background(), func(s ledger.Store) error {
		if err := s.DeleteAccount(context.Background(), user.ID, account.ID); err != nil {
			return err
		}
		return errAbort
	})
	suite.Assert().ErrorIs(err, errAbort)

	accounts, err := store.Accounts(context.Background(), user.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(accounts, 1)
}

func (suite *TestSuiteStandard) TestStoreEngineDeleteGuard() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	transaction := suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Amount: d("1")})
	engine := ledger.New(models.NewStore(models.DB))

	err := engine.DeleteAccount(context.Background(), user.ID, account.ID)
	var conflict *ledger.ConflictError
	suite.Require().ErrorAs(err, &conflict)
	suite.Assert().Equal(int64(1), conflict.Transactions)

	suite.Require().Nil(models.DB.Delete(&transaction).Error)
	suite.Require().Nil(engine.DeleteAccount(context.Background(), user.ID, account.ID))

	err = engine.DeleteAccount(context.Background(), user.ID, account.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}

func (suite *TestSuiteStandard) TestStoreEngineBalances() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: d("1000")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Kind: ledger.Income, Amount: d("500")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, Kind: ledger.Expense, Amount: d("200")})

	balances, err := ledger.New(models.NewStore(models.DB)).Balances(context.Background(), user.ID)
	suite.Require().Nil(err)
	suite.Require().Len(balances, 1)
	suite.Assert().True(balances[0].TransactionsTotal.Equal(d("300")), balances[0].TransactionsTotal.String())
	suite.Assert().True(balances[0].CurrentBalance.Equal(d("1300")), balances[0].CurrentBalance.String())
}

func (suite *TestSuiteStandard) TestStoreAmountsKeepPrecision() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID, InitialBalance: d("99999999999.99999999")})
	category := suite.createTestCategory(models.Category{UserID: user.ID})
	transaction := suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, CategoryID: &category.ID, Amount: d("123456789012.34567891")})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, AccountID: account.ID, CategoryID: &category.ID, Amount: d("0.00000009")})

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, transaction.ID).Error)
	suite.Assert().Equal("123456789012.34567891", stored.Amount.String())

	var storedAccount models.Account
	suite.Require().Nil(models.DB.First(&storedAccount, account.ID).Error)
	suite.Assert().Equal("99999999999.99999999", storedAccount.InitialBalance.String())

	totals, err := models.NewStore(models.DB).Sum(context.Background(), user.ID, ledger.Filter{Kind: ledger.Expense}, ledger.GroupCategory)
	suite.Require().Nil(err)
	suite.Require().Len(totals, 1)
	suite.Assert().True(totals[0].Total.Equal(d("123456789012.345679")), totals[0].Total.String())
}

func (suite *TestSuiteStandard) TestStoreUnavailable() {
	store := models.NewStore(models.DB)
	suite.CloseDB()

	userID := uuid.New()

	_, err := store.Accounts(context.Background(), userID)
	suite.Assert().ErrorIs(err, ledger.ErrUnavailable)

	_, err = store.Sum(context.Background(), userID, ledger.Filter{}, ledger.GroupCategory)
	suite.Assert().ErrorIs(err, ledger.ErrUnavailable)

	_, err = store.CountEntries(context.Background(), userID, ledger.Filter{})
	suite.Assert().ErrorIs(err, ledger.ErrUnavailable)

	err = store.DeleteAccount(context.Background(), userID, uuid.New())
	suite.Assert().ErrorIs(err, ledger.ErrUnavailable)
}
