package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/cashbook/backend/internal/controllers/v1"
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/types"
	"github.com/cashbook/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) types.Date {
	parsed, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}

	return parsed
}

func (suite *TestSuiteStandard) createTestAccount(t *testing.T, a v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if a.Name == "" {
		a.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.AccountEditable{a}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", body, suite.auth())
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var account v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &account)

	if r.Code == http.StatusCreated {
		return account.Data[0]
	}

	return v1.AccountResponse{}
}

func (suite *TestSuiteStandard) createTestCategory(t *testing.T, c v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if c.Kind == "" {
		c.Kind = ledger.Expense
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CategoryEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", body, suite.auth())
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var category v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &category)

	if r.Code == http.StatusCreated {
		return category.Data[0]
	}

	return v1.CategoryResponse{}
}

func (suite *TestSuiteStandard) createTestTransaction(t *testing.T, c v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if c.AccountID == uuid.Nil {
		c.AccountID = suite.createTestAccount(t, v1.AccountEditable{}).Data.ID
	}

	if c.Kind == "" {
		c.Kind = ledger.Expense
	}

	if c.Date.IsZero() {
		c.Date = date("2024-03-15")
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.TransactionEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", body, suite.auth())
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &transaction)

	if r.Code == http.StatusCreated {
		return transaction.Data[0]
	}

	return v1.TransactionResponse{}
}

func (suite *TestSuiteStandard) createTestBudget(t *testing.T, b v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if b.Name == "" {
		b.Name = uuid.NewString()
	}

	if b.CategoryID == uuid.Nil {
		b.CategoryID = suite.createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}

	if b.Amount == nil {
		amount := d("400")
		b.Amount = &amount
	}

	if b.PeriodStart.IsZero() {
		b.PeriodStart = date("2024-03-01")
	}

	if b.PeriodEnd.IsZero() {
		b.PeriodEnd = date("2024-03-31")
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BudgetEditable{b}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", body, suite.auth())
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var budget v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &budget)

	if r.Code == http.StatusCreated {
		return budget.Data[0]
	}

	return v1.BudgetResponse{}
}
