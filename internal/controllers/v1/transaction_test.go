package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/cashbook/backend/internal/controllers/v1"
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Wallet"})
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})
	description := "  Lunch "

	tr := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		AccountID:   account.Data.ID,
		CategoryID:  &category.Data.ID,
		Kind:        "expense",
		Amount:      d("12.40"),
		Date:        date("2024-03-02"),
		Description: &description,
	})

	suite.Assert().Equal(ledger.Expense, tr.Data.Kind)
	suite.Assert().Equal("Wallet", tr.Data.AccountName)
	suite.Require().NotNil(tr.Data.CategoryName)
	suite.Assert().Equal("Food", *tr.Data.CategoryName)
	suite.Assert().Equal("Lunch", *tr.Data.Description)
	suite.Assert().Equal("2024-03-02", tr.Data.Date.String())
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/transactions/%s", tr.Data.ID), tr.Data.Links.Self)

	// Transactions without a category have no category name
	uncategorized := suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.Data.ID, Amount: d("1")})
	suite.Assert().Nil(uncategorized.Data.CategoryID)
	suite.Assert().Nil(uncategorized.Data.CategoryName)
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	other := suite.register(suite.T(), v1.Registration{})
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Foreign", Kind: ledger.Expense}}, bearer(other.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var foreign v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &foreign)
	foreignCategory := foreign.Data[0].Data.ID

	unknown := uuid.New()

	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		status      int
	}{
		{"Negative amount", v1.TransactionEditable{AccountID: account.Data.ID, Amount: d("-1")}, http.StatusBadRequest},
		{"Invalid kind", v1.TransactionEditable{AccountID: account.Data.ID, Kind: "TRANSFER", Amount: d("1")}, http.StatusBadRequest},
		{"Unknown account", v1.TransactionEditable{AccountID: unknown, Amount: d("1")}, http.StatusNotFound},
		{"Unknown category", v1.TransactionEditable{AccountID: account.Data.ID, CategoryID: &unknown, Amount: d("1")}, http.StatusNotFound},
		{"Category of another user", v1.TransactionEditable{AccountID: account.Data.ID, CategoryID: &foreignCategory, Amount: d("1")}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.createTestTransaction(t, tt.transaction, tt.status)
		})
	}

	// Missing date
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", fmt.Sprintf(`[{ "account_id": "%s", "kind": "EXPENSE", "amount": "1" }]`, account.Data.ID), suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ErrTransactionDateMissing.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	checking := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
	cash := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Cash"})
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: checking.Data.ID, Kind: ledger.Income, Amount: d("2000"), Date: date("2024-03-01")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: checking.Data.ID, CategoryID: &food.Data.ID, Amount: d("30"), Date: date("2024-03-10")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: cash.Data.ID, CategoryID: &food.Data.ID, Amount: d("12"), Date: date("2024-03-31")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: cash.Data.ID, Amount: d("5"), Date: date("2024-04-01")})

	tests := []struct {
		name    string
		query   string
		amounts []string
		total   int64
	}{
		{"All, newest first", "", []string{"5", "12", "30", "2000"}, 4},
		{"Range is inclusive", "?from=2024-03-10&to=2024-03-31", []string{"12", "30"}, 2},
		{"Open start", "?to=2024-03-10", []string{"30", "2000"}, 2},
		{"Account", fmt.Sprintf("?account=%s", cash.Data.ID), []string{"5", "12"}, 2},
		{"Category", fmt.Sprintf("?category=%s", food.Data.ID), []string{"12", "30"}, 2},
		{"Kind", "?kind=income", []string{"2000"}, 1},
		{"Limit", "?limit=2", []string{"5", "12"}, 4},
		{"Offset", "?offset=3", []string{"2000"}, 4},
		{"Limit zero", "?limit=0", []string{}, 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions"+tt.query, "", suite.auth())
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			amounts := make([]string, 0, len(response.Data))
			for _, tr := range response.Data {
				amounts = append(amounts, tr.Amount.String())
			}

			assert.Equal(t, tt.amounts, amounts)
			assert.Equal(t, tt.total, response.Pagination.Total)
			assert.Equal(t, len(tt.amounts), response.Pagination.Count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilterFails() {
	for _, query := range []string{"?from=2024-04-01&to=2024-03-01", "?from=yesterday", "?account=not-a-uuid", "?kind=TRANSFER"} {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions"+query, "", suite.auth())
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking"})
	other := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings"})
	tr := suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.Data.ID, Amount: d("10")})

	r := test.Request(suite.T(), http.MethodPatch, tr.Data.Links.Self, map[string]any{
		"account_id": other.Data.ID,
		"amount":     "25.5",
		"kind":       "income",
	}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Savings", updated.Data.AccountName)
	suite.Assert().Equal(ledger.Income, updated.Data.Kind)
	suite.Assert().True(updated.Data.Amount.Equal(d("25.5")))
	suite.Assert().Equal(tr.Data.Date, updated.Data.Date)

	r = test.Request(suite.T(), http.MethodPatch, tr.Data.Links.Self, `{ "amount": "-3" }`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, tr.Data.Links.Self, fmt.Sprintf(`{ "account_id": "%s" }`, uuid.New()), suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	tr := suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: d("10")})

	other := suite.register(suite.T(), v1.Registration{})
	r := test.Request(suite.T(), http.MethodDelete, tr.Data.Links.Self, "", bearer(other.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, tr.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, tr.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
