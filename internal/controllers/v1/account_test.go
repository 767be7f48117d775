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

// TestAccountsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Contains(*response.Error, models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestAccountsOptions() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		url    string
		status int
		allow  string
	}{
		{"List", "http://example.com/v1/accounts", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Detail", a.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Not found", "http://example.com/v1/accounts/" + uuid.NewString(), http.StatusNotFound, ""},
		{"Invalid ID", "http://example.com/v1/accounts/not-a-uuid", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.url, "", suite.auth())
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "  Checking ", InitialBalance: d("1000.50")})

	suite.Assert().Equal("Checking", a.Data.Name)
	suite.Assert().True(a.Data.InitialBalance.Equal(d("1000.50")))
	suite.Assert().True(a.Data.CurrentBalance.Equal(d("1000.50")))
	suite.Assert().True(a.Data.TransactionsTotal.IsZero())
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/accounts/%s", a.Data.ID), a.Data.Links.Self)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/transactions?account=%s", a.Data.ID), a.Data.Links.Transactions)
}

func (suite *TestSuiteStandard) TestAccountsCreateFails() {
	// Empty names are rejected
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{{Name: "Valid"}, {Name: "   "}}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AccountCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Valid", response.Data[0].Data.Name)
	suite.Assert().Equal(models.ErrAccountNameEmpty.Error(), *response.Data[1].Error)

	// Broken body
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", `[{ "name": 2 }]`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsGet() {
	checking := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", InitialBalance: d("1000")})
	savings := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", InitialBalance: d("50")})

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: checking.Data.ID, Kind: ledger.Income, Amount: d("2000")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: checking.Data.ID, Kind: ledger.Expense, Amount: d("450.25")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: savings.Data.ID, Kind: ledger.Expense, Amount: d("70")})

	// Accounts of other users are not visible
	other := suite.register(suite.T(), v1.Registration{})
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{{Name: "Foreign"}}, bearer(other.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Checking", response.Data[0].Name)
	suite.Assert().True(response.Data[0].TransactionsTotal.Equal(d("1549.75")), response.Data[0].TransactionsTotal.String())
	suite.Assert().True(response.Data[0].CurrentBalance.Equal(d("2549.75")), response.Data[0].CurrentBalance.String())
	suite.Assert().Equal("Savings", response.Data[1].Name)
	suite.Assert().True(response.Data[1].CurrentBalance.Equal(d("-20")), response.Data[1].CurrentBalance.String())

	r = test.Request(suite.T(), http.MethodGet, savings.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var account v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &account)
	suite.Assert().True(account.Data.CurrentBalance.Equal(d("-20")))
}

// TestAccountsLargeAmounts verifies that amounts with more significant
// digits than a float64 holds are returned unchanged.
func (suite *TestSuiteStandard) TestAccountsLargeAmounts() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{InitialBalance: d("100000000000.00000001")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.Data.ID, Kind: ledger.Income, Amount: d("123456789012.34567891")})

	r := test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.InitialBalance.Equal(d("100000000000.00000001")), response.Data.InitialBalance.String())
	suite.Assert().True(response.Data.TransactionsTotal.Equal(d("123456789012.34567891")), response.Data.TransactionsTotal.String())
	suite.Assert().True(response.Data.CurrentBalance.Equal(d("223456789012.34567892")), response.Data.CurrentBalance.String())

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/summary", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summary v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &summary)
	suite.Assert().True(summary.Data.TotalIncome.Equal(d("123456789012.34567891")), summary.Data.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestAccountsGetForeign() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	other := suite.register(suite.T(), v1.Registration{})

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		suite.T().Run(method, func(t *testing.T) {
			r := test.Request(t, method, a.Data.Links.Self, `{ "name": "Mine now" }`, bearer(other.Token))
			test.AssertHTTPStatus(t, &r, http.StatusNotFound)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, a.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Old", InitialBalance: d("10")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Kind: ledger.Income, Amount: d("5")})

	r := test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, map[string]any{
		"name":            "New",
		"initial_balance": "100",
	}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("New", updated.Data.Name)
	suite.Assert().True(updated.Data.CurrentBalance.Equal(d("105")), updated.Data.CurrentBalance.String())

	// Fields that are not sent are not changed, even to their zero value
	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "name": "Newer" }`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Newer", updated.Data.Name)
	suite.Assert().True(updated.Data.InitialBalance.Equal(d("100")))

	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "name": "" }`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "name": 2 }`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsDelete() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, a.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsDeleteWithTransactions() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Amount: d("1")})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Amount: d("2")})

	r := test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("account has 2 transaction(s); remove or reassign them first", response.Error)

	// Nothing was deleted
	r = test.Request(suite.T(), http.MethodGet, a.Data.Links.Self, "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
