package v1

import (
	"fmt"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name           string          `json:"name" example:"Checking account" default:""` // Name of the account
	InitialBalance decimal.Decimal `json:"initial_balance" example:"1000.00"`          // Balance of the account before any transactions
}

func (editable AccountEditable) model(userID uuid.UUID) models.Account {
	return models.Account{
		UserID:         userID,
		Name:           editable.Name,
		InitialBalance: editable.InitialBalance,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions on this account
}

// Account is an account with its derived balance.
type Account struct {
	ledger.AccountBalance
	Links AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, balance ledger.AccountBalance) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		AccountBalance: balance,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, balance.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, balance.ID),
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of created Accounts
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
