package v1

import (
	"fmt"
	"strings"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/types"
	ez_uuid "github.com/cashbook/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	AccountID  uuid.UUID   `json:"account_id" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`  // ID of the account
	CategoryID *uuid.UUID  `json:"category_id" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category, if any
	Kind       ledger.Kind `json:"kind" example:"EXPENSE"`                                     // INCOME or EXPENSE, case-insensitive
	Date       types.Date  `json:"date" example:"2024-03-15"`                                  // Date of the transaction

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the transaction. The kind determines its sign

	Description *string `json:"description" example:"Lunch"` // A description
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:      userID,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Kind:        ledger.Kind(strings.ToUpper(strings.TrimSpace(string(editable.Kind)))),
		Amount:      editable.Amount,
		Description: editable.Description,
		Date:        editable.Date,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	AccountName  string           `json:"account_name" example:"Checking account"` // Name of the account
	CategoryName *string          `json:"category_name" example:"Groceries"`       // Name of the category, if any
	Links        TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource.
//
// The account and category of the model must be loaded.
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	var categoryName *string
	if model.Category != nil {
		categoryName = &model.Category.Name
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Kind:        model.Kind,
			Date:        model.Date,
			Amount:      model.Amount,
			Description: model.Description,
		},
		AccountName:  model.Account.Name,
		CategoryName: categoryName,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	QueryRange
	AccountID  ez_uuid.UUID `form:"account" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`  // By ID of the account
	CategoryID ez_uuid.UUID `form:"category" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // By ID of the category
	Kind       string       `form:"kind" example:"EXPENSE"`                                  // By kind
	Offset     uint         `form:"offset"`                                                  // The offset of the first Transaction returned. Defaults to 0.
	Limit      int          `form:"limit"`                                                   // Maximum number of transactions to return. Defaults to 50.
}

// filter returns the ledger filter for the query parameters.
func (f TransactionQueryFilter) filter() (ledger.Filter, error) {
	filter := ledger.Filter{
		AccountID:  f.AccountID.Ptr(),
		CategoryID: f.CategoryID.Ptr(),
		Range:      f.period(),
	}

	if f.Kind != "" {
		kind, err := ledger.ParseKind(f.Kind)
		if err != nil {
			return ledger.Filter{}, err
		}
		filter.Kind = kind
	}

	return filter, nil
}
