package v1

import (
	"fmt"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errBudgetAmountMissing = ledger.Invalid("the budget amount must be set")

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name        string           `json:"name" example:"Groceries March" default:""`                  // Name of the budget
	CategoryID  uuid.UUID        `json:"category_id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the expense category the budget limits
	Amount      *decimal.Decimal `json:"amount" example:"400.00" minimum:"0"`                        // The amount that may be spent in the period
	PeriodStart types.Date       `json:"period_start" example:"2024-03-01"`                          // First day of the period, inclusive
	PeriodEnd   types.Date       `json:"period_end" example:"2024-03-31"`                            // Last day of the period, inclusive
}

func (editable BudgetEditable) model(userID uuid.UUID) (models.Budget, error) {
	if editable.Amount == nil {
		return models.Budget{}, errBudgetAmountMissing
	}

	return models.Budget{
		UserID:      userID,
		Name:        editable.Name,
		CategoryID:  editable.CategoryID,
		Amount:      *editable.Amount,
		PeriodStart: editable.PeriodStart,
		PeriodEnd:   editable.PeriodEnd,
	}, nil
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                                                                  // The budget itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f&kind=EXPENSE&from=2024-03-01&to=2024-03-31"` // Expenses counted against the budget
}

// Budget is a budget with its consumption.
type Budget struct {
	ledger.BudgetConsumption
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, consumption ledger.BudgetConsumption) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		BudgetConsumption: consumption,
		Links: BudgetLinks{
			Self:         fmt.Sprintf("%s/v1/budgets/%s", url, consumption.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s&kind=%s&from=%s&to=%s", url, consumption.CategoryID, ledger.Expense, consumption.PeriodStart, consumption.PeriodEnd),
		},
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                          // List of budgets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of created Budgets
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
