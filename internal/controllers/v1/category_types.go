package v1

import (
	"fmt"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name string      `json:"name" example:"Groceries" default:""` // Name of the category
	Kind ledger.Kind `json:"kind" example:"EXPENSE"`              // INCOME or EXPENSE, case-insensitive
}

func (editable CategoryEditable) model(userID uuid.UUID) (models.Category, error) {
	kind, err := ledger.ParseKind(string(editable.Kind))
	if err != nil {
		return models.Category{}, err
	}

	return models.Category{
		UserID: userID,
		Name:   editable.Name,
		Kind:   kind,
	}, nil
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions in this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name: model.Name,
			Kind: model.Kind,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of Categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Kind string `form:"kind"` // By kind. If no category has this kind, all categories are returned
}
