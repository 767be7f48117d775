package v1

import (
	"errors"
	"net/http"

	"github.com/cashbook/backend/internal/auth"
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/types"
	ez_uuid "github.com/cashbook/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// QueryRange is an optional, inclusive date range.
type QueryRange struct {
	From types.Date `form:"from" example:"2024-03-01"` // First day of the range, inclusive
	To   types.Date `form:"to" example:"2024-03-31"`   // Last day of the range, inclusive
}

func (q QueryRange) period() ledger.Range {
	return ledger.Range{From: q.From, To: q.To}
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrUnavailable):
		return http.StatusInternalServerError
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// engine returns a ledger engine reading from the database.
func engine() *ledger.Engine {
	return ledger.New(models.NewStore(models.DB))
}

// scoped returns a query restricted to records of the authenticated user.
func scoped(c *gin.Context) *gorm.DB {
	return models.DB.WithContext(c).Where("user_id = ?", auth.UserID(c))
}
