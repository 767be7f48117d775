package v1

import (
	"net/http"

	"github.com/cashbook/backend/internal/auth"
	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudgets)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Security		BearerAuth
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = scoped(c).First(&models.Budget{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create budget
// @Description	Creates new budgets
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		404		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Security		BearerAuth
// @Router			/v1/budgets [post]
func CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetCreateResponse{}
	userID := auth.UserID(c)

	for _, editable := range editables {
		budget, err := editable.model(userID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.WithContext(c).Create(&budget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		consumption, err := engine().Budget(c, userID, budget.ID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBudget(c, consumption)
		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get budgets
// @Description	Returns all budgets with what has been spent in their period, most recent period first
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Security		BearerAuth
// @Router			/v1/budgets [get]
func GetBudgets(c *gin.Context) {
	consumptions, err := engine().Budgets(c, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Budget, 0, len(consumptions))
	for _, consumption := range consumptions {
		data = append(data, newBudget(c, consumption))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// @Summary		Get budget
// @Description	Returns a specific budget with what has been spent in its period
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	consumption, err := engine().Budget(c, auth.UserID(c), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, consumption)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}
