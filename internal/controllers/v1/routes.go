package v1

import (
	"net/http"

	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
//
// Only the auth routes and the API description are reachable without a token.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetV1)
	r.OPTIONS("", OptionsV1)

	co.RegisterAuthRoutes(r.Group("/auth"))

	authenticated := r.Group("", co.Guard.Middleware())
	{
		authenticated.OPTIONS("/auth/me", OptionsMe)
		authenticated.GET("/auth/me", co.Me)
	}

	RegisterAccountRoutes(authenticated.Group("/accounts"))
	RegisterCategoryRoutes(authenticated.Group("/categories"))
	RegisterTransactionRoutes(authenticated.Group("/transactions"))
	RegisterBudgetRoutes(authenticated.Group("/budgets"))
	RegisterDashboardRoutes(authenticated.Group("/dashboard"))
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Register     string `json:"register" example:"https://example.com/api/v1/auth/register"`    // URL to register a user
	Login        string `json:"login" example:"https://example.com/api/v1/auth/login"`          // URL to log in
	Me           string `json:"me" example:"https://example.com/api/v1/auth/me"`                // URL of the authenticated user
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts"`         // URL of account collection endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // URL of category collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of transaction collection endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`           // URL of budget collection endpoint
	Summary      string `json:"summary" example:"https://example.com/api/v1/dashboard/summary"` // URL of the dashboard summary
	Daily        string `json:"daily" example:"https://example.com/api/v1/dashboard/daily"`     // URL of the daily totals
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Register:     url + "/auth/register",
			Login:        url + "/auth/login",
			Me:           url + "/auth/me",
			Accounts:     url + "/accounts",
			Categories:   url + "/categories",
			Transactions: url + "/transactions",
			Budgets:      url + "/budgets",
			Summary:      url + "/dashboard/summary",
			Daily:        url + "/dashboard/daily",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Security		BearerAuth
// @Router			/v1/auth/me [options]
func OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}
