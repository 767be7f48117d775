package v1

import (
	"net/http"
	"slices"

	"github.com/cashbook/backend/internal/auth"
	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/ledger"
	"github.com/gin-gonic/gin"
)

type SummaryResponse struct {
	Data  *ledger.Summary `json:"data"`                                      // The summary for the range
	Error *string         `json:"error" example:"from must not be after to"` // The error, if any occurred
}

type DailyResponse struct {
	Data  []ledger.DailyTotals `json:"data"`                                      // One element per day with transactions, oldest first
	Error *string              `json:"error" example:"from must not be after to"` // The error, if any occurred
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", OptionsDashboard)
	r.GET("/summary", GetSummary)
	r.OPTIONS("/daily", OptionsDashboard)
	r.GET("/daily", GetDaily)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Security		BearerAuth
// @Router			/v1/dashboard/summary [options]
// @Router			/v1/dashboard/daily [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get summary
// @Description	Returns income and expense totals and the expenses per category, largest first
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			from	query		string	false	"First day of the range, inclusive"
// @Param			to		query		string	false	"Last day of the range, inclusive"
// @Security		BearerAuth
// @Router			/v1/dashboard/summary [get]
func GetSummary(c *gin.Context) {
	var query QueryRange
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	summary, err := engine().Summary(c, auth.UserID(c), query.period())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

// @Summary		Get daily totals
// @Description	Returns income and expense totals per day. Days without transactions are omitted
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DailyResponse
// @Failure		400		{object}	DailyResponse
// @Failure		500		{object}	DailyResponse
// @Param			from	query		string	false	"First day of the range, inclusive"
// @Param			to		query		string	false	"Last day of the range, inclusive"
// @Security		BearerAuth
// @Router			/v1/dashboard/daily [get]
func GetDaily(c *gin.Context) {
	var query QueryRange
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DailyResponse{
			Error: &s,
		})
		return
	}

	days, err := engine().Daily(c, auth.UserID(c), query.period())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DailyResponse{
			Error: &s,
		})
		return
	}

	data := slices.Collect(days)
	if data == nil {
		data = []ledger.DailyTotals{}
	}

	c.JSON(http.StatusOK, DailyResponse{Data: data})
}
