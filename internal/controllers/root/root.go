package root

import (
	"net/http"

	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Response is the index of the cashbook API.
type Response struct {
	Links Links `json:"links"`
}

// Links are absolute when the API URL is configured.
type Links struct {
	Docs    string `json:"docs" example:"https://cashbook.example.com/docs/index.html"` // Interactive API documentation
	Healthz string `json:"healthz" example:"https://cashbook.example.com/healthz"`      // Database reachability check
	Version string `json:"version" example:"https://cashbook.example.com/version"`      // Running cashbook version
	Metrics string `json:"metrics" example:"https://cashbook.example.com/metrics"`      // Request counters and latencies
	V1      string `json:"v1" example:"https://cashbook.example.com/v1"`                // Ledger API: accounts, transactions, budgets, dashboard
}

// RegisterRoutes attaches the index to the API root.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		Cashbook API index
// @Description	Links to the documentation, health, version, metrics and the v1 ledger API
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
