package version

import (
	"net/http"

	"github.com/cashbook/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// apiVersion is the cashbook build reported by /version.
var apiVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version string `json:"version" example:"1.4.2"` // Cashbook build, injected through -ldflags on release
}

// RegisterRoutes serves the given build version.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	apiVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Cashbook version
// @Description	Returns the build version of the running cashbook backend
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Data: Object{
			Version: apiVersion,
		},
	})
}
