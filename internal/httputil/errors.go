package httputil

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error
}

// AbortWithError aborts the request and responds with the error message.
func AbortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error: err.Error(),
	})
}
