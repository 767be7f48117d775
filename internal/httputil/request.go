package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// GetURLFields returns the names of all fields of the filter whose
// query parameter is set in the URL, even if it is set to an empty value.
//
// This allows handling zero values, e.g. "?limit=0", differently from
// parameters that are not set at all.
func GetURLFields(url *url.URL, filter any) []string {
	var setFields []string

	query := url.Query()
	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		if query.Has(field.Tag.Get("form")) {
			setFields = append(setFields, field.Name)
		}
	}

	return setFields
}

// GetBodyFields returns the field names of the resource passed in.
// Only names of fields which are set in the body are returned.
//
// As gorm uses interface{} as type for the Select statement, the
// names are returned as []any.
//
// This function reads and copies the request body, it must always
// be called before any of gin's c.*Bind methods.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	// Copy the body to be able to use it multiple times
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	// Parse the body into a map to have all fields available
	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return []any{}, ErrInvalidBody
	}

	var bodyFields []any
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)

		// Strip options like omitempty
		param, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if _, ok := mapBody[param]; ok {
			bodyFields = append(bodyFields, field.Name)
		}
	}

	return bodyFields, nil
}
