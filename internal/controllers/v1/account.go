package v1

import (
	"net/http"

	"github.com/cashbook/backend/internal/auth"
	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccounts)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Security		BearerAuth
// @Router			/v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = scoped(c).First(&models.Account{}, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create accounts
// @Description	Creates new accounts
// @Tags			Accounts
// @Produce		json
// @Success		201			{object}	AccountCreateResponse
// @Failure		400			{object}	AccountCreateResponse
// @Failure		500			{object}	AccountCreateResponse
// @Param			accounts	body		[]AccountEditable	true	"Accounts"
// @Security		BearerAuth
// @Router			/v1/accounts [post]
func CreateAccounts(c *gin.Context) {
	var editables []AccountEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AccountCreateResponse{}
	userID := auth.UserID(c)

	for _, editable := range editables {
		account := editable.model(userID)

		err = models.DB.WithContext(c).Create(&account).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		balance, err := engine().Balance(c, userID, account.ID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newAccount(c, balance)
		r.Data = append(r.Data, AccountResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get accounts
// @Description	Returns all accounts with their current balance, in the order they were created
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Security		BearerAuth
// @Router			/v1/accounts [get]
func GetAccounts(c *gin.Context) {
	balances, err := engine().Balances(c, auth.UserID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Account, 0, len(balances))
	for _, balance := range balances {
		data = append(data, newAccount(c, balance))
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// @Summary		Get account
// @Description	Returns a specific account with its current balance
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Failure		500	{object}	AccountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	balance, err := engine().Balance(c, auth.UserID(c), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	data := newAccount(c, balance)
	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Update account
// @Description	Updates an account. Only values to be updated need to be specified.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			account	body		AccountEditable	true	"Account"
// @Security		BearerAuth
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = scoped(c).First(&account, uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	var data AccountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	// Name and initial balance are written in one statement
	err = models.DB.WithContext(c).Model(&account).Select("", updateFields...).Updates(data.model(account.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	balance, err := engine().Balance(c, account.UserID, account.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	r := newAccount(c, balance)
	c.JSON(http.StatusOK, AccountResponse{Data: &r})
}

// @Summary		Delete account
// @Description	Deletes an account. Accounts with transactions cannot be deleted, remove or reassign the transactions first.
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = engine().DeleteAccount(c, auth.UserID(c), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
