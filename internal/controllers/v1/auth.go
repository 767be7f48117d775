package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cashbook/backend/internal/auth"
	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Controller holds the dependencies of handlers that need more than the database.
type Controller struct {
	Guard *auth.Guard
}

// Registration is the request body for creating a user.
type Registration struct {
	Name     string `json:"name" example:"Ada Lovelace"`         // Display name
	Email    string `json:"email" example:"ada@example.com"`     // Email address, used to log in
	Password string `json:"password" example:"correct horse 42"` // At least six characters
}

// Credentials is the request body for logging in.
type Credentials struct {
	Email    string `json:"email" example:"ada@example.com"`     // Email address
	Password string `json:"password" example:"correct horse 42"` // Password
}

type Session struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.x"` // Bearer token for the Authorization header
	User  models.User `json:"user"`                                                       // The authenticated user
}

type SessionResponse struct {
	Data  *Session `json:"data"`                                                   // Token and user
	Error *string  `json:"error" example:"the email address or password is wrong"` // The error, if any occurred
}

type UserResponse struct {
	Data  *models.User `json:"data"`                                                       // The authenticated user
	Error *string      `json:"error" example:"you need to log in to access this resource"` // The error, if any occurred
}

// RegisterAuthRoutes registers the routes that issue tokens. They are
// reachable without authentication.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsAuth)
	r.POST("/register", co.Register)
	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", co.Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
// @Router			/v1/auth/login [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register
// @Description	Creates a user and returns a token for it
// @Tags			Auth
// @Produce		json
// @Success		201				{object}	SessionResponse
// @Failure		400				{object}	SessionResponse
// @Failure		500				{object}	SessionResponse
// @Param			registration	body		Registration	true	"Registration"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var registration Registration
	err := httputil.BindData(c, &registration)
	if err != nil {
		co.sessionError(c, err)
		return
	}

	hash, err := co.Guard.HashPassword(registration.Password)
	if err != nil {
		co.sessionError(c, err)
		return
	}

	user := models.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: hash,
	}

	err = models.DB.WithContext(c).Create(&user).Error
	if err != nil {
		co.sessionError(c, err)
		return
	}

	co.respondSession(c, http.StatusCreated, user)
}

// @Summary		Log in
// @Description	Returns a token for the user with the given credentials
// @Tags			Auth
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		co.sessionError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(credentials.Email))
	if email == "" {
		co.sessionError(c, auth.ErrInvalidCredentials)
		return
	}

	var user models.User
	err = models.DB.WithContext(c).Where(&models.User{Email: email}).First(&user).Error
	if errors.Is(err, ledger.ErrNotFound) {
		err = auth.ErrInvalidCredentials
	}
	if err != nil {
		co.sessionError(c, err)
		return
	}

	err = co.Guard.CheckPassword(user.PasswordHash, credentials.Password)
	if err != nil {
		co.sessionError(c, err)
		return
	}

	co.respondSession(c, http.StatusOK, user)
}

// @Summary		Current user
// @Description	Returns the user the token was issued for
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Security		BearerAuth
// @Router			/v1/auth/me [get]
func (co Controller) Me(c *gin.Context) {
	var user models.User
	err := models.DB.WithContext(c).First(&user, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &user})
}

func (co Controller) respondSession(c *gin.Context, code int, user models.User) {
	token, err := co.Guard.IssueToken(user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(code, SessionResponse{
		Data: &Session{
			Token: token,
			User:  user,
		},
	})
}

func (co Controller) sessionError(c *gin.Context, err error) {
	s := err.Error()
	c.JSON(status(err), SessionResponse{
		Error: &s,
	})
}
