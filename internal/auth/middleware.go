package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cashbook/backend/internal/httputil"
	"github.com/cashbook/backend/internal/ledger"
	"github.com/cashbook/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// contextUserID is the gin context key of the authenticated user's ID.
const contextUserID = "cashbook-user-id"

// Middleware rejects requests without a valid token and stores the ID of
// the authenticated user on the context.
//
// The token is read from the Authorization header and falls back to
// the "token" query parameter for clients that cannot set headers.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		scheme, value, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(value)
		}

		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			httputil.AbortWithError(c, http.StatusUnauthorized, ErrUnauthenticated)
			return
		}

		userID, err := g.ParseToken(token)
		if err != nil {
			httputil.AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		// Tokens of deleted users must not be accepted
		err = models.DB.WithContext(c).First(&models.User{}, userID).Error
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				httputil.AbortWithError(c, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			httputil.AbortWithError(c, http.StatusInternalServerError, err)
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}

// UserID returns the ID of the authenticated user.
//
// It must only be called in handlers behind Middleware.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(contextUserID).(uuid.UUID)
}
