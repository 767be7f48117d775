// Package auth hashes passwords, issues tokens and resolves the user
// a request is made for.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum number of characters a password must have.
const MinPasswordLength = 6

var (
	ErrPasswordTooShort   = ledger.Invalid(fmt.Sprintf("the password must be at least %d characters long", MinPasswordLength))
	ErrInvalidCredentials = errors.New("the email address or password is wrong")
	ErrUnauthenticated    = errors.New("you need to log in to access this resource")
	ErrInvalidToken       = errors.New("the token is invalid or expired, please log in again")
)

// Claims is the payload of a token.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Guard issues and verifies tokens and hashes passwords.
type Guard struct {
	secret []byte
	ttl    time.Duration
	cost   int
}

func NewGuard(secret string, ttl time.Duration, cost int) *Guard {
	return &Guard{
		secret: []byte(secret),
		ttl:    ttl,
		cost:   cost,
	}
}

// HashPassword returns the bcrypt hash of the password.
func (g *Guard) HashPassword(password string) (string, error) {
	if len([]rune(password)) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return "", ledger.Invalid(err.Error())
	}

	return string(hash), nil
}

// CheckPassword verifies the password against the hash.
func (g *Guard) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}

// IssueToken returns a signed token for the user.
func (g *Guard) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// ParseToken verifies the token and returns the user ID it was issued for.
func (g *Guard) ParseToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.UserID, nil
}
