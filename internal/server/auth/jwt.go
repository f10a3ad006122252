// Package auth issues and verifies the HS256 tokens handed out in the
// x-sgl-token header.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the user and, for scoped tokens, the userend the token was
// issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"userID"`
	UserEndID string `json:"userEndID,omitempty"`
}

// HasUserEnd reports whether the token is a scoped (userend) token.
func (c *Claims) HasUserEnd() bool {
	return c.UserEndID != ""
}

// GenerateToken issues a session token for userID.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return sign(Claims{UserID: userID}, secretKey, validityDuration)
}

// GenerateUserEndToken issues a scoped token bound to userEndID.
func GenerateUserEndToken(userID, userEndID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return sign(Claims{UserID: userID, UserEndID: userEndID}, secretKey, validityDuration)
}

func sign(c Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; anything else unusable yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
