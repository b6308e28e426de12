package restservice

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "auctiond"
	tokenPrefix   = "Bearer "
	callerCtxKey  = "caller"
	authHeaderKey = "Authorization"
)

// NewToken mints an HS256 token identifying subject as the caller.
// A zero expiry falls back to one day.
func NewToken(secret, subject string, expiry time.Duration) (string, error) {
	if len(secret) <= 0 {
		return "", fmt.Errorf("missing jwt secret")
	}
	if len(subject) <= 0 {
		return "", fmt.Errorf("missing token subject")
	}
	if expiry <= 0 {
		expiry = defaultTokenExpiry
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// authMiddleware rejects requests without a valid bearer token and stores
// the token subject as the caller identity.
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if len(header) <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing authorization header",
				"code":    "AUTH_MISSING_HEADER",
			})
			return
		}
		if !strings.HasPrefix(header, tokenPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
				"code":    "AUTH_INVALID_FORMAT",
			})
			return
		}

		subject, err := parseToken(secret, strings.TrimPrefix(header, tokenPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
				"code":    "AUTH_INVALID_TOKEN",
			})
			return
		}

		c.Set(callerCtxKey, subject)
		c.Next()
	}
}

func parseToken(secret, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}
	if len(claims.Subject) <= 0 {
		return "", errors.New("missing token subject")
	}
	return claims.Subject, nil
}

func caller(c *gin.Context) string {
	return c.GetString(callerCtxKey)
}
