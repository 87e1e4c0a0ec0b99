package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the httpOnly cookie fallback for the bearer token.
const TokenCookieName = "auth_token"

var (
	ErrMissingCredential = errors.New("missing_credential")
	ErrInvalidFormat     = errors.New("invalid_authorization_header")
	ErrEmptyToken        = errors.New("empty_token")
)

// ExtractBearerToken pulls the bearer token from the Authorization header,
// falling back to the auth cookie. Returns ErrMissingCredential when neither
// is present.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
			return cookie, nil
		}
		return "", ErrMissingCredential
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
