package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notebrief/cmd/api/auth"
	"notebrief/cmd/api/dto"
	"notebrief/cmd/internal/logger"
)

const contextKeyIdentity = "identity"

// Identity resolves the bearer credential once per request and stores the
// result in the gin context. Resolution never blocks the request: a missing
// or invalid credential degrades to Anonymous.
func Identity(jwtm *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			token = ""
		}

		id := auth.Resolve(token, jwtm)
		if token != "" && id.Kind == auth.KindAnonymous {
			// Soft-fail: log and continue as anonymous.
			logger.WarnWithFields("invalid credential degraded to anonymous", logger.Fields{
				"path": c.Request.URL.Path,
			})
		}

		c.Set(contextKeyIdentity, id)
		c.Next()
	}
}

// CurrentIdentity returns the resolved identity, Anonymous when the
// middleware did not run.
func CurrentIdentity(c *gin.Context) auth.Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return auth.Anonymous
	}
	id, ok := v.(auth.Identity)
	if !ok {
		return auth.Anonymous
	}
	return id
}

// RequireUser hard-blocks endpoints that only make sense for registered
// users. Everything else stays soft-fail.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("auth_required", "authentication required"))
			return
		}
		c.Next()
	}
}
