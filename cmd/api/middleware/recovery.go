package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"notebrief/cmd/api/dto"
	"notebrief/cmd/internal/logger"
)

// Recovery converts panics into the standard error envelope so no recognized
// error path ever terminates a connection without a JSON body. Panic detail
// is included only outside production.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorWithFields("panic recovered", logger.Fields{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		})

		message := "internal server error"
		if os.Getenv("APP_ENV") != "production" {
			if s, ok := recovered.(string); ok {
				message = s
			} else if err, ok := recovered.(error); ok {
				message = err.Error()
			}
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("server_error", message))
	})
}
