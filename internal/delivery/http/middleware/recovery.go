package middleware

import (
	"net/http"
	"runtime/debug"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 envelope. Deferred cleanup further down
// the chain (session release, transaction rollback) has already run.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error("Panic recovered",
					"request_id", RequestIDFrom(c),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				if !c.Writer.Written() {
					response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
