package middleware

import (
	"errors"
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/pkg/apperror"
	"hireova-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"request_id", RequestIDFrom(c),
					"status", appErr.Code,
					"error", err,
				)
			}
			var details any
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "request_id", RequestIDFrom(c), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
