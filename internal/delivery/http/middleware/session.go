package middleware

import (
	"context"
	"time"

	"hireova-backend/pkg/database"
	"hireova-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Timeout bounds the request context. Storage calls made after the deadline
// fail and an open transaction is rolled back.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SessionAcquirer is satisfied by *database.SessionProvider.
type SessionAcquirer interface {
	Acquire(ctx context.Context) (*database.Session, error)
}

// Session binds one storage session to the request and releases it when the
// handler chain returns, including on panic.
func Session(provider SessionAcquirer) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := provider.Acquire(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		defer func() {
			if sess.InTx() {
				logger.Log.Warn("Transaction left open, rolling back", "request_id", RequestIDFrom(c), "path", c.FullPath())
			}
			sess.Release()
		}()

		c.Request = c.Request.WithContext(database.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}
