package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is a middleware that catches panics and returns the
// standard error envelope without leaking internal detail.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, gin.H{
					"success":  false,
					"endpoint": c.FullPath(),
					"errors":   []gin.H{{"message": "internal_server_error"}},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
