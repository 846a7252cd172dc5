package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/upload"
)

// UploadLimit rate limits upload-carrying endpoints per user.
func UploadLimit(limiter *upload.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(domain.KeyUserID))
		if userID == "" {
			// AuthMiddleware runs first; no identity means it already aborted.
			c.Next()
			return
		}

		if !limiter.Allow(c.Request.Context(), userID) {
			response.Error(c, http.StatusTooManyRequests, "Too many uploads, please wait a minute", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
