package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthpoints/healthpoints-backend/internal/common"
)

// RequireAdmin checks that the authenticated caller has admin level
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			common.ErrorResponse(c, http.StatusForbidden, "Administrator rights required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
