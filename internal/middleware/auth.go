package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/healthpoints/healthpoints-backend/internal/common"
	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"github.com/healthpoints/healthpoints-backend/pkg/jwt"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		// 4. Store caller identity in context
		c.Set("login", claims.Login)
		c.Set("level", claims.Level)

		c.Next()
	}
}

// GetLogin extracts the caller's login from context
func GetLogin(c *gin.Context) string {
	login, exists := c.Get("login")
	if !exists {
		return ""
	}
	if str, ok := login.(string); ok {
		return str
	}
	return ""
}

// GetUserLevel extracts the caller's level from context
func GetUserLevel(c *gin.Context) int {
	level, exists := c.Get("level")
	if !exists {
		return 0
	}
	if lvl, ok := level.(int); ok {
		return lvl
	}
	return 0
}

// IsAdmin reports whether the caller has administrator rights
func IsAdmin(c *gin.Context) bool {
	return GetUserLevel(c) >= domain.AdminLevel
}
