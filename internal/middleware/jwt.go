package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"shop_system/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/golang-jwt/jwt/v5" // JWT error values
)

// UserIDKey is the gin context key holding the authenticated user's id
const UserIDKey = "userID"

// unauthorized aborts with a 401 envelope
func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// JWTAuthMiddleware validates Bearer tokens and stores the user id in the context
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if strings.TrimSpace(authHeader) == "" {
			unauthorized(c, "Authentication required") // No credentials at all
			return
		}
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ") // Extract the token string
		// A JWT always has three dot separated segments
		if !ok || strings.Count(tokenStr, ".") != 2 {
			unauthorized(c, "Invalid token format")
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if errors.Is(err, jwt.ErrTokenExpired) {
			unauthorized(c, "Token has expired, please login again")
			return
		}
		if err != nil || claims.UserID == 0 {
			unauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(UserIDKey, claims.UserID) // Store userID in context
		c.Next()                        // Proceed to the next handler
	}
}

// UserID returns the authenticated user's id, zero when absent
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
