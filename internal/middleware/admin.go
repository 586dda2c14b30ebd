package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"shop_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c) // Set by JWTAuthMiddleware
		if userID == 0 {
			unauthorized(c, "Authentication required")
			return
		}
		var user domain.User // Fetch user from database
		err := db.WithContext(c.Request.Context()).Select("id", "role").First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Token outlived its user
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Admin check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Server error during authorization check",
				"error":   err.Error(),
			})
			return
		}
		// Check if user role is admin
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden: Admin privileges required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
