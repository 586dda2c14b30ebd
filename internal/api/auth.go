package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"shop_system/internal/domain"     // Importing domain models
	"shop_system/internal/middleware" // Authenticated user id
	"shop_system/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Email format check
	"github.com/sirupsen/logrus"             // Logging library
	"gorm.io/gorm"                           // GORM ORM library
)

// MinPasswordLength applies to profile password changes
const MinPasswordLength = 6

var validate = validator.New()

// RegisterRequest is the registration body
type RegisterRequest struct {
	Name     string `json:"name"`     // Display name
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plain password
	Phone    string `json:"phone"`    // Phone number
	Address  string `json:"address"`  // Shipping address
	Answer   string `json:"answer"`   // Security answer
}

// LoginRequest is the login body
type LoginRequest struct {
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plain password
}

// ForgotPasswordRequest resets a password with the security answer
type ForgotPasswordRequest struct {
	Email       string `json:"email"`       // Login email
	Answer      string `json:"answer"`      // Security answer
	NewPassword string `json:"newPassword"` // Replacement password
}

// ProfileRequest patches the profile; empty fields keep their value
type ProfileRequest struct {
	Name     string `json:"name"`     // Display name
	Password string `json:"password"` // New password
	Phone    string `json:"phone"`    // Phone number
	Address  string `json:"address"`  // Shipping address
}

// UserResponse is the public view of a user returned at login
type UserResponse struct {
	ID      uint   `json:"id"`      // User ID
	Name    string `json:"name"`    // Display name
	Email   string `json:"email"`   // Login email
	Phone   string `json:"phone"`   // Phone number
	Address string `json:"address"` // Shipping address
	Role    int    `json:"role"`    // 0 = user, 1 = admin
}

// missingField returns the message for the first empty required field
func (r RegisterRequest) missingField() string {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "Name is Required"
	case strings.TrimSpace(r.Email) == "":
		return "Email is Required"
	case r.Password == "":
		return "Password is Required"
	case strings.TrimSpace(r.Phone) == "":
		return "Phone number is Required"
	case strings.TrimSpace(r.Address) == "":
		return "Address is Required"
	case strings.TrimSpace(r.Answer) == "":
		return "Answer is Required"
	}
	return ""
}

// normalizeEmail lowercases emails so lookups are case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterHandler creates a user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Required fields are reported one at a time, in form order
		if msg := req.missingField(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": msg})
			return
		}
		email := normalizeEmail(req.Email)
		if err := validate.Var(email, "email"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email format is invalid"})
			return
		}
		ctx := c.Request.Context()
		var existing int64
		if err := db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			serverError(c, "Error in Registration", err)
			return
		}
		if existing > 0 {
			fail(c, http.StatusOK, "Already Registered. Please login")
			return
		}
		hash, err := utils.HashPassword(req.Password) // Hash the password
		if err != nil {
			serverError(c, "Error in Registration", err)
			return
		}
		user := domain.User{
			Name:     strings.TrimSpace(req.Name),
			Email:    email,
			Password: hash,
			Phone:    req.Phone,
			Address:  req.Address,
			Answer:   req.Answer,
		}
		// A concurrent registration can still hit the unique index
		if err := db.WithContext(ctx).Create(&user).Error; errors.Is(err, gorm.ErrDuplicatedKey) {
			fail(c, http.StatusOK, "Already Registered. Please login")
			return
		} else if err != nil {
			serverError(c, "Error in Registration", err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User Register Successfully", "user": user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		_ = c.ShouldBindJSON(&req)
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			fail(c, http.StatusNotFound, "Invalid email or password")
			return
		}
		var user domain.User // Fetch user from database
		err := db.WithContext(c.Request.Context()).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Email is not registered")
			return
		}
		if err != nil {
			serverError(c, "Error in login", err)
			return
		}
		// Compare provided password with stored hash
		match, err := utils.ComparePassword(req.Password, user.Password)
		if err != nil {
			serverError(c, "Error in login", err)
			return
		}
		if !match {
			fail(c, http.StatusOK, "Invalid Password")
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret) // Generate JWT token
		if err != nil {
			serverError(c, "Error in login", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "login successfully",
			"user": UserResponse{
				ID:      user.ID,
				Name:    user.Name,
				Email:   user.Email,
				Phone:   user.Phone,
				Address: user.Address,
				Role:    user.Role,
			},
			"token": token,
		})
	}
}

// ForgotPasswordHandler resets the password when email and answer match
func ForgotPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		_ = c.ShouldBindJSON(&req)
		switch {
		case strings.TrimSpace(req.Email) == "":
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		case strings.TrimSpace(req.Answer) == "":
			c.JSON(http.StatusBadRequest, gin.H{"message": "Answer is required"})
			return
		case req.NewPassword == "":
			c.JSON(http.StatusBadRequest, gin.H{"message": "New Password is required"})
			return
		}
		ctx := c.Request.Context()
		var user domain.User
		err := db.WithContext(ctx).Where("email = ? AND answer = ?", normalizeEmail(req.Email), req.Answer).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Wrong Email or Answer")
			return
		}
		if err != nil {
			serverError(c, "Something went wrong", err)
			return
		}
		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			serverError(c, "Something went wrong", err)
			return
		}
		if err := db.WithContext(ctx).Model(&user).Update("password", hash).Error; err != nil {
			serverError(c, "Something went wrong", err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("Password reset")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password Reset Successfully"})
	}
}

// UpdateProfileHandler patches the authenticated user's profile
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Checked before any read so a bad password never touches the store
		if req.Password != "" && len(req.Password) < MinPasswordLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required and 6 character long"})
			return
		}
		ctx := c.Request.Context()
		var user domain.User
		err := db.WithContext(ctx).First(&user, middleware.UserID(c)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			serverError(c, "Error While Update profile", err)
			return
		}
		// new = provided ?? existing
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if req.Address != "" {
			user.Address = req.Address
		}
		if req.Password != "" {
			hash, err := utils.HashPassword(req.Password)
			if err != nil {
				serverError(c, "Error While Update profile", err)
				return
			}
			user.Password = hash
		}
		if err := db.WithContext(ctx).Save(&user).Error; err != nil {
			serverError(c, "Error While Update profile", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile Updated Successfully", "updatedUser": user})
	}
}

// AuthCheckHandler answers {ok:true} once the route's middleware has passed
func AuthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
