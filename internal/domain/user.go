package domain

import "time"

// Roles stored on User.Role
const (
	RoleUser  = 0 // Regular customer
	RoleAdmin = 1 // Administrator
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Name      string    `gorm:"not null" json:"name"`                       // Display name
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password
	Phone     string    `json:"phone"`                                      // Phone number
	Address   string    `json:"address"`                                    // Shipping address
	Answer    string    `gorm:"not null" json:"-"`                          // Security answer for password reset
	Role      int       `gorm:"not null;default:0" json:"role"`             // 0 = user, 1 = admin
	CreatedAt time.Time `json:"createdAt"`                                  // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt"`                                  // Last update timestamp
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
