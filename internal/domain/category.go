package domain

import "time"

// Category Model
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	Name      string    `gorm:"size:191;uniqueIndex;not null" json:"name"` // Category name
	Slug      string    `gorm:"size:191;index" json:"slug"`                // URL-safe name
	CreatedAt time.Time `json:"createdAt"`                                 // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt"`                                 // Last update timestamp
}
