package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact decimal prices
)

// MaxPhotoSize is the largest photo accepted inline, in bytes
const MaxPhotoSize = 1000000

// Product Model
type Product struct {
	ID               uint            `gorm:"primaryKey" json:"id"`                     // Primary key
	Name             string          `gorm:"not null" json:"name"`                     // Product name
	Slug             string          `gorm:"size:191;index" json:"slug"`               // Derived from name, not unique
	Description      string          `gorm:"type:text;not null" json:"description"`    // Long description
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // Unit price, never negative
	CategoryID       uint            `gorm:"index;not null" json:"categoryId"`         // Reference to Category
	Category         *Category       `json:"category"`                                 // Populated on read, nil when dangling
	Quantity         int             `gorm:"not null" json:"quantity"`                 // Stock, never negative
	Shipping         bool            `json:"shipping"`                                 // Ships physically
	PhotoData        []byte          `gorm:"type:mediumblob" json:"-"`                 // Inline photo bytes
	PhotoContentType string          `gorm:"size:100" json:"-"`                        // MIME type of the photo
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`                   // Creation timestamp
	UpdatedAt        time.Time       `json:"updatedAt"`                                // Last update timestamp
}

// HasPhoto reports whether a photo blob is stored
func (p *Product) HasPhoto() bool {
	return len(p.PhotoData) > 0
}
