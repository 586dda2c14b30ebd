package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttemptStatus tracks a charge from submission to outcome
type AttemptStatus string

// Attempt statuses
const (
	AttemptPending AttemptStatus = "pending"
	AttemptSettled AttemptStatus = "settled"
	AttemptFailed  AttemptStatus = "failed"
)

// PaymentAttempt records a checkout before the gateway is called, so a charge
// that never became an order can be found and reconciled
type PaymentAttempt struct {
	ID            uint            `gorm:"primaryKey"`                  // Primary key
	Reference     string          `gorm:"size:36;uniqueIndex"`         // Sent to the gateway as the order id
	BuyerID       uint            `gorm:"index;not null"`              // Paying user
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Charged total
	Status        AttemptStatus   `gorm:"size:16;index;not null"`      // pending, settled or failed
	TransactionID string          `gorm:"size:64"`                     // Gateway transaction id
	Error         string          `gorm:"type:text"`                   // Gateway or transport error
	OrderID       *uint           `gorm:"index"`                       // Set once the order exists
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
