package domain

import (
	"database/sql/driver" // Valuer/Scanner interfaces
	"encoding/json"       // Payment snapshot encoding
	"errors"              // Sentinel errors
	"fmt"                 // Error formatting
	"time"

	"gorm.io/gorm" // GORM hooks
)

// Validation errors raised by the Order model before it is written
var (
	ErrOrderNoProducts = errors.New("order must contain at least one product")
	ErrOrderNoBuyer    = errors.New("buyer information is required")
	ErrOrderNoPayment  = errors.New("payment information is required")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// OrderStatus is the lifecycle label of an order
type OrderStatus string

// Order statuses
const (
	StatusNotProcess OrderStatus = "Not Process"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancel     OrderStatus = "Cancel"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{StatusNotProcess, StatusProcessing, StatusShipped, StatusDelivered, StatusCancel}

// ParseOrderStatus converts a client supplied string into an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Valid reports whether s is one of the enumerated statuses
func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// Terminal reports whether no forward transition leaves s
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancel
}

// Value enforces the enum on every write that goes through the driver
func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

// Scan reads a status column
func (s *OrderStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", src)
	}
	return nil
}

// PaymentSnapshot is the gateway transaction result captured at checkout
type PaymentSnapshot map[string]any

// Value stores the snapshot as JSON text
func (p PaymentSnapshot) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON snapshot column
func (p *PaymentSnapshot) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into PaymentSnapshot", src)
	}
	return json.Unmarshal(raw, p)
}

// Order Model
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`                                 // Primary key
	Items            []OrderItem     `gorm:"foreignKey:OrderID" json:"-"`                          // Stored product references
	Products         []*Product      `gorm:"-" json:"products"`                                    // Populated on read, nil members when deleted
	Payment          PaymentSnapshot `gorm:"type:text;not null" json:"payment"`                    // Gateway result snapshot
	BuyerID          uint            `gorm:"index;not null" json:"buyerId"`                        // Reference to User
	Buyer            *User           `json:"buyer"`                                                // Populated on read
	Status           OrderStatus     `gorm:"size:32;not null;default:'Not Process'" json:"status"` // Lifecycle label
	PaymentReference string          `gorm:"size:36;index" json:"paymentReference"`                // Shared with the gateway transaction
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`                               // Creation timestamp
	UpdatedAt        time.Time       `json:"updatedAt"`                                            // Last update timestamp
}

// OrderItem is one position in an order's product list
type OrderItem struct {
	ID        uint `gorm:"primaryKey"`     // Primary key
	OrderID   uint `gorm:"index;not null"` // Owning order
	Position  int  `gorm:"not null"`       // Index in the cart
	ProductID uint `gorm:"index;not null"` // Referenced product, may dangle
}

// Validate checks the invariants every stored order must satisfy
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrOrderNoProducts
	}
	if o.BuyerID == 0 {
		return ErrOrderNoBuyer
	}
	if len(o.Payment) == 0 {
		return ErrOrderNoPayment
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(o.Status))
	}
	return nil
}

// BeforeCreate defaults the status and rejects invalid orders
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = StatusNotProcess
	}
	return o.Validate()
}

// ProductIDs returns the referenced product ids in cart order
func (o *Order) ProductIDs() []uint {
	ids := make([]uint, len(o.Items))
	for i, it := range o.Items {
		ids[i] = it.ProductID
	}
	return ids
}
