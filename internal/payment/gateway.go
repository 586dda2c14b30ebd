// Package payment talks to the card payment gateway.
package payment

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Gateway is the subset of the payment gateway the checkout needs
type Gateway interface {
	// ClientToken issues a token the browser SDK uses to tokenize a card into a nonce
	ClientToken(ctx context.Context) (*ClientToken, error)
	// Sale charges a nonce. Business failures (declines, validation) are
	// returned as *Error; anything else is a transport failure.
	Sale(ctx context.Context, req SaleRequest) (*Transaction, error)
}

// ClientToken is returned to the client verbatim
type ClientToken struct {
	ClientToken string `json:"clientToken"`
	Success     bool   `json:"success"`
}

// SaleRequest describes a single charge
type SaleRequest struct {
	Amount              decimal.Decimal
	Nonce               string
	OrderID             string // Merchant reference stored on the gateway transaction
	SubmitForSettlement bool   // Capture immediately instead of only authorizing
}

// Transaction is the gateway's record of a successful sale
type Transaction struct {
	ID           string          `json:"id"`
	LegacyID     string          `json:"legacyId,omitempty"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
	OrderID      string          `json:"orderId,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	Success      bool            `json:"success"`
}

// Snapshot converts the transaction into the generic map stored on orders
func (t *Transaction) Snapshot() map[string]any {
	b, err := json.Marshal(t)
	if err != nil {
		return map[string]any{"id": t.ID, "status": t.Status, "success": t.Success}
	}
	out := map[string]any{}
	_ = json.Unmarshal(b, &out)
	return out
}

// Error is a business error reported by the gateway, returned to callers verbatim
type Error struct {
	Message string `json:"message"`
	Class   string `json:"errorClass,omitempty"`
	Code    string `json:"legacyCode,omitempty"`
	Status  string `json:"status,omitempty"` // Transaction status when the sale was declined
}

func (e *Error) Error() string { return e.Message }
