// Package paymenttest provides an in-memory payment gateway for tests.
package paymenttest

import (
	"context"
	"fmt"
	"sync"

	"shop_system/internal/payment"
)

// Gateway is a scripted payment.Gateway that records every sale
type Gateway struct {
	mu sync.Mutex

	Token     string
	TokenErr  error
	SaleErr   error
	Sales     []payment.SaleRequest
	nextTxnID int
}

// New returns a gateway that approves every sale
func New() *Gateway {
	return &Gateway{Token: "client-token"}
}

// ClientToken implements payment.Gateway
func (g *Gateway) ClientToken(ctx context.Context) (*payment.ClientToken, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.TokenErr != nil {
		return nil, g.TokenErr
	}
	return &payment.ClientToken{ClientToken: g.Token, Success: true}, nil
}

// Sale implements payment.Gateway
func (g *Gateway) Sale(ctx context.Context, req payment.SaleRequest) (*payment.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Sales = append(g.Sales, req)
	if g.SaleErr != nil {
		return nil, g.SaleErr
	}
	g.nextTxnID++
	return &payment.Transaction{
		ID:      fmt.Sprintf("txn_%d", g.nextTxnID),
		Status:  "SUBMITTED_FOR_SETTLEMENT",
		Amount:  req.Amount,
		OrderID: req.OrderID,
		Success: true,
	}, nil
}

// SaleCount returns how many sales were attempted
func (g *Gateway) SaleCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Sales)
}
