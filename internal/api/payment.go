package api

import (
	"errors"   // Error inspection
	"io"       // Empty body detection
	"net/http" // HTTP status codes

	"shop_system/internal/middleware" // Authenticated user id
	"shop_system/internal/orders"     // Order and payment engine
	"shop_system/internal/payment"    // Gateway errors

	"github.com/gin-gonic/gin" // Gin web framework
)

// PaymentRequest is the checkout body
type PaymentRequest struct {
	Nonce string            `json:"nonce"` // Tokenized payment method
	Cart  []orders.CartItem `json:"cart"`  // Products being bought
}

// BraintreeTokenHandler returns a client token for the payment form
func BraintreeTokenHandler(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := svc.ClientToken(c.Request.Context())
		var gwErr *payment.Error
		if errors.As(err, &gwErr) {
			c.JSON(http.StatusInternalServerError, gwErr) // Gateway error object, verbatim
			return
		}
		if err != nil {
			serverError(c, "Error while generating client token", err)
			return
		}
		c.JSON(http.StatusOK, token)
	}
}

// BraintreePaymentHandler charges the cart and records the order
func BraintreePaymentHandler(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentRequest
		// An empty body is validated like an empty request
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.String(http.StatusBadRequest, "Invalid request")
			return
		}
		_, err := svc.Checkout(c.Request.Context(), orders.CheckoutRequest{
			Nonce:   req.Nonce,
			Cart:    req.Cart,
			BuyerID: middleware.UserID(c),
		})
		var gwErr *payment.Error
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"ok": true})
		case errors.Is(err, orders.ErrNonceEmpty),
			errors.Is(err, orders.ErrCartEmpty),
			errors.Is(err, orders.ErrBuyerEmpty),
			errors.Is(err, orders.ErrCartItemInvalid):
			c.String(http.StatusBadRequest, err.Error()) // Plain string body
		case errors.Is(err, orders.ErrNonceUsed):
			c.String(http.StatusConflict, err.Error())
		case errors.As(err, &gwErr):
			c.JSON(http.StatusInternalServerError, gwErr)
		default:
			serverError(c, "Error while processing payment", err)
		}
	}
}
