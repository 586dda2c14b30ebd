package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"shop_system/internal/middleware" // Authenticated user id
	"shop_system/internal/orders"     // Order and payment engine

	"github.com/gin-gonic/gin" // Gin web framework
)

// OrderStatusRequest is the body of a status update
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"` // New status label
}

// GetOrdersHandler returns the authenticated buyer's orders as a bare array
func GetOrdersHandler(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.BuyerOrders(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			serverError(c, "Error While Getting Orders", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetAllOrdersHandler returns every order, newest first
func GetAllOrdersHandler(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.AllOrders(c.Request.Context())
		if err != nil {
			serverError(c, "Error While Getting Orders", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// OrderStatusHandler changes the status of an order
func OrderStatusHandler(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "Status is required")
			return
		}
		id := paramID(c, "orderId")
		if id == 0 {
			fail(c, http.StatusNotFound, "Order not found")
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		var terr *orders.TransitionError
		switch {
		case err == nil:
			c.JSON(http.StatusOK, order)
		case errors.Is(err, orders.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, "Invalid order status")
		case errors.Is(err, orders.ErrOrderNotFound):
			fail(c, http.StatusNotFound, "Order not found")
		case errors.As(err, &terr), errors.Is(err, orders.ErrStatusConflict):
			fail(c, http.StatusConflict, err.Error())
		default:
			serverError(c, "Error While Updating Order", err)
		}
	}
}
