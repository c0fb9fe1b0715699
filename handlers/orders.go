package handlers

import (
	"fmt"
	"net/http"
	"time"

	"food-ordering-api/events"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type PlaceOrderRequest struct {
	RestaurantID    uint                     `json:"restaurant_id" binding:"required"`
	PaymentType     string                   `json:"payment_type" binding:"required"`
	DeliveryAddress string                   `json:"delivery_address"`
	ContactNumber   string                   `json:"contact_number"`
	Items           []store.OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new PENDING order for the authenticated customer.
// Item prices are snapshotted server-side; the total is recomputed with
// the configured delivery fee and tax rate.
func (h *Handler) PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Store.PlaceOrder(store.PlaceOrderParams{
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		PaymentType:     req.PaymentType,
		DeliveryAddress: req.DeliveryAddress,
		ContactNumber:   req.ContactNumber,
		Items:           req.Items,
		DeliveryFee:     h.Cfg.DeliveryFee,
		TaxRate:         h.Cfg.TaxRate,
	})
	if err != nil {
		failFor(c, err, "Restaurant or food not found")
		return
	}

	if err := h.Events.PublishOrderEvent(c.Request.Context(), events.OrderEvent{
		Type:         events.TypeOrderCreated,
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		Timestamp:    time.Now(),
	}); err != nil {
		// The order is already committed; a dead broker must not fail it.
		c.Error(err)
	}

	respond(c, http.StatusCreated, order)
}

// MyOrders returns all orders for the logged-in customer, newest first.
func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.Store.OrdersByCustomer(middleware.GetUserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, orders)
}

// GetOrder returns one order. Customers only see their own; admins see any.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.Store.OrderByID(id)
	if err != nil {
		failFor(c, err, "Order not found")
		return
	}
	if order.CustomerID != middleware.GetUserID(c) && middleware.GetRole(c) != models.RoleAdmin {
		fail(c, http.StatusForbidden, "This order does not belong to you")
		return
	}
	respond(c, http.StatusOK, order)
}

// OrderQR renders a PNG QR code pointing at the order tracking page.
func (h *Handler) OrderQR(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.Store.OrderByID(id)
	if err != nil {
		failFor(c, err, "Order not found")
		return
	}
	if order.CustomerID != middleware.GetUserID(c) && middleware.GetRole(c) != models.RoleAdmin {
		fail(c, http.StatusForbidden, "This order does not belong to you")
		return
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/orders/%d", h.Cfg.BaseURL, order.ID), qrcode.Medium, 256)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
