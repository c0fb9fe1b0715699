package handlers

import (
	"net/http"
	"time"

	"food-ordering-api/events"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the aggregate numbers the admin landing page shows.
func (h *Handler) Dashboard(c *gin.Context) {
	data, err := h.Store.Dashboard()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, data)
}

// AdminOrders returns all orders, optionally filtered by status.
func (h *Handler) AdminOrders(c *gin.Context) {
	orders, err := h.Store.AllOrders(models.OrderStatus(c.Query("status")))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, orders)
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order along its lifecycle. Invalid
// transitions are rejected with the list of valid next states.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Store.UpdateOrderStatus(id, req.Status, middleware.GetUserID(c))
	if err != nil {
		failStatus(c, err)
		return
	}

	if err := h.Events.PublishOrderEvent(c.Request.Context(), events.OrderEvent{
		Type:         events.TypeOrderStatusChanged,
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		RestaurantID: order.RestaurantID,
		Status:       req.Status,
		TotalAmount:  order.TotalAmount,
		Timestamp:    time.Now(),
	}); err != nil {
		c.Error(err)
	}

	respond(c, http.StatusOK, order)
}

type AssignDeliveryRequest struct {
	DeliveryPartnerID uint `json:"delivery_partner_id" binding:"required"`
}

func (h *Handler) AssignDelivery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.Store.AssignDeliveryPartner(id, req.DeliveryPartnerID)
	if err != nil {
		failStatus(c, err)
		return
	}
	respond(c, http.StatusOK, order)
}

func (h *Handler) DeliveryPartners(c *gin.Context) {
	partners, err := h.Store.ListDeliveryPartners()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, partners)
}

// AdminUsers lists all users, optionally filtered by role.
func (h *Handler) AdminUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(models.UserRole(c.Query("role")))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, users)
}

// ── Restaurant / food CRUD ──────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name       string  `json:"name" binding:"required"`
	Location   string  `json:"location"`
	Rating     float64 `json:"rating" binding:"gte=0,lte=5"`
	ImageURL   string  `json:"image_url"`
	IsFeatured bool    `json:"is_featured"`
}

func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	restaurant := models.Restaurant{
		Name:       req.Name,
		Location:   req.Location,
		Rating:     req.Rating,
		ImageURL:   req.ImageURL,
		IsFeatured: req.IsFeatured,
	}
	if err := h.Store.CreateRestaurant(&restaurant); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}
	respond(c, http.StatusCreated, restaurant)
}

func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	restaurant, err := h.Store.UpdateRestaurant(id, fields)
	if err != nil {
		failFor(c, err, "Restaurant not found")
		return
	}
	respond(c, http.StatusOK, restaurant)
}

type CreateFoodRequest struct {
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	UnitPrice    float64 `json:"unit_price" binding:"required,gt=0"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsBestseller bool    `json:"is_bestseller"`
}

func (h *Handler) CreateFood(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.Store.RestaurantByID(req.RestaurantID); err != nil {
		failFor(c, err, "Restaurant not found")
		return
	}
	food := models.Food{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		UnitPrice:    req.UnitPrice,
		Category:     req.Category,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		IsVegetarian: req.IsVegetarian,
		IsBestseller: req.IsBestseller,
	}
	if err := h.Store.CreateFood(&food); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create food")
		return
	}
	respond(c, http.StatusCreated, food)
}

func (h *Handler) UpdateFood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	food, err := h.Store.UpdateFood(id, fields)
	if err != nil {
		failFor(c, err, "Food not found")
		return
	}
	respond(c, http.StatusOK, food)
}
