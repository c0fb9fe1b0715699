// Package store is the typed data access layer over gorm. It replaces any
// notion of matching on query text: every lookup is a typed method keyed on
// ids and indexed columns.
package store

import (
	"errors"
	"fmt"
	"math"
	"time"

	"food-ordering-api/lifecycle"
	"food-ordering-api/models"

	"gorm.io/gorm"
)

// ErrNotFound wraps gorm's record-not-found for callers that should not
// depend on gorm.
var ErrNotFound = errors.New("store: record not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateUser applies the given profile fields and returns the fresh row.
// Role and password are deliberately not updatable through this path.
func (s *Store) UpdateUser(id uint, fields map[string]interface{}) (*models.User, error) {
	allowed := map[string]bool{"name": true, "contact_number": true, "address": true, "email": true}
	update := map[string]interface{}{}
	for k, v := range fields {
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) > 0 {
		if err := s.db.Model(&models.User{}).Where("id = ?", id).Updates(update).Error; err != nil {
			return nil, err
		}
	}
	return s.UserByID(id)
}

func (s *Store) ListUsers(role models.UserRole) ([]models.User, error) {
	var users []models.User
	query := s.db
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Find(&users).Error
	return users, err
}

// ── Restaurants ─────────────────────────────────────────────────────────────

func (s *Store) ListRestaurants() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.Find(&restaurants).Error
	return restaurants, err
}

func (s *Store) FeaturedRestaurants() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.Where("is_featured = ?", true).Order("rating desc").Find(&restaurants).Error
	return restaurants, err
}

func (s *Store) SearchRestaurants(q string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	pattern := "%" + q + "%"
	err := s.db.Where("name LIKE ? OR location LIKE ?", pattern, pattern).Find(&restaurants).Error
	return restaurants, err
}

func (s *Store) RestaurantByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.Preload("Foods").First(&restaurant, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &restaurant, nil
}

func (s *Store) CreateRestaurant(r *models.Restaurant) error {
	return s.db.Create(r).Error
}

func (s *Store) UpdateRestaurant(id uint, fields map[string]interface{}) (*models.Restaurant, error) {
	allowed := map[string]bool{"name": true, "location": true, "rating": true, "image_url": true, "is_featured": true}
	update := map[string]interface{}{}
	for k, v := range fields {
		if allowed[k] {
			update[k] = v
		}
	}
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, id).Error; err != nil {
		return nil, notFound(err)
	}
	if len(update) > 0 {
		if err := s.db.Model(&restaurant).Updates(update).Error; err != nil {
			return nil, err
		}
	}
	return &restaurant, nil
}

// ── Foods ───────────────────────────────────────────────────────────────────

func (s *Store) ListFoods() ([]models.Food, error) {
	var foods []models.Food
	err := s.db.Find(&foods).Error
	return foods, err
}

func (s *Store) FeaturedFoods() ([]models.Food, error) {
	var foods []models.Food
	err := s.db.Where("is_bestseller = ?", true).Find(&foods).Error
	return foods, err
}

func (s *Store) SearchFoods(q string) ([]models.Food, error) {
	var foods []models.Food
	pattern := "%" + q + "%"
	err := s.db.Where("name LIKE ? OR category LIKE ?", pattern, pattern).Find(&foods).Error
	return foods, err
}

func (s *Store) FoodByID(id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &food, nil
}

func (s *Store) FoodsByRestaurant(restaurantID uint) ([]models.Food, error) {
	var foods []models.Food
	err := s.db.Where("restaurant_id = ?", restaurantID).Find(&foods).Error
	return foods, err
}

func (s *Store) CreateFood(f *models.Food) error {
	return s.db.Create(f).Error
}

func (s *Store) UpdateFood(id uint, fields map[string]interface{}) (*models.Food, error) {
	allowed := map[string]bool{
		"name": true, "unit_price": true, "category": true, "description": true,
		"image_url": true, "is_vegetarian": true, "is_bestseller": true, "restaurant_id": true,
	}
	update := map[string]interface{}{}
	for k, v := range fields {
		if allowed[k] {
			update[k] = v
		}
	}
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		return nil, notFound(err)
	}
	if len(update) > 0 {
		if err := s.db.Model(&food).Updates(update).Error; err != nil {
			return nil, err
		}
	}
	return &food, nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

// OrderItemRequest names a food and how many of it the customer wants.
type OrderItemRequest struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderParams is everything a new order needs. Empty delivery fields
// fall back to the customer's profile.
type PlaceOrderParams struct {
	CustomerID      uint
	RestaurantID    uint
	PaymentType     string
	DeliveryAddress string
	ContactNumber   string
	Items           []OrderItemRequest
	DeliveryFee     float64
	TaxRate         float64
}

// PlaceOrder assembles and persists a new PENDING order. Item names and
// prices are snapshotted from the foods table at this moment; the total is
// subtotal + delivery fee + tax (rounded to the nearest unit).
func (s *Store) PlaceOrder(p PlaceOrderParams) (*models.Order, error) {
	if len(p.Items) == 0 {
		return nil, errors.New("store: order has no items")
	}
	if _, err := s.RestaurantByID(p.RestaurantID); err != nil {
		return nil, err
	}
	if p.DeliveryAddress == "" || p.ContactNumber == "" {
		customer, err := s.UserByID(p.CustomerID)
		if err != nil {
			return nil, err
		}
		if p.DeliveryAddress == "" {
			p.DeliveryAddress = customer.Address
		}
		if p.ContactNumber == "" {
			p.ContactNumber = customer.ContactNumber
		}
	}

	var orderItems []models.OrderItem
	var subtotal float64
	for _, req := range p.Items {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("store: quantity must be positive for food %d", req.FoodID)
		}
		food, err := s.FoodByID(req.FoodID)
		if err != nil {
			return nil, err
		}
		if food.RestaurantID != p.RestaurantID {
			return nil, fmt.Errorf("store: food %q does not belong to restaurant %d", food.Name, p.RestaurantID)
		}
		subtotal += food.UnitPrice * float64(req.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			FoodID:    food.ID,
			FoodName:  food.Name,
			UnitPrice: food.UnitPrice,
			Quantity:  req.Quantity,
		})
	}

	order := &models.Order{
		CustomerID:      p.CustomerID,
		RestaurantID:    p.RestaurantID,
		Status:          models.StatusPending,
		TotalAmount:     subtotal + p.DeliveryFee + math.Round(subtotal*p.TaxRate),
		PaymentType:     p.PaymentType,
		PaymentStatus:   "PENDING",
		DeliveryAddress: p.DeliveryAddress,
		ContactNumber:   p.ContactNumber,
		Items:           orderItems,
	}
	if err := s.CreateOrder(order); err != nil {
		return nil, err
	}
	return s.OrderByID(order.ID)
}

// CreateOrder persists an order, its item snapshots and the opening status
// history row in one transaction. An order is either fully created or not
// created at all.
func (s *Store) CreateOrder(order *models.Order) error {
	if len(order.Items) == 0 {
		return errors.New("store: order has no items")
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			ChangedBy: order.CustomerID,
		}).Error
	})
}

func (s *Store) OrdersByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("ordered_time desc").
		Find(&orders).Error
	return orders, err
}

func (s *Store) OrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Restaurant").Preload("DeliveryPartner").
		Preload("StatusHistory").
		First(&order, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *Store) AllOrders(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Preload("Items").Preload("Restaurant").Preload("Customer")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("ordered_time desc").Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus validates the transition before applying it, recording
// the change in the order's status history. Delivered orders get their
// delivered_time stamped.
func (s *Store) UpdateOrderStatus(id uint, status models.OrderStatus, changedBy uint) (*models.Order, error) {
	order, err := s.OrderByID(id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if err := lifecycle.CanTransition(from, status); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	update := map[string]interface{}{"status": status}
	if status == models.StatusDelivered {
		now := time.Now()
		update["delivered_time"] = &now
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(update).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   status,
			ChangedBy:  changedBy,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.OrderByID(id)
}

func (s *Store) AssignDeliveryPartner(orderID, partnerID uint) (*models.Order, error) {
	order, err := s.OrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if lifecycle.IsTerminal(order.Status) {
		return nil, fmt.Errorf("store: order %d is %s and can no longer be assigned: %w",
			orderID, order.Status, lifecycle.ErrInvalidTransition)
	}
	var partner models.DeliveryPartner
	if err := s.db.First(&partner, partnerID).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.db.Model(order).Update("delivery_partner_id", partnerID).Error; err != nil {
		return nil, err
	}
	order.DeliveryPartnerID = &partner.ID
	order.DeliveryPartner = &partner
	return order, nil
}

func (s *Store) ListDeliveryPartners() ([]models.DeliveryPartner, error) {
	var partners []models.DeliveryPartner
	err := s.db.Find(&partners).Error
	return partners, err
}

// ── Admin dashboard ─────────────────────────────────────────────────────────

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DashboardData struct {
	TotalOrders    int64          `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	TotalCustomers int64          `json:"total_customers"`
	RecentOrders   []models.Order `json:"recent_orders"`
	TopFoods       []NamedCount   `json:"top_foods"`
	TopRestaurants []NamedCount   `json:"top_restaurants"`
}

func (s *Store) Dashboard() (*DashboardData, error) {
	data := &DashboardData{}

	if err := s.db.Model(&models.Order{}).Count(&data.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&data.TotalCustomers).Error; err != nil {
		return nil, err
	}

	// Revenue counts delivered orders only; cancelled money never existed.
	var revenue struct{ Total float64 }
	if err := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("status = ?", models.StatusDelivered).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	data.TotalRevenue = revenue.Total

	if err := s.db.Preload("Items").Preload("Restaurant").
		Order("ordered_time desc").Limit(5).
		Find(&data.RecentOrders).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.OrderItem{}).
		Select("food_name as name, SUM(quantity) as count").
		Group("food_name").Order("count desc").Limit(5).
		Scan(&data.TopFoods).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Order{}).
		Select("restaurants.name as name, COUNT(orders.id) as count").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Group("restaurants.name").Order("count desc").Limit(5).
		Scan(&data.TopRestaurants).Error; err != nil {
		return nil, err
	}

	return data, nil
}
