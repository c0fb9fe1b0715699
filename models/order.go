package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

type Order struct {
	ID                uint                 `json:"order_id" gorm:"primaryKey"`
	CustomerID        uint                 `json:"customer_id" gorm:"not null;index"`
	Customer          *User                `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID      uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant        *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status            OrderStatus          `json:"status" gorm:"not null;default:'PENDING'"`
	TotalAmount       float64              `json:"total_amount"`
	PaymentType       string               `json:"payment_type"`
	PaymentStatus     string               `json:"payment_status"`
	DeliveryAddress   string               `json:"delivery_address"`
	ContactNumber     string               `json:"contact_number"`
	DeliveryPartnerID *uint                `json:"delivery_partner_id"`
	DeliveryPartner   *DeliveryPartner     `json:"delivery_partner,omitempty" gorm:"foreignKey:DeliveryPartnerID"`
	Items             []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory     []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	OrderedTime       time.Time            `json:"ordered_time" gorm:"autoCreateTime"`
	DeliveredTime     *time.Time           `json:"delivered_time"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// OrderStatusHistory records every status change an order went through.
// Rows are append-only; they are the one part of a terminal order that
// still grows.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is a denormalized snapshot of a food at order time. Later
// price or name changes must not affect historical orders.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	FoodID    uint    `json:"food_id" gorm:"not null"`
	FoodName  string  `json:"food_name"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
}

type DeliveryPartner struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}
