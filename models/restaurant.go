package models

import "time"

type Restaurant struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Location   string    `json:"location"`
	Rating     float64   `json:"rating" gorm:"default:0"` // 0.0–5.0
	ImageURL   string    `json:"image_url"`
	IsFeatured bool      `json:"is_featured" gorm:"default:false"`
	Foods      []Food    `json:"foods,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Food struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	UnitPrice    float64   `json:"unit_price" gorm:"not null"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	IsVegetarian bool      `json:"is_vegetarian" gorm:"default:false"`
	IsBestseller bool      `json:"is_bestseller" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
