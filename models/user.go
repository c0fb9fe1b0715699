package models

import (
	"time"
)

// UserRole defines allowed roles in the system. Admin is an explicit,
// stored attribute carried in the auth token — never inferred from ids
// or token contents.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Role          UserRole  `json:"role" gorm:"not null;default:'customer'"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
