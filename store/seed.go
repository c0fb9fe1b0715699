package store

import (
	"log"

	"food-ordering-api/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedDemo inserts a small demo dataset for development: a handful of
// restaurants and foods, a demo customer and an admin. Idempotent.
func (s *Store) SeedDemo() error {
	restaurants := []models.Restaurant{
		{ID: 301, Name: "Southern Spice", Location: "Rushikonda", Rating: 4.5, IsFeatured: true},
		{ID: 302, Name: "Deccan Pavilion", Location: "MVP Colony", Rating: 4.1, IsFeatured: true},
		{ID: 303, Name: "Barbeque Nation", Location: "Gajuwaka", Rating: 4.3},
		{ID: 304, Name: "Sitara Grand", Location: "Aganampudi", Rating: 3.9},
		{ID: 305, Name: "Paprika Restaurant", Location: "Seethammadhara", Rating: 3.6},
	}
	for i := range restaurants {
		if err := s.db.FirstOrCreate(&restaurants[i], models.Restaurant{ID: restaurants[i].ID}).Error; err != nil {
			return err
		}
	}

	foods := []models.Food{
		{ID: 101, Name: "Margherita Pizza", UnitPrice: 12.99, RestaurantID: 301, Category: "Pizza", IsVegetarian: true, IsBestseller: true},
		{ID: 102, Name: "Chicken Biryani", UnitPrice: 15.99, RestaurantID: 302, Category: "Biryani", IsBestseller: true},
		{ID: 103, Name: "Pasta Carbonara", UnitPrice: 14.50, RestaurantID: 303, Category: "Pasta"},
		{ID: 104, Name: "Vegetable Curry", UnitPrice: 11.99, RestaurantID: 304, Category: "Curry", IsVegetarian: true},
	}
	for i := range foods {
		if err := s.db.FirstOrCreate(&foods[i], models.Food{ID: foods[i].ID}).Error; err != nil {
			return err
		}
	}

	partners := []models.DeliveryPartner{
		{ID: 1, Name: "Ravi Kumar", ContactNumber: "9876500001"},
		{ID: 2, Name: "Sunita Rao", ContactNumber: "9876500002"},
	}
	for i := range partners {
		if err := s.db.FirstOrCreate(&partners[i], models.DeliveryPartner{ID: partners[i].ID}).Error; err != nil {
			return err
		}
	}

	users := []struct {
		email, name, password string
		role                  models.UserRole
	}{
		{"demo@example.com", "Demo User", "password123", models.RoleCustomer},
		{"admin@example.com", "Admin", "admin123", models.RoleAdmin},
	}
	for _, u := range users {
		if _, err := s.UserByEmail(u.email); err == nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := s.CreateUser(&models.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		}); err != nil {
			return err
		}
	}

	log.Println("Demo data seeded")
	return nil
}
