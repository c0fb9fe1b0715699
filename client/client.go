// Package client is the consumer-side core of the food ordering app: the
// data access facade, the account/session manager and checkout. It talks to
// a collaborator that is either the remote HTTP API or the in-process store
// (development mode). It never fabricates data when no collaborator is
// configured.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/store"
)

// Error taxonomy. Callers branch on these with errors.Is; the wrapped
// message carries the user-facing detail.
var (
	// ErrCollaboratorUnavailable means no backend is configured or the
	// configured one cannot be reached.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	// ErrAuth covers bad credentials and expired or missing sessions.
	ErrAuth = errors.New("authentication failed")
	// ErrValidation marks requests rejected before or by the collaborator.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks lookups of absent records.
	ErrNotFound = errors.New("not found")
)

// Registration carries the fields a new account needs.
type Registration struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

// OrderItemSnapshot is one order line as submitted at checkout: name and
// price copied from the cart, not referenced.
type OrderItemSnapshot struct {
	FoodID    uint    `json:"food_id"`
	FoodName  string  `json:"food_name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// OrderRequest is a checkout submission. The collaborator recomputes the
// authoritative total from its own food prices; TotalAmount documents what
// the customer was shown. Empty delivery fields fall back to the
// customer's profile.
type OrderRequest struct {
	RestaurantID    uint                `json:"restaurant_id"`
	PaymentType     string              `json:"payment_type"`
	DeliveryAddress string              `json:"delivery_address"`
	ContactNumber   string              `json:"contact_number"`
	TotalAmount     float64             `json:"total_amount"`
	Items           []OrderItemSnapshot `json:"items"`
}

// Backend is the data access facade: every remote or simulated operation
// the app performs, as typed calls. Operations taking a token require an
// authenticated session; admin operations additionally require the admin
// role.
type Backend interface {
	// Auth
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, reg Registration) (string, *models.User, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, fields map[string]interface{}) (*models.User, error)

	// Catalog
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	FeaturedRestaurants(ctx context.Context) ([]models.Restaurant, error)
	SearchRestaurants(ctx context.Context, q string) ([]models.Restaurant, error)
	Restaurant(ctx context.Context, id uint) (*models.Restaurant, error)
	ListFoods(ctx context.Context) ([]models.Food, error)
	FeaturedFoods(ctx context.Context) ([]models.Food, error)
	SearchFoods(ctx context.Context, q string) ([]models.Food, error)
	Food(ctx context.Context, id uint) (*models.Food, error)
	FoodsByRestaurant(ctx context.Context, restaurantID uint) ([]models.Food, error)

	// Orders
	CreateOrder(ctx context.Context, token string, req OrderRequest) (*models.Order, error)
	UserOrders(ctx context.Context, token string) ([]models.Order, error)
	Order(ctx context.Context, token string, id uint) (*models.Order, error)

	// Admin
	Dashboard(ctx context.Context, token string) (*store.DashboardData, error)
	AllOrders(ctx context.Context, token string, status models.OrderStatus) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, id uint, status models.OrderStatus) (*models.Order, error)
	AssignDelivery(ctx context.Context, token string, orderID, partnerID uint) (*models.Order, error)
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	DeliveryPartners(ctx context.Context, token string) ([]models.DeliveryPartner, error)
	CreateRestaurant(ctx context.Context, token string, r *models.Restaurant) (*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, token string, id uint, fields map[string]interface{}) (*models.Restaurant, error)
	CreateFood(ctx context.Context, token string, f *models.Food) (*models.Food, error)
	UpdateFood(ctx context.Context, token string, id uint, fields map[string]interface{}) (*models.Food, error)
}

// Options selects the collaborator. Exactly one of BaseURL (remote) or
// Store (local) should be set.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client

	Store     *store.Store
	JWTSecret []byte
}

// New builds a Backend from Options. With neither mode configured it fails
// with ErrCollaboratorUnavailable rather than returning a stub.
func New(opts Options) (Backend, error) {
	switch {
	case opts.BaseURL != "":
		return NewREST(opts.BaseURL, opts.HTTPClient), nil
	case opts.Store != nil:
		return NewLocal(opts.Store, opts.JWTSecret), nil
	default:
		return nil, fmt.Errorf("client: neither remote nor local backend configured: %w", ErrCollaboratorUnavailable)
	}
}
