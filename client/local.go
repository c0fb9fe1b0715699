package client

import (
	"context"
	"errors"
	"fmt"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/store"

	"golang.org/x/crypto/bcrypt"
)

// Local is the in-process Backend, a development convenience that serves
// the same typed operations straight from the store. Tokens are real JWTs
// so a session survives a switch between local and remote mode.
type Local struct {
	store  *store.Store
	secret []byte

	// order totals use the same constants the server would
	DeliveryFee float64
	TaxRate     float64
}

func NewLocal(st *store.Store, secret []byte) *Local {
	return &Local{store: st, secret: secret, DeliveryFee: 40, TaxRate: 0.05}
}

func (l *Local) mapErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// authenticate resolves a token to its user, rejecting stale or forged ones.
func (l *Local) authenticate(token string) (*models.User, error) {
	claims, err := middleware.ParseToken(token, l.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", ErrAuth)
	}
	user, err := l.store.UserByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown user", ErrAuth)
	}
	return user, nil
}

func (l *Local) authenticateAdmin(token string) (*models.User, error) {
	user, err := l.authenticate(token)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrAuth)
	}
	return user, nil
}

// ── Auth ────────────────────────────────────────────────────────────────────

func (l *Local) Login(_ context.Context, email, password string) (string, *models.User, error) {
	user, err := l.store.UserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrAuth)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrAuth)
	}
	token, err := middleware.GenerateToken(user, l.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (l *Local) Register(_ context.Context, reg Registration) (string, *models.User, error) {
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return "", nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if _, err := l.store.UserByEmail(reg.Email); err == nil {
		return "", nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	user := &models.User{
		Name:          reg.Name,
		Email:         reg.Email,
		PasswordHash:  string(hash),
		Role:          models.RoleCustomer,
		ContactNumber: reg.ContactNumber,
		Address:       reg.Address,
	}
	if err := l.store.CreateUser(user); err != nil {
		return "", nil, err
	}
	token, err := middleware.GenerateToken(user, l.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (l *Local) CurrentUser(_ context.Context, token string) (*models.User, error) {
	return l.authenticate(token)
}

func (l *Local) UpdateProfile(_ context.Context, token string, fields map[string]interface{}) (*models.User, error) {
	user, err := l.authenticate(token)
	if err != nil {
		return nil, err
	}
	updated, err := l.store.UpdateUser(user.ID, fields)
	return updated, l.mapErr(err)
}

// ── Catalog ─────────────────────────────────────────────────────────────────

func (l *Local) ListRestaurants(context.Context) ([]models.Restaurant, error) {
	return l.store.ListRestaurants()
}

func (l *Local) FeaturedRestaurants(context.Context) ([]models.Restaurant, error) {
	return l.store.FeaturedRestaurants()
}

func (l *Local) SearchRestaurants(_ context.Context, q string) ([]models.Restaurant, error) {
	return l.store.SearchRestaurants(q)
}

func (l *Local) Restaurant(_ context.Context, id uint) (*models.Restaurant, error) {
	r, err := l.store.RestaurantByID(id)
	return r, l.mapErr(err)
}

func (l *Local) ListFoods(context.Context) ([]models.Food, error) {
	return l.store.ListFoods()
}

func (l *Local) FeaturedFoods(context.Context) ([]models.Food, error) {
	return l.store.FeaturedFoods()
}

func (l *Local) SearchFoods(_ context.Context, q string) ([]models.Food, error) {
	return l.store.SearchFoods(q)
}

func (l *Local) Food(_ context.Context, id uint) (*models.Food, error) {
	f, err := l.store.FoodByID(id)
	return f, l.mapErr(err)
}

func (l *Local) FoodsByRestaurant(_ context.Context, restaurantID uint) ([]models.Food, error) {
	return l.store.FoodsByRestaurant(restaurantID)
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (l *Local) CreateOrder(_ context.Context, token string, req OrderRequest) (*models.Order, error) {
	user, err := l.authenticate(token)
	if err != nil {
		return nil, err
	}
	items := make([]store.OrderItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, store.OrderItemRequest{FoodID: it.FoodID, Quantity: it.Quantity})
	}
	order, err := l.store.PlaceOrder(store.PlaceOrderParams{
		CustomerID:      user.ID,
		RestaurantID:    req.RestaurantID,
		PaymentType:     req.PaymentType,
		DeliveryAddress: req.DeliveryAddress,
		ContactNumber:   req.ContactNumber,
		Items:           items,
		DeliveryFee:     l.DeliveryFee,
		TaxRate:         l.TaxRate,
	})
	return order, l.mapErr(err)
}

func (l *Local) UserOrders(_ context.Context, token string) ([]models.Order, error) {
	user, err := l.authenticate(token)
	if err != nil {
		return nil, err
	}
	return l.store.OrdersByCustomer(user.ID)
}

func (l *Local) Order(_ context.Context, token string, id uint) (*models.Order, error) {
	user, err := l.authenticate(token)
	if err != nil {
		return nil, err
	}
	order, err := l.store.OrderByID(id)
	if err != nil {
		return nil, l.mapErr(err)
	}
	if order.CustomerID != user.ID && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: this order does not belong to you", ErrAuth)
	}
	return order, nil
}

// ── Admin ───────────────────────────────────────────────────────────────────

func (l *Local) Dashboard(_ context.Context, token string) (*store.DashboardData, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	return l.store.Dashboard()
}

func (l *Local) AllOrders(_ context.Context, token string, status models.OrderStatus) ([]models.Order, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	return l.store.AllOrders(status)
}

func (l *Local) UpdateOrderStatus(_ context.Context, token string, id uint, status models.OrderStatus) (*models.Order, error) {
	admin, err := l.authenticateAdmin(token)
	if err != nil {
		return nil, err
	}
	order, err := l.store.UpdateOrderStatus(id, status, admin.ID)
	return order, l.mapErr(err)
}

func (l *Local) AssignDelivery(_ context.Context, token string, orderID, partnerID uint) (*models.Order, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	order, err := l.store.AssignDeliveryPartner(orderID, partnerID)
	return order, l.mapErr(err)
}

func (l *Local) ListUsers(_ context.Context, token string) ([]models.User, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	return l.store.ListUsers("")
}

func (l *Local) DeliveryPartners(_ context.Context, token string) ([]models.DeliveryPartner, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	return l.store.ListDeliveryPartners()
}

func (l *Local) CreateRestaurant(_ context.Context, token string, r *models.Restaurant) (*models.Restaurant, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	if err := l.store.CreateRestaurant(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (l *Local) UpdateRestaurant(_ context.Context, token string, id uint, fields map[string]interface{}) (*models.Restaurant, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	r, err := l.store.UpdateRestaurant(id, fields)
	return r, l.mapErr(err)
}

func (l *Local) CreateFood(_ context.Context, token string, f *models.Food) (*models.Food, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	if _, err := l.store.RestaurantByID(f.RestaurantID); err != nil {
		return nil, l.mapErr(err)
	}
	if err := l.store.CreateFood(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (l *Local) UpdateFood(_ context.Context, token string, id uint, fields map[string]interface{}) (*models.Food, error) {
	if _, err := l.authenticateAdmin(token); err != nil {
		return nil, err
	}
	f, err := l.store.UpdateFood(id, fields)
	return f, l.mapErr(err)
}
