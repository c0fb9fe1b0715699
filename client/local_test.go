package client

import (
	"context"
	"testing"

	"food-ordering-api/models"
	"food-ordering-api/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLocalBackend(t *testing.T) *Local {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Food{},
		&models.Order{}, &models.OrderItem{}, &models.OrderStatusHistory{},
		&models.DeliveryPartner{},
	))
	st := store.New(db)
	require.NoError(t, st.SeedDemo())
	return NewLocal(st, []byte("test-secret"))
}

func TestLocalLoginAndOrder(t *testing.T) {
	ctx := context.Background()
	backend := newLocalBackend(t)

	token, user, err := backend.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, models.RoleCustomer, user.Role)

	_, _, err = backend.Login(ctx, "demo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuth)

	order, err := backend.CreateOrder(ctx, token, OrderRequest{
		RestaurantID: 302,
		PaymentType:  "cod",
		Items:        []OrderItemSnapshot{{FoodID: 102, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	// The collaborator recomputes the total from its own prices:
	// subtotal 31.98, fee 40, tax round(1.599) = 2
	assert.InDelta(t, 73.98, order.TotalAmount, 1e-9)

	orders, err := backend.UserOrders(ctx, token)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = backend.Order(ctx, token, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalRejectsForgedTokens(t *testing.T) {
	ctx := context.Background()
	backend := newLocalBackend(t)

	_, err := backend.CurrentUser(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrAuth)

	// A token signed with a different secret is forged, not expired.
	other := newLocalBackend(t)
	other.secret = []byte("other-secret")
	token, _, err := other.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	_, err = backend.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestLocalAdminGate(t *testing.T) {
	ctx := context.Background()
	backend := newLocalBackend(t)

	customer, _, err := backend.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	_, err = backend.Dashboard(ctx, customer)
	assert.ErrorIs(t, err, ErrAuth)

	admin, _, err := backend.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	data, err := backend.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.TotalCustomers)

	order, err := backend.CreateOrder(ctx, customer, OrderRequest{
		RestaurantID: 301,
		PaymentType:  "card",
		Items:        []OrderItemSnapshot{{FoodID: 101, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = backend.UpdateOrderStatus(ctx, customer, order.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrAuth)

	updated, err := backend.UpdateOrderStatus(ctx, admin, order.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
}

func TestLocalRegisterAlwaysCreatesCustomers(t *testing.T) {
	ctx := context.Background()
	backend := newLocalBackend(t)

	_, user, err := backend.Register(ctx, Registration{
		Name: "New User", Email: "new@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)

	_, _, err = backend.Register(ctx, Registration{
		Name: "Dup", Email: "new@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
