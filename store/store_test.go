package store

import (
	"testing"

	"food-ordering-api/lifecycle"
	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
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
	st := New(db)
	require.NoError(t, st.SeedDemo())
	return st
}

func demoCustomer(t *testing.T, st *Store) *models.User {
	t.Helper()
	user, err := st.UserByEmail("demo@example.com")
	require.NoError(t, err)
	return user
}

func demoAdmin(t *testing.T, st *Store) *models.User {
	t.Helper()
	user, err := st.UserByEmail("admin@example.com")
	require.NoError(t, err)
	return user
}

func placeTestOrder(t *testing.T, st *Store, customerID, restaurantID uint, items []OrderItemRequest) *models.Order {
	t.Helper()
	order, err := st.PlaceOrder(PlaceOrderParams{
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		PaymentType:     "cod",
		DeliveryAddress: "123 Demo Street",
		ContactNumber:   "1234567890",
		Items:           items,
		DeliveryFee:     40,
		TaxRate:         0.05,
	})
	require.NoError(t, err)
	return order
}

func TestSeedIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedDemo())

	restaurants, err := st.ListRestaurants()
	require.NoError(t, err)
	assert.Len(t, restaurants, 5)
}

func TestCatalogLookups(t *testing.T) {
	st := newTestStore(t)

	r, err := st.RestaurantByID(301)
	require.NoError(t, err)
	assert.Equal(t, "Southern Spice", r.Name)
	require.Len(t, r.Foods, 1)
	assert.Equal(t, "Margherita Pizza", r.Foods[0].Name)

	_, err = st.RestaurantByID(999)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := st.SearchRestaurants("spice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, uint(301), found[0].ID)

	foods, err := st.FoodsByRestaurant(302)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Chicken Biryani", foods[0].Name)

	featured, err := st.FeaturedFoods()
	require.NoError(t, err)
	assert.Len(t, featured, 2) // the two bestsellers
}

func TestPlaceOrderComputesTotalAndSnapshots(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)

	order := placeTestOrder(t, st, customer.ID, 302, []OrderItemRequest{{FoodID: 102, Quantity: 2}})

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "123 Demo Street", order.DeliveryAddress)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Chicken Biryani", order.Items[0].FoodName)
	assert.InDelta(t, 15.99, order.Items[0].UnitPrice, 1e-9)

	// subtotal 31.98, fee 40, tax round(1.599) = 2
	assert.InDelta(t, 73.98, order.TotalAmount, 1e-9)

	// Later price changes must not rewrite the snapshot.
	_, err := st.UpdateFood(102, map[string]interface{}{"unit_price": 99.0})
	require.NoError(t, err)
	again, err := st.OrderByID(order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 15.99, again.Items[0].UnitPrice, 1e-9)
}

func TestPlaceOrderFallsBackToProfileAddress(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)
	_, err := st.UpdateUser(customer.ID, map[string]interface{}{
		"address":        "77 Profile Road",
		"contact_number": "9998887777",
	})
	require.NoError(t, err)

	order, err := st.PlaceOrder(PlaceOrderParams{
		CustomerID:   customer.ID,
		RestaurantID: 301,
		PaymentType:  "cod",
		Items:        []OrderItemRequest{{FoodID: 101, Quantity: 1}},
		DeliveryFee:  40,
		TaxRate:      0.05,
	})
	require.NoError(t, err)
	assert.Equal(t, "77 Profile Road", order.DeliveryAddress)
	assert.Equal(t, "9998887777", order.ContactNumber)
}

func TestPlaceOrderRejectsForeignFood(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)

	// food 101 belongs to restaurant 301, not 302
	_, err := st.PlaceOrder(PlaceOrderParams{
		CustomerID:   customer.ID,
		RestaurantID: 302,
		PaymentType:  "cod",
		Items:        []OrderItemRequest{{FoodID: 101, Quantity: 1}},
		DeliveryFee:  40,
		TaxRate:      0.05,
	})
	assert.Error(t, err)

	_, err = st.PlaceOrder(PlaceOrderParams{
		CustomerID:   customer.ID,
		RestaurantID: 302,
		PaymentType:  "cod",
		DeliveryFee:  40,
		TaxRate:      0.05,
	})
	assert.Error(t, err)
}

func TestOrderStatusLifecycle(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)
	admin := demoAdmin(t, st)

	order := placeTestOrder(t, st, customer.ID, 301, []OrderItemRequest{{FoodID: 101, Quantity: 1}})

	_, err := st.UpdateOrderStatus(order.ID, models.StatusDelivered, admin.ID)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	for _, status := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		_, err = st.UpdateOrderStatus(order.ID, status, admin.ID)
		require.NoError(t, err)
	}

	final, err := st.OrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, final.Status)
	require.NotNil(t, final.DeliveredTime)

	// Terminal orders are immutable.
	_, err = st.UpdateOrderStatus(order.ID, models.StatusCancelled, admin.ID)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	_, err = st.AssignDeliveryPartner(order.ID, 1)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
}

func TestOrderKeepsStatusHistory(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)
	admin := demoAdmin(t, st)

	order := placeTestOrder(t, st, customer.ID, 301, []OrderItemRequest{{FoodID: 101, Quantity: 1}})

	for _, status := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		_, err := st.UpdateOrderStatus(order.ID, status, admin.ID)
		require.NoError(t, err)
	}

	final, err := st.OrderByID(order.ID)
	require.NoError(t, err)
	require.Len(t, final.StatusHistory, 5) // creation + four transitions

	assert.Equal(t, models.StatusPending, final.StatusHistory[0].ToStatus)
	assert.Equal(t, customer.ID, final.StatusHistory[0].ChangedBy)
	for i, h := range final.StatusHistory[1:] {
		assert.Equal(t, final.StatusHistory[i].ToStatus, h.FromStatus, "trail must chain")
		assert.Equal(t, admin.ID, h.ChangedBy)
	}
	assert.Equal(t, models.StatusDelivered, final.StatusHistory[4].ToStatus)

	// A rejected transition leaves no trace.
	_, err = st.UpdateOrderStatus(order.ID, models.StatusCancelled, admin.ID)
	require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	again, err := st.OrderByID(order.ID)
	require.NoError(t, err)
	assert.Len(t, again.StatusHistory, 5)
}

func TestAssignDeliveryPartner(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)

	order := placeTestOrder(t, st, customer.ID, 301, []OrderItemRequest{{FoodID: 101, Quantity: 1}})

	updated, err := st.AssignDeliveryPartner(order.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveryPartner)
	assert.Equal(t, "Sunita Rao", updated.DeliveryPartner.Name)

	_, err = st.AssignDeliveryPartner(order.ID, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserIgnoresProtectedFields(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)

	updated, err := st.UpdateUser(customer.ID, map[string]interface{}{
		"address": "456 New Street",
		"role":    "admin", // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, "456 New Street", updated.Address)
	assert.Equal(t, models.RoleCustomer, updated.Role)
}

func TestDashboardAggregates(t *testing.T) {
	st := newTestStore(t)
	customer := demoCustomer(t, st)
	admin := demoAdmin(t, st)

	o1 := placeTestOrder(t, st, customer.ID, 301, []OrderItemRequest{{FoodID: 101, Quantity: 3}})
	placeTestOrder(t, st, customer.ID, 302, []OrderItemRequest{{FoodID: 102, Quantity: 1}})

	// Deliver the first order so it counts as revenue.
	for _, status := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing,
		models.StatusOutForDelivery, models.StatusDelivered,
	} {
		_, err := st.UpdateOrderStatus(o1.ID, status, admin.ID)
		require.NoError(t, err)
	}

	data, err := st.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(2), data.TotalOrders)
	assert.Equal(t, int64(1), data.TotalCustomers)
	assert.InDelta(t, o1.TotalAmount, data.TotalRevenue, 1e-9)
	assert.Len(t, data.RecentOrders, 2)

	require.NotEmpty(t, data.TopFoods)
	assert.Equal(t, "Margherita Pizza", data.TopFoods[0].Name)
	assert.Equal(t, 3, data.TopFoods[0].Count)

	require.NotEmpty(t, data.TopRestaurants)
}
