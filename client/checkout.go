package client

import (
	"context"
	"fmt"
	"math"

	"food-ordering-api/cart"
	"food-ordering-api/models"

	"github.com/go-playground/validator/v10"
)

// DeliveryDetails are the fields checkout requires before submitting.
type DeliveryDetails struct {
	Address       string `validate:"required"`
	ContactNumber string `validate:"required"`
	PaymentType   string `validate:"required,oneof=cod card upi"`
}

// Totals is the order summary shown at checkout.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Checkout converts cart contents into an order. The delivery fee is a
// flat constant and tax is a fixed rate on the item subtotal, rounded to
// the nearest unit.
type Checkout struct {
	Cart    *cart.Cart
	Session *Session
	Backend Backend

	DeliveryFee float64
	TaxRate     float64

	validate *validator.Validate
}

func NewCheckout(c *cart.Cart, s *Session, b Backend) *Checkout {
	return &Checkout{
		Cart:        c,
		Session:     s,
		Backend:     b,
		DeliveryFee: 40,
		TaxRate:     0.05,
		validate:    validator.New(),
	}
}

// Quote computes the totals for the current cart contents.
func (co *Checkout) Quote(ctx context.Context) (*Totals, error) {
	subtotal, err := co.Cart.Total(ctx)
	if err != nil {
		return nil, err
	}
	tax := math.Round(subtotal * co.TaxRate)
	return &Totals{
		Subtotal:    subtotal,
		DeliveryFee: co.DeliveryFee,
		Tax:         tax,
		Total:       subtotal + co.DeliveryFee + tax,
	}, nil
}

// Submit places the order. On success the cart is cleared and the created
// order (with its assigned id) returned; on any failure the cart is left
// untouched.
func (co *Checkout) Submit(ctx context.Context, details DeliveryDetails) (*models.Order, error) {
	if err := co.validate.Struct(details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !co.Session.IsAuthenticated() {
		return nil, fmt.Errorf("%w: log in before placing an order", ErrAuth)
	}

	lines, err := co.Cart.Lines(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	totals, err := co.Quote(ctx)
	if err != nil {
		return nil, err
	}

	req := OrderRequest{
		RestaurantID:    lines[0].RestaurantID,
		PaymentType:     details.PaymentType,
		DeliveryAddress: details.Address,
		ContactNumber:   details.ContactNumber,
		TotalAmount:     totals.Total,
		Items:           make([]OrderItemSnapshot, 0, len(lines)),
	}
	for _, l := range lines {
		req.Items = append(req.Items, OrderItemSnapshot{
			FoodID:    l.FoodID,
			FoodName:  l.FoodName,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	order, err := co.Backend.CreateOrder(ctx, co.Session.Token(), req)
	if err != nil {
		return nil, err
	}

	if err := co.Cart.Clear(ctx); err != nil {
		// The order exists; a failed local clear must not look like a
		// failed submission.
		return order, nil
	}
	return order, nil
}
