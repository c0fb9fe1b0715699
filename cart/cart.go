// Package cart implements the client-held shopping cart. A cart holds
// line items for at most one restaurant at a time and persists every
// mutation synchronously to its backing store.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"food-ordering-api/kv"
)

// ErrDifferentRestaurant is returned by Add when the cart already holds
// items from another restaurant. The caller decides whether to prompt the
// user and Clear before retrying; Add never clears on its own.
var ErrDifferentRestaurant = errors.New("cart: item belongs to a different restaurant")

// DefaultKey is the storage key carts persist under.
const DefaultKey = "foodCart"

// Line is one food entry in the cart, a price/name snapshot of the food at
// the moment it was added.
type Line struct {
	FoodID         uint    `json:"food_id"`
	FoodName       string  `json:"food_name"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	RestaurantID   uint    `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	IsVegetarian   bool    `json:"is_vegetarian,omitempty"`
}

// RestaurantInfo identifies the restaurant all cart lines belong to.
type RestaurantInfo struct {
	RestaurantID   uint   `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name,omitempty"`
}

// Cart reads and writes cart lines through a kv.Store. It carries no state
// of its own, so concurrent instances over the same store behave like
// multiple browser tabs: last writer wins.
type Cart struct {
	store kv.Store
	key   string
}

func New(store kv.Store) *Cart {
	return &Cart{store: store, key: DefaultKey}
}

// Add appends a line, or merges quantities when the food is already in the
// cart. Adding from a different restaurant than the current contents fails
// with ErrDifferentRestaurant.
func (c *Cart) Add(ctx context.Context, line Line) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("cart: quantity must be positive, got %d", line.Quantity)
	}
	lines, err := c.load(ctx)
	if err != nil {
		return err
	}
	if len(lines) > 0 && lines[0].RestaurantID != line.RestaurantID {
		return ErrDifferentRestaurant
	}
	merged := false
	for i := range lines {
		if lines[i].FoodID == line.FoodID {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	return c.save(ctx, lines)
}

// UpdateQuantity sets the quantity of a line; qty <= 0 removes it. Absent
// food ids are a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, foodID uint, qty int) error {
	lines, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].FoodID != foodID {
			continue
		}
		if qty <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = qty
		}
		return c.save(ctx, lines)
	}
	return nil
}

// Remove filters the line out; absent ids are not an error.
func (c *Cart) Remove(ctx context.Context, foodID uint) error {
	lines, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l.FoodID != foodID {
			kept = append(kept, l)
		}
	}
	return c.save(ctx, kept)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.save(ctx, nil)
}

// Lines returns the current cart contents in insertion order.
func (c *Cart) Lines(ctx context.Context) ([]Line, error) {
	return c.load(ctx)
}

// Total is the sum of unit_price * quantity over all lines.
func (c *Cart) Total(ctx context.Context) (float64, error) {
	lines, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total, nil
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount(ctx context.Context) (int, error) {
	lines, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count, nil
}

// RestaurantContext returns the restaurant all lines share, or nil for an
// empty cart.
func (c *Cart) RestaurantContext(ctx context.Context) (*RestaurantInfo, error) {
	lines, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return &RestaurantInfo{
		RestaurantID:   lines[0].RestaurantID,
		RestaurantName: lines[0].RestaurantName,
	}, nil
}

func (c *Cart) load(ctx context.Context) ([]Line, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("cart: decode stored cart: %w", err)
	}
	return lines, nil
}

func (c *Cart) save(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart: encode cart: %w", err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}
