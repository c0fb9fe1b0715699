// Package lifecycle defines the order status state machine. Status is only
// ever mutated through an administrative actor; customers and the kitchen
// observe it.
package lifecycle

import (
	"errors"
	"fmt"

	"food-ordering-api/models"
)

// ErrInvalidTransition is wrapped by every transition rejection.
var ErrInvalidTransition = errors.New("invalid status transition")

// validTransitions is the authoritative state machine definition.
var validTransitions = []struct {
	From models.OrderStatus
	To   models.OrderStatus
}{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusConfirmed, To: models.StatusPreparing},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered},
	// Any non-terminal order can still be cancelled.
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
	{From: models.StatusPreparing, To: models.StatusCancelled},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled},
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// IsTerminal reports whether a status permits no further transitions.
// Delivered and cancelled orders are immutable except for audit fields.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// ValidNext returns all statuses reachable from the given one.
func ValidNext(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order may move between two statuses.
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s to %s. Valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidNext(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
