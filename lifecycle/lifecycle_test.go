package lifecycle

import (
	"testing"

	"food-ordering-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusPreparing, false},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPreparing, true},
		{models.StatusConfirmed, models.StatusDelivered, false},
		{models.StatusPreparing, models.StatusOutForDelivery, true},
		{models.StatusPreparing, models.StatusPending, false},
		{models.StatusOutForDelivery, models.StatusDelivered, true},
		{models.StatusOutForDelivery, models.StatusCancelled, true},
		{models.StatusDelivered, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{"", models.StatusPending, false},
	}
	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if got := err == nil; got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want allowed=%v", tt.from, tt.to, err, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = false, want true", s)
		}
		if nexts := ValidNext(s); len(nexts) != 0 {
			t.Errorf("ValidNext(%q) = %v, want none", s, nexts)
		}
	}
	for _, s := range []models.OrderStatus{models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusOutForDelivery} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = true, want false", s)
		}
	}
}
