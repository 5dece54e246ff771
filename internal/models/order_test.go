package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderPlaced, OrderShipped, true},
		{OrderPlaced, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, true},

		{OrderPlaced, OrderDelivered, false}, // no skipping shipment
		{OrderShipped, OrderPlaced, false},   // no going back
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderShipped, false},
		{OrderCancelled, OrderShipped, false},
		{OrderPlaced, OrderPlaced, false},
		{"", OrderShipped, false},
		{OrderPlaced, "lost", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSellerIDsDistinct(t *testing.T) {
	order := Order{Items: []OrderItem{
		{ProductID: "a", SellerID: "s1"},
		{ProductID: "b", SellerID: "s2"},
		{ProductID: "c", SellerID: "s1"},
	}}

	ids := order.SellerIDs()
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s2" {
		t.Errorf("SellerIDs() = %v, want [s1 s2]", ids)
	}
}
