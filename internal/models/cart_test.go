package models

import "testing"

func TestMergeLine(t *testing.T) {
	cart := MergeLine(nil, CartLine{ProductID: "rod-1", Quantity: 1})
	cart = MergeLine(cart, CartLine{ProductID: "reel-1", Quantity: 2})
	cart = MergeLine(cart, CartLine{ProductID: "rod-1", Quantity: 1})

	if len(cart) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart))
	}
	if cart[0].ProductID != "rod-1" || cart[0].Quantity != 2 {
		t.Errorf("rod-1 line = %+v, want quantity 2", cart[0])
	}
	if cart[1].ProductID != "reel-1" || cart[1].Quantity != 2 {
		t.Errorf("reel-1 line = %+v, want quantity 2", cart[1])
	}
}

func TestAddressComplete(t *testing.T) {
	address := Address{PostalCode: "150-0001", Region: "Tokyo", City: "Shibuya", Street: "1-2-3"}
	if !address.Complete() {
		t.Error("expected complete address")
	}

	address.Region = ""
	if address.Complete() {
		t.Error("address without region must be incomplete")
	}
}
