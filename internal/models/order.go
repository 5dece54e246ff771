package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Transitions are forward-only:
// placed → shipped → delivered, or → cancelled from placed/shipped.
const (
	OrderPlaced    = "placed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment status values on the order record.
const (
	PaymentAuthorized = "authorized"
	PaymentCaptured   = "captured"
	PaymentRefunded   = "refunded"
)

// Order is the immutable settlement record. Amounts and item snapshots are
// captured at settlement time and never recomputed afterwards.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BuyerID         string             `json:"buyer_id" bson:"buyer_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Subtotal        int64              `json:"subtotal" bson:"subtotal"`
	ShippingFee     int64              `json:"shipping_fee" bson:"shipping_fee"`
	TotalAmount     int64              `json:"total_amount" bson:"total_amount"`
	Currency        string             `json:"currency" bson:"currency"`
	PaymentMethod   string             `json:"payment_method" bson:"payment_method"`
	PaymentIntentID string             `json:"payment_intent_id" bson:"payment_intent_id"`
	ShippingAddress AddressSnapshot    `json:"shipping_address" bson:"shipping_address"`
	OrderStatus     string             `json:"order_status" bson:"order_status"`
	PaymentStatus   string             `json:"payment_status" bson:"payment_status"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// OrderItem is a denormalized point-in-time copy of the listing and its
// seller. Catalog edits or deletions after settlement never touch it.
type OrderItem struct {
	ProductID     string `json:"product_id" bson:"product_id"`
	Title         string `json:"title" bson:"title"`
	UnitPrice     int64  `json:"unit_price" bson:"unit_price"`
	Quantity      int    `json:"quantity" bson:"quantity"`
	SellerID      string `json:"seller_id" bson:"seller_id"`
	SellerName    string `json:"seller_name" bson:"seller_name"`
	Category      string `json:"category" bson:"category"`
	Condition     string `json:"condition" bson:"condition"`
	ShippingPayer string `json:"shipping_payer" bson:"shipping_payer"`
	ImageURL      string `json:"image_url" bson:"image_url"`
}

// PriceBreakdown is derived, never stored on its own: always recomputed from
// fresh ProductSnapshots plus the destination region.
type PriceBreakdown struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Total       int64 `json:"total"`
}

var orderTransitions = map[string][]string{
	OrderPlaced:  {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered, OrderCancelled},
}

// CanTransition reports whether an order status change is a legal forward
// move. Delivered and cancelled are terminal.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SellerIDs returns the distinct sellers in the order, in item order.
func (o *Order) SellerIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, item := range o.Items {
		if !seen[item.SellerID] {
			seen[item.SellerID] = true
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}
