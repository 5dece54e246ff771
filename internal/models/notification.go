package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SellerNotification is one entry of a seller's feed, written fire-and-forget
// when an order containing their listing settles.
type SellerNotification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SellerID  string             `json:"seller_id" bson:"seller_id"`
	OrderID   string             `json:"order_id" bson:"order_id"`
	Type      string             `json:"type" bson:"type"` // "item_sold"
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	Items     []OrderItem        `json:"items" bson:"items"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
