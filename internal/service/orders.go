package service

import (
	"context"
	"errors"
	"fmt"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOrders is the append-only order collection. The unique index on
// payment_intent_id (database.EnsureOrderIndexes) turns a duplicate
// settlement into ErrDuplicateOrder instead of a second document.
type MongoOrders struct{}

var _ checkout.OrderStore = (*MongoOrders)(nil)

func (MongoOrders) FindByIntent(ctx context.Context, intentID string) (*models.Order, error) {
	collection := database.MongoOrdersDB.Collection("orders")

	var order models.Order
	err := collection.FindOne(ctx, bson.M{"payment_intent_id": intentID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by intent: %w", err)
	}
	return &order, nil
}

func (MongoOrders) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	_, err := database.MongoOrdersDB.Collection("orders").InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return checkout.ErrDuplicateOrder
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}
