package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureOrderIndexes creates the orders indexes. The unique index on
// payment_intent_id is what makes settlement idempotent: a second write for
// the same authorization fails with a duplicate key instead of producing a
// second order.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	intentIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "payment_intent_id", Value: 1}},
		Options: options.Index().
			SetName("payment_intent_unique").
			SetUnique(true),
	}
	buyerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("buyer_created_index"),
	}

	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{intentIndex, buyerIndex})
	if err != nil {
		log.Println("❌ EnsureOrderIndexes:", err)
		return err
	}
	log.Println("✅ Order indexes ensured")
	return nil
}

// EnsureUserIndexes creates the address-book and notification-feed indexes.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Collection("addresses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("user_id_index"),
	})
	if err != nil {
		log.Println("❌ EnsureUserIndexes: addresses:", err)
		return err
	}

	_, err = db.Collection("notifications").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("seller_created_index"),
	})
	if err != nil {
		log.Println("❌ EnsureUserIndexes: notifications:", err)
		return err
	}

	log.Println("✅ User indexes ensured")
	return nil
}
