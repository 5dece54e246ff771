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

// MongoAddresses reads the buyer's address book. Ownership is enforced in the
// query: an address id belonging to another user simply does not exist.
type MongoAddresses struct{}

var _ checkout.AddressStore = (*MongoAddresses)(nil)

func (MongoAddresses) Get(ctx context.Context, buyerID, addressID string) (*models.Address, error) {
	collection := database.MongoUsersDB.Collection("addresses")

	filter := bson.M{"user_id": buyerID}
	if addressID == "" {
		filter["is_default"] = true
	} else {
		oid, err := primitive.ObjectIDFromHex(addressID)
		if err != nil {
			return nil, fmt.Errorf("invalid address id %q", addressID)
		}
		filter["_id"] = oid
	}

	var address models.Address
	err := collection.FindOne(ctx, filter).Decode(&address)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find address: %w", err)
	}
	return &address, nil
}
