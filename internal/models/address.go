package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"user_id" bson:"user_id"`
	PostalCode string             `json:"postal_code" bson:"postal_code"`
	Region     string             `json:"region" bson:"region"` // prefecture, keys the shipping fee table
	City       string             `json:"city" bson:"city"`
	Street     string             `json:"street" bson:"street"`
	Building   string             `json:"building,omitempty" bson:"building,omitempty"`
	IsDefault  bool               `json:"is_default" bson:"is_default"`
}

// Complete reports whether the address can be shipped to. An incomplete
// address blocks checkout before any authorization is opened.
func (a *Address) Complete() bool {
	return a.PostalCode != "" && a.Region != "" && a.City != "" && a.Street != ""
}

// AddressSnapshot is the point-in-time copy embedded in an order. Later edits
// to the address book must not change where a past order shipped.
type AddressSnapshot struct {
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Region     string `json:"region" bson:"region"`
	City       string `json:"city" bson:"city"`
	Street     string `json:"street" bson:"street"`
	Building   string `json:"building,omitempty" bson:"building,omitempty"`
}

func (a *Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		PostalCode: a.PostalCode,
		Region:     a.Region,
		City:       a.City,
		Street:     a.Street,
		Building:   a.Building,
	}
}
