package handlers

import (
	"net/http"

	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GET /api/addresses
func GetAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	cursor, err := database.MongoUsersDB.Collection("addresses").
		Find(c.Request.Context(), bson.M{"user_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read addresses"})
		return
	}
	defer cursor.Close(c.Request.Context())

	addresses := []models.Address{}
	if err := cursor.All(c.Request.Context(), &addresses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode addresses"})
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	address.ID = primitive.NewObjectID()
	address.UserID = userID

	if !address.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postal_code, region, city and street are required"})
		return
	}

	collection := database.MongoUsersDB.Collection("addresses")

	// First address becomes the default automatically.
	count, err := collection.CountDocuments(c.Request.Context(), bson.M{"user_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read addresses"})
		return
	}
	if count == 0 {
		address.IsDefault = true
	} else if address.IsDefault {
		if err := unsetDefault(c, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update default address"})
			return
		}
	}

	if _, err := collection.InsertOne(c.Request.Context(), &address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save address"})
		return
	}

	c.JSON(http.StatusCreated, address)
}

// PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if !address.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postal_code, region, city and street are required"})
		return
	}

	if address.IsDefault {
		if err := unsetDefault(c, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update default address"})
			return
		}
	}

	result, err := database.MongoUsersDB.Collection("addresses").UpdateOne(
		c.Request.Context(),
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{
			"postal_code": address.PostalCode,
			"region":      address.Region,
			"city":        address.City,
			"street":      address.Street,
			"building":    address.Building,
			"is_default":  address.IsDefault,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update address"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
}

// DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return
	}

	result, err := database.MongoUsersDB.Collection("addresses").
		DeleteOne(c.Request.Context(), bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete address"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func unsetDefault(c *gin.Context, userID string) error {
	_, err := database.MongoUsersDB.Collection("addresses").UpdateMany(
		c.Request.Context(),
		bson.M{"user_id": userID, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false}},
	)
	return err
}
