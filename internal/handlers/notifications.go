package handlers

import (
	"net/http"

	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/notifications
func GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)
	cursor, err := database.MongoUsersDB.Collection("notifications").
		Find(c.Request.Context(), bson.M{"seller_id": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read notifications"})
		return
	}
	defer cursor.Close(c.Request.Context())

	notifications := []models.SellerNotification{}
	if err := cursor.All(c.Request.Context(), &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode notifications"})
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread": unread})
}

// PATCH /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	result, err := database.MongoUsersDB.Collection("notifications").UpdateOne(
		c.Request.Context(),
		bson.M{"_id": oid, "seller_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
