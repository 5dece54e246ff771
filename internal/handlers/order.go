package handlers

import (
	"net/http"
	"time"

	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"
	"tsurigu_back_end/internal/service"
	"tsurigu_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/orders/mine
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)
	cursor, err := database.MongoOrdersDB.Collection("orders").
		Find(c.Request.Context(), bson.M{"buyer_id": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read orders"})
		return
	}
	defer cursor.Close(c.Request.Context())

	orders := []models.Order{}
	if err := cursor.All(c.Request.Context(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/sales
// The seller-side view: orders containing at least one of the caller's items.
func GetMySales(c *gin.Context) {
	userID := c.GetString("user_id")

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)
	cursor, err := database.MongoOrdersDB.Collection("orders").
		Find(c.Request.Context(), bson.M{"items.seller_id": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read orders"})
		return
	}
	defer cursor.Close(c.Request.Context())

	orders := []models.Order{}
	if err := cursor.All(c.Request.Context(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not decode orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id
func GetOrder(c *gin.Context) {
	order, ok := loadOrderForParticipant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /api/orders/:id/status
// Moves an order along placed → shipped → delivered, with cancellation
// allowed until delivery. The buyer gets a mail for every move.
func UpdateOrderStatus(c *gin.Context) {
	order, ok := loadOrderForParticipant(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}

	if !models.CanTransition(order.OrderStatus, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
			"from":  order.OrderStatus,
			"to":    input.Status,
		})
		return
	}

	// Shipping is the seller's move, confirming delivery the buyer's.
	userID := c.GetString("user_id")
	switch input.Status {
	case models.OrderShipped:
		if !isSeller(order, userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the seller can mark as shipped"})
			return
		}
	case models.OrderDelivered:
		if order.BuyerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the buyer can confirm delivery"})
			return
		}
	}

	_, err := database.MongoOrdersDB.Collection("orders").UpdateOne(
		c.Request.Context(),
		bson.M{"_id": order.ID, "order_status": order.OrderStatus},
		bson.M{"$set": bson.M{"order_status": input.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update order"})
		return
	}

	if email := buyerEmail(c, order.BuyerID); email != "" {
		go utils.SendOrderStatusEmail(*order, email, input.Status)
	}

	c.JSON(http.StatusOK, gin.H{"orderId": order.ID.Hex(), "orderStatus": input.Status})
}

// GET /api/orders/:id/receipt
// Returns a short-lived download link for the archived PDF receipt.
func GetOrderReceipt(c *gin.Context) {
	order, ok := loadOrderForParticipant(c)
	if !ok {
		return
	}

	url, err := service.SignedReceiptURL(c.Request.Context(), order.ID.Hex(), 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": 900})
}

// loadOrderForParticipant fetches the order and checks the caller is the
// buyer or one of the sellers. Writes the error response itself.
func loadOrderForParticipant(c *gin.Context) (*models.Order, bool) {
	userID := c.GetString("user_id")

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return nil, false
	}

	var order models.Order
	err = database.MongoOrdersDB.Collection("orders").
		FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read order"})
		return nil, false
	}

	if order.BuyerID != userID && !isSeller(&order, userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	return &order, true
}

func isSeller(order *models.Order, userID string) bool {
	for _, id := range order.SellerIDs() {
		if id == userID {
			return true
		}
	}
	return false
}

// buyerEmail resolves the buyer's mail address, preferring the token claim.
func buyerEmail(c *gin.Context, buyerID string) string {
	if c.GetString("user_id") == buyerID {
		if email := c.GetString("email"); email != "" {
			return email
		}
	}

	var profile struct {
		Email string `bson:"email"`
	}
	err := database.MongoUsersDB.Collection("users").
		FindOne(c.Request.Context(), bson.M{"user_id": buyerID}).Decode(&profile)
	if err != nil {
		return ""
	}
	return profile.Email
}
