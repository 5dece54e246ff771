package handlers

import (
	"io"
	"log"
	"net/http"
	"os"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83/webhook"
)

// POST /api/payment-intent
// Runs validation, server-side reconciliation and opens (or reuses) the
// Stripe PaymentIntent. The client total is never read: the response carries
// the authoritative breakdown and the client secret matching it.
func CreatePaymentIntent(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	var input struct {
		AddressID string            `json:"addressId"`
		Items     []models.CartLine `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	buyer := checkout.Buyer{ID: userID, Email: email}
	result, err := svc.OpenIntent(c.Request.Context(), buyer, input.AddressID, input.Items)
	if err != nil {
		if result != nil && len(result.Dropped) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "No purchasable item left in cart",
				"dropped": result.Dropped,
			})
			return
		}
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": result.IntentID,
		"clientSecret":    result.ClientSecret,
		"breakdown":       result.Breakdown,
		"items":           result.Items,
		"dropped":         result.Dropped,
		"reused":          result.Reused,
	})
}

// POST /api/orders
// Settles an authorized payment into an order. Settling the same intent twice
// returns the existing order, not an error.
func PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentIntentId required"})
		return
	}

	order, already, err := svc.Settle(c.Request.Context(), userID, input.PaymentIntentID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if already {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"orderId":       order.ID.Hex(),
		"orderStatus":   order.OrderStatus,
		"paymentStatus": order.PaymentStatus,
		"total":         order.TotalAmount,
		"already":       already,
	})
}

// POST /api/stripe/webhook
// Stripe's confirmation path. Converges on the same Settle as the client
// call, so whichever arrives first wins and the other is a no-op.
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("⚠️ Webhook signature check failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.amount_capturable_updated":
		intentID, _ := event.Data.Object["id"].(string)
		if intentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No intent id in event"})
			return
		}

		// Buyer identity comes from the intent metadata here.
		_, already, err := svc.Settle(c.Request.Context(), "", intentID)
		if err != nil {
			log.Printf("❌ Webhook settlement failed for %s: %v", intentID, err)
			// Non-2xx makes Stripe retry, which is what we want for
			// transient failures.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement failed"})
			return
		}
		if already {
			log.Printf("✅ Webhook %s: order already settled", intentID)
		} else {
			log.Printf("💳 Webhook %s: order settled", intentID)
		}
	default:
		// Unhandled event types are acknowledged so Stripe stops resending.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
