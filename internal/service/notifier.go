package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"
	"tsurigu_back_end/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// FanoutNotifier delivers the post-settlement side effects: seller feed
// entries with a live websocket push, seller and buyer emails, the PDF
// receipt and the search de-index. Everything is fire-and-forget — a failed
// notification never fails the order.
type FanoutNotifier struct{}

var _ checkout.Notifier = (*FanoutNotifier)(nil)

func (FanoutNotifier) OrderPlaced(order *models.Order, buyerEmail string) {
	o := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		notifySellers(ctx, &o)
		for _, item := range o.Items {
			DeindexListing(ctx, item.ProductID)
		}
		sendBuyerReceipt(ctx, &o, buyerEmail)
	}()
}

func notifySellers(ctx context.Context, order *models.Order) {
	for _, sellerID := range order.SellerIDs() {
		var items []models.OrderItem
		for _, item := range order.Items {
			if item.SellerID == sellerID {
				items = append(items, item)
			}
		}

		notification := models.SellerNotification{
			SellerID:  sellerID,
			OrderID:   order.ID.Hex(),
			Type:      "item_sold",
			Title:     "Your gear sold! 🎣",
			Body:      fmt.Sprintf("%d item(s) from your listings were purchased.", len(items)),
			Items:     items,
			CreatedAt: time.Now(),
		}

		if _, err := database.MongoUsersDB.Collection("notifications").InsertOne(ctx, &notification); err != nil {
			log.Printf("❌ Could not write notification for seller %s: %v", sellerID, err)
		}

		// Live push for connected sellers.
		if payload, err := json.Marshal(notification); err == nil {
			database.Redis.Publish(ctx, "notify:"+sellerID, payload)
		}

		sendSellerEmail(ctx, order, sellerID)
	}
}

// sendSellerEmail mails the seller if their profile carries an address.
// Profiles are owned by the auth service; missing ones are skipped quietly.
func sendSellerEmail(ctx context.Context, order *models.Order, sellerID string) {
	var profile struct {
		Email string `bson:"email"`
	}
	err := database.MongoUsersDB.Collection("users").
		FindOne(ctx, bson.M{"user_id": sellerID}).Decode(&profile)
	if err != nil || profile.Email == "" {
		return
	}

	html := utils.GenerateSellerSaleHTML(*order, sellerID)
	if err := utils.SendEmail(profile.Email, "🎉 Your item sold - Tsurigu Market", html, nil); err != nil {
		log.Printf("❌ Seller email to %s failed: %v", sellerID, err)
	}
}

func sendBuyerReceipt(ctx context.Context, order *models.Order, buyerEmail string) {
	if buyerEmail == "" {
		log.Printf("⚠️ Order %s has no buyer email, skipping confirmation", order.ID.Hex())
		return
	}

	pdf, err := utils.RenderReceiptPDF(*order)
	if err != nil {
		log.Printf("❌ Receipt PDF generation failed for %s: %v", order.ID.Hex(), err)
		pdf = nil
	}

	if pdf != nil {
		if err := ArchiveReceipt(ctx, order.ID.Hex(), pdf); err != nil {
			log.Printf("⚠️ Receipt archive failed for %s: %v", order.ID.Hex(), err)
		}
	}

	html := utils.GenerateOrderConfirmationHTML(*order)
	if err := utils.SendEmail(buyerEmail, "✅ Order confirmed - Tsurigu Market", html, pdf); err != nil {
		log.Printf("❌ Confirmation email failed: %v", err)
	} else {
		log.Println("📧 Confirmation email sent to", buyerEmail)
	}
}
