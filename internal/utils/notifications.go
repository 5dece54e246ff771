package utils

import (
	"fmt"
	"log"

	"tsurigu_back_end/internal/models"
)

// SendOrderStatusEmail notifies the buyer about an order status change.
func SendOrderStatusEmail(order models.Order, userEmail, newStatus string) error {
	subject := getStatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	if err := SendEmail(userEmail, subject, html, nil); err != nil {
		log.Printf("❌ Status email failed: %v", err)
		return err
	}

	log.Printf("📧 Status email sent: %s → %s", newStatus, userEmail)
	return nil
}

func getStatusEmailSubject(status string) string {
	switch status {
	case models.OrderShipped:
		return "📦 Your order is on its way - Tsurigu Market"
	case models.OrderDelivered:
		return "🎉 Your order was delivered - Tsurigu Market"
	case models.OrderCancelled:
		return "❌ Your order was cancelled - Tsurigu Market"
	default:
		return "📋 Update on your order - Tsurigu Market"
	}
}

func getStatusMessage(status string) string {
	switch status {
	case models.OrderShipped:
		return "Good news! The seller handed your gear to the carrier."
	case models.OrderDelivered:
		return "Your order was delivered. Tight lines!"
	case models.OrderCancelled:
		return "Your order was cancelled. If you did not request this, please contact support."
	default:
		return "The status of your order changed."
	}
}

func generateStatusEmailHTML(order models.Order, status string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="ja">
<head><meta charset="UTF-8"><title>Order update</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #1a6b54;">Order #%s</h2>
		<p>%s</p>
		<p style="margin: 20px 0;">
			<span style="display: inline-block; padding: 8px 18px; background-color: #1a6b54; color: white; border-radius: 20px; font-size: 13px; text-transform: uppercase;">%s</span>
		</p>
		<p>Total: <strong>%s</strong></p>
		<p style="color: #999; font-size: 12px;">This mailbox is not monitored.</p>
	</div>
</body>
</html>`, order.ID.Hex()[:8], getStatusMessage(status), status, Yen(order.TotalAmount))
}
