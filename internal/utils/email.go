package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"tsurigu_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendEmail delivers one HTML mail through the configured SMTP relay, with an
// optional PDF attachment.
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@tsurigu-market.jp"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("receipt_tsurigu.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending e-mail to", to)
	return client.DialAndSend(msg)
}

// Yen formats a JPY amount for display.
func Yen(amount int64) string {
	return fmt.Sprintf("¥%d", amount)
}

// GenerateOrderConfirmationHTML builds the buyer confirmation mail body.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
			</tr>`, item.Title, item.SellerName, item.Quantity, Yen(item.UnitPrice*int64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="ja">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #1a6b54;">🎣 Thank you for your order!</h2>
		<p>Your payment was confirmed and your order is on its way to the sellers.</p>

		<h3>Order #%s</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Seller</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p style="text-align: right; margin: 4px 0;">Subtotal: <strong>%s</strong></p>
		<p style="text-align: right; margin: 4px 0;">Shipping: <strong>%s</strong></p>
		<p style="text-align: right; font-size: 18px;">Total: <strong>%s</strong></p>

		<p style="color: #666; font-size: 13px;">Ships to: %s %s %s %s</p>
		<p style="color: #999; font-size: 12px;">Your receipt is attached as PDF. This mailbox is not monitored.</p>
	</div>
</body>
</html>`,
		order.ID.Hex()[:8], itemsHTML,
		Yen(order.Subtotal), Yen(order.ShippingFee), Yen(order.TotalAmount),
		order.ShippingAddress.PostalCode, order.ShippingAddress.Region,
		order.ShippingAddress.City, order.ShippingAddress.Street)
}

// GenerateSellerSaleHTML builds the "your item sold" mail body for one seller.
func GenerateSellerSaleHTML(order models.Order, sellerID string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		if item.SellerID != sellerID {
			continue
		}
		itemsHTML += fmt.Sprintf(`<li>%s — %s</li>`, item.Title, Yen(item.UnitPrice*int64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="ja">
<head><meta charset="UTF-8"><title>Item sold</title></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<div style="max-width: 600px; margin: auto;">
		<h2 style="color: #1a6b54;">🎉 Your gear found a new home!</h2>
		<p>The following items from your listings were just purchased (order #%s):</p>
		<ul>%s</ul>
		<p>Please prepare the shipment. The delivery address is available on the order page.</p>
	</div>
</body>
</html>`, order.ID.Hex()[:8], itemsHTML)
}
