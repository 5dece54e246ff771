package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"tsurigu_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR encodes the order reference as a PNG QR, returned as a data
// URL ready for an <img src="...">.
func GenerateOrderQR(orderID string) (string, error) {
	png, err := qrcode.Encode("tsurigu:order:"+orderID, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderReceiptPDF renders the order receipt HTML in headless Chrome and
// prints it to PDF.
func RenderReceiptPDF(order models.Order) ([]byte, error) {
	qr, err := GenerateOrderQR(order.ID.Hex())
	if err != nil {
		return nil, err
	}
	html := generateReceiptHTML(order, qr)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

func generateReceiptHTML(order models.Order, qrDataURL string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td><td>%s</td><td>%s</td><td>%d</td><td style="text-align:right">%s</td>
			</tr>`,
			item.Title, item.Condition, item.SellerName, item.Quantity,
			Yen(item.UnitPrice*int64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<style>
	body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #222; margin: 40px; }
	h1 { color: #1a6b54; font-size: 22px; }
	table { width: 100%%; border-collapse: collapse; margin: 24px 0; }
	th, td { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; font-size: 13px; }
	.totals td { border: none; text-align: right; }
	.muted { color: #777; font-size: 12px; }
</style>
</head>
<body>
	<h1>Tsurigu Market — Receipt</h1>
	<p class="muted">Order #%s · %s · Payment: %s</p>

	<table>
		<thead><tr><th>Item</th><th>Condition</th><th>Seller</th><th>Qty</th><th style="text-align:right">Amount</th></tr></thead>
		<tbody>%s</tbody>
	</table>

	<table class="totals">
		<tr><td>Subtotal</td><td>%s</td></tr>
		<tr><td>Shipping fee</td><td>%s</td></tr>
		<tr><td><strong>Total</strong></td><td><strong>%s</strong></td></tr>
	</table>

	<p class="muted">Ships to: %s %s %s %s %s</p>
	<img src="%s" width="96" height="96" alt="order reference">
</body>
</html>`,
		order.ID.Hex()[:8], order.CreatedAt.Format("2006-01-02 15:04"), order.PaymentMethod,
		itemsHTML,
		Yen(order.Subtotal), Yen(order.ShippingFee), Yen(order.TotalAmount),
		order.ShippingAddress.PostalCode, order.ShippingAddress.Region,
		order.ShippingAddress.City, order.ShippingAddress.Street, order.ShippingAddress.Building,
		qrDataURL)
}
