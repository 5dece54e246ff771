package checkout

import "tsurigu_back_end/internal/models"

// Reconcile computes the authoritative price breakdown from server-fetched
// snapshots. This is the load-bearing invariant of the pipeline: whatever a
// client displayed or proposed, the amount that sizes the payment
// authorization and lands on the order is always recomputed here.
func Reconcile(validated []ValidatedLine, region string, fees FeeTable) models.PriceBreakdown {
	var subtotal int64
	for _, item := range validated {
		subtotal += item.Product.Price * int64(item.Line.Quantity)
	}
	fee := fees.Quote(region, BuyerPays(validated))
	return models.PriceBreakdown{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
	}
}

// orderItems freezes validated lines into denormalized order items so later
// catalog edits or deletions cannot corrupt the historical record.
func orderItems(validated []ValidatedLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(validated))
	for _, v := range validated {
		items = append(items, models.OrderItem{
			ProductID:     v.Product.ID,
			Title:         v.Product.Title,
			UnitPrice:     v.Product.Price,
			Quantity:      v.Line.Quantity,
			SellerID:      v.Product.SellerID,
			SellerName:    v.Product.SellerName,
			Category:      v.Product.Category,
			Condition:     v.Product.Condition,
			ShippingPayer: v.Product.ShippingPayer,
			ImageURL:      v.Product.ImageURL,
		})
	}
	return items
}
