package checkout

import (
	"testing"

	"tsurigu_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReconcileTokyoRod(t *testing.T) {
	rod := rodListing()
	validated := []ValidatedLine{{
		Line:    models.CartLine{ProductID: rod.ID, Quantity: 1},
		Product: rod,
	}}

	breakdown := Reconcile(validated, "Tokyo", testFees)

	assert.Equal(t, int64(8000), breakdown.Subtotal)
	assert.Equal(t, int64(700), breakdown.ShippingFee)
	assert.Equal(t, int64(8700), breakdown.Total)
}

func TestReconcileSellerPaysShipping(t *testing.T) {
	reel := reelListing()
	validated := []ValidatedLine{{
		Line:    models.CartLine{ProductID: reel.ID, Quantity: 1},
		Product: reel,
	}}

	breakdown := Reconcile(validated, "Okinawa", testFees)

	assert.Equal(t, int64(5000), breakdown.Subtotal)
	assert.Equal(t, int64(0), breakdown.ShippingFee)
	assert.Equal(t, int64(5000), breakdown.Total)
}

// Server snapshots are the only price source. A line with quantity 2 is
// priced at twice the catalog price, whatever the client claims.
func TestReconcileUsesCatalogPrices(t *testing.T) {
	rod := rodListing()
	reel := reelListing()
	validated := []ValidatedLine{
		{Line: models.CartLine{ProductID: rod.ID, Quantity: 2}, Product: rod},
		{Line: models.CartLine{ProductID: reel.ID, Quantity: 1}, Product: reel},
	}

	breakdown := Reconcile(validated, "Hokkaido", testFees)

	assert.Equal(t, int64(2*8000+5000), breakdown.Subtotal)
	assert.Equal(t, int64(1200), breakdown.ShippingFee)
	assert.Equal(t, breakdown.Subtotal+breakdown.ShippingFee, breakdown.Total)
}

// A ¥3,000 buyer-pays lure plus a ¥5,000 seller-pays reel shipped to Tokyo:
// one buyer-paid item charges the full regional fee.
func TestReconcileMixedPayersTokyo(t *testing.T) {
	lure := models.ProductSnapshot{
		ID: "lure-1", Price: 3000,
		Status: models.ProductAvailable, ShippingPayer: models.ShippingPayerBuyer,
	}
	reel := reelListing() // 5000, seller pays

	breakdown := Reconcile([]ValidatedLine{
		{Line: models.CartLine{ProductID: lure.ID, Quantity: 1}, Product: lure},
		{Line: models.CartLine{ProductID: reel.ID, Quantity: 1}, Product: reel},
	}, "Tokyo", testFees)

	assert.Equal(t, int64(8000), breakdown.Subtotal)
	assert.Equal(t, int64(700), breakdown.ShippingFee)
	assert.Equal(t, int64(8700), breakdown.Total)
}

func TestOrderItemsFreezeSnapshot(t *testing.T) {
	rod := rodListing()
	items := orderItems([]ValidatedLine{{
		Line:    models.CartLine{ProductID: rod.ID, Quantity: 1},
		Product: rod,
	}})

	assert.Len(t, items, 1)
	assert.Equal(t, rod.ID, items[0].ProductID)
	assert.Equal(t, rod.Title, items[0].Title)
	assert.Equal(t, rod.Price, items[0].UnitPrice)
	assert.Equal(t, rod.SellerID, items[0].SellerID)
	assert.Equal(t, rod.Condition, items[0].Condition)
}
