package checkout

import (
	"context"
	"errors"
	"testing"

	"tsurigu_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLinesDropsGoneListing(t *testing.T) {
	env := newTestEnv(rodListing())

	validated, dropped, err := env.svc.ValidateLines(context.Background(), []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
		{ProductID: "deleted-1", Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, validated, 1)
	assert.Equal(t, "rod-1", validated[0].Product.ID)
	assert.Equal(t, []string{"deleted-1"}, dropped)
}

func TestValidateLinesDropsUnavailable(t *testing.T) {
	sold := rodListing()
	sold.Status = models.ProductSold
	env := newTestEnv(sold, reelListing())

	validated, dropped, err := env.svc.ValidateLines(context.Background(), []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
		{ProductID: "reel-1", Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, validated, 1)
	assert.Equal(t, "reel-1", validated[0].Product.ID)
	assert.Equal(t, []string{"rod-1"}, dropped)
}

func TestValidateLinesMergesDuplicates(t *testing.T) {
	env := newTestEnv(rodListing())

	validated, _, err := env.svc.ValidateLines(context.Background(), []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
		{ProductID: "rod-1", Quantity: 2},
	})

	require.NoError(t, err)
	require.Len(t, validated, 1)
	assert.Equal(t, 3, validated[0].Line.Quantity)
}

func TestValidateLinesSkipsMalformed(t *testing.T) {
	env := newTestEnv(rodListing())

	validated, dropped, err := env.svc.ValidateLines(context.Background(), []models.CartLine{
		{ProductID: "", Quantity: 1},
		{ProductID: "rod-1", Quantity: 0},
	})

	require.NoError(t, err)
	assert.Empty(t, validated)
	assert.Empty(t, dropped)
}

// Deleting the only buyer-paid item also drops its shipping fee: the
// remaining seller-paid reel reconciles to 5000/0/5000.
func TestDroppedItemRemovesItsFee(t *testing.T) {
	env := newTestEnv(reelListing()) // the rod listing was deleted

	validated, dropped, err := env.svc.ValidateLines(context.Background(), []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
		{ProductID: "reel-1", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rod-1"}, dropped)

	breakdown := Reconcile(validated, "Tokyo", testFees)
	assert.Equal(t, int64(5000), breakdown.Subtotal)
	assert.Equal(t, int64(0), breakdown.ShippingFee)
	assert.Equal(t, int64(5000), breakdown.Total)
}

// A catalog outage is an error, not a silent drop: dropping everything would
// let a checkout proceed on an empty reconciliation.
func TestValidateLinesInfraErrorSurfaces(t *testing.T) {
	env := newTestEnv(rodListing())
	env.catalog.failNext = errors.New("scylla timeout")

	_, _, err := env.svc.ValidateLines(context.Background(), []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
	})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}
