package checkout

import (
	"context"
	"testing"

	"tsurigu_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openAndAuthorize runs a full OpenIntent and simulates the client-side
// payment confirmation, returning the intent id ready to settle.
func openAndAuthorize(t *testing.T, env *testEnv, lines []models.CartLine) string {
	t.Helper()
	result, err := env.svc.OpenIntent(context.Background(), testBuyer, "", lines)
	require.NoError(t, err)
	env.payments.authorize(result.IntentID)
	return result.IntentID
}

func TestSettleWritesOrder(t *testing.T) {
	env := newTestEnv(rodListing())
	env.carts.lines["buyer-1"] = []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
		{ProductID: "other-1", Quantity: 1},
	}
	intentID := openAndAuthorize(t, env, []models.CartLine{{ProductID: "rod-1", Quantity: 1}})

	order, already, err := env.svc.Settle(context.Background(), "buyer-1", intentID)

	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, "buyer-1", order.BuyerID)
	assert.Equal(t, intentID, order.PaymentIntentID)
	assert.Equal(t, int64(8700), order.TotalAmount)
	assert.Equal(t, models.OrderPlaced, order.OrderStatus)
	assert.Equal(t, models.PaymentCaptured, order.PaymentStatus)
	assert.Equal(t, "Tokyo", order.ShippingAddress.Region)

	// Listing flipped to sold.
	assert.Equal(t, models.ProductSold, env.catalog.status("rod-1"))

	// Only the purchased line left the cart.
	remaining, _ := env.carts.Lines(context.Background(), "buyer-1")
	require.Len(t, remaining, 1)
	assert.Equal(t, "other-1", remaining[0].ProductID)

	// Side effects fanned out with the buyer's email.
	require.Len(t, env.notifier.orders, 1)
	assert.Equal(t, "buyer@example.jp", env.notifier.emails[0])

	// Attempt closed, not deleted.
	attempt, _ := env.attempts.Get(context.Background(), "buyer-1")
	assert.Equal(t, AttemptSettled, attempt.Status)
}

func TestSettleTwiceReturnsSameOrder(t *testing.T) {
	env := newTestEnv(rodListing())
	intentID := openAndAuthorize(t, env, []models.CartLine{{ProductID: "rod-1", Quantity: 1}})

	first, already, err := env.svc.Settle(context.Background(), "buyer-1", intentID)
	require.NoError(t, err)
	require.False(t, already)

	second, already, err := env.svc.Settle(context.Background(), "buyer-1", intentID)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, first.PaymentIntentID, second.PaymentIntentID)
	assert.Len(t, env.orders.orders, 1)
	// Fanout ran once.
	assert.Len(t, env.notifier.orders, 1)
}

func TestSettleUnauthorizedIntent(t *testing.T) {
	env := newTestEnv(rodListing())
	result, err := env.svc.OpenIntent(context.Background(), testBuyer, "", []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
	})
	require.NoError(t, err)

	// No authorize: the intent still requires a payment method.
	_, _, err = env.svc.Settle(context.Background(), "buyer-1", result.IntentID)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Empty(t, env.orders.orders)
	assert.Equal(t, models.ProductAvailable, env.catalog.status("rod-1"))
}

func TestSettleEmptyIntentID(t *testing.T) {
	env := newTestEnv()
	_, _, err := env.svc.Settle(context.Background(), "buyer-1", "")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

// Two buyers authorize for the same single listing; the CAS lets exactly one
// settlement through and the loser's already-marked items are reverted.
func TestSettleLosesListingRace(t *testing.T) {
	env := newTestEnv(rodListing(), reelListing())
	intentID := openAndAuthorize(t, env, []models.CartLine{
		{ProductID: "reel-1", Quantity: 1},
		{ProductID: "rod-1", Quantity: 1},
	})

	// The other buyer's settlement flipped the rod first.
	won, err := env.catalog.MarkSold(context.Background(), "rod-1")
	require.NoError(t, err)
	require.True(t, won)

	_, _, err = env.svc.Settle(context.Background(), "buyer-1", intentID)

	assert.ErrorIs(t, err, ErrItemUnavailable)
	assert.Empty(t, env.orders.orders)
	// The reel was marked before the rod failed and must be released again.
	assert.Equal(t, models.ProductAvailable, env.catalog.status("reel-1"))
}

// The webhook may arrive after the attempt expired. Settlement then runs
// entirely from the intent metadata, including buyer identity and address.
func TestSettleFromIntentMetadata(t *testing.T) {
	env := newTestEnv(rodListing())
	intentID := openAndAuthorize(t, env, []models.CartLine{{ProductID: "rod-1", Quantity: 1}})
	require.NoError(t, env.attempts.Delete(context.Background(), "buyer-1"))

	// Empty buyerID: the webhook path.
	order, already, err := env.svc.Settle(context.Background(), "", intentID)

	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, "buyer-1", order.BuyerID)
	assert.Equal(t, int64(8700), order.TotalAmount)
	assert.Equal(t, int64(700), order.ShippingFee)
	assert.Equal(t, "Tokyo", order.ShippingAddress.Region)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "rod-1", order.Items[0].ProductID)
}

// A live attempt pointing at a different intent means the client holds a
// stale secret from before a re-reconciliation.
func TestSettleStaleSecret(t *testing.T) {
	env := newTestEnv(rodListing())
	staleIntent := openAndAuthorize(t, env, []models.CartLine{{ProductID: "rod-1", Quantity: 1}})

	// Destination edit re-reconciles and overwrites the attempt.
	env.svc.Addresses = &fakeAddresses{addresses: map[string]*models.Address{
		"buyer-1": testAddress("Okinawa"),
	}}
	_, err := env.svc.OpenIntent(context.Background(), testBuyer, "", []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
	})
	require.NoError(t, err)

	_, _, err = env.svc.Settle(context.Background(), "buyer-1", staleIntent)

	assert.ErrorIs(t, err, ErrStaleAttempt)
	assert.Empty(t, env.orders.orders)
	assert.Equal(t, models.ProductAvailable, env.catalog.status("rod-1"))
}

func TestSettleProcessorUnreachable(t *testing.T) {
	env := newTestEnv(rodListing())

	_, _, err := env.svc.Settle(context.Background(), "buyer-1", "pi_unknown")

	assert.ErrorIs(t, err, ErrProcessor)
}

// requires_capture counts as authorized; the order records the payment as
// authorized rather than captured.
func TestSettleManualCapture(t *testing.T) {
	env := newTestEnv(rodListing())
	result, err := env.svc.OpenIntent(context.Background(), testBuyer, "", []models.CartLine{
		{ProductID: "rod-1", Quantity: 1},
	})
	require.NoError(t, err)
	env.payments.mu.Lock()
	env.payments.intents[result.IntentID].Status = "requires_capture"
	env.payments.mu.Unlock()

	order, _, err := env.svc.Settle(context.Background(), "buyer-1", result.IntentID)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentAuthorized, order.PaymentStatus)
}
