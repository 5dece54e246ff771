package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tsurigu_back_end/internal/models"
)

// Settle durably records the order for an authorized payment intent. It is
// safe against duplicate invocation: the order write is keyed by the intent
// id, and a second call returns the existing order with already=true.
//
// buyerID may be empty on the webhook path; it is then recovered from the
// intent metadata. The items and amounts settled are the ones frozen at
// authorization time — the availability of each listing, however, is
// re-checked with a compare-and-set immediately before commit so that a
// listing bought by someone else in the meantime fails here instead of
// producing two orders for one rod.
func (s *Service) Settle(ctx context.Context, buyerID, intentID string) (*models.Order, bool, error) {
	if intentID == "" {
		return nil, false, ErrNotAuthorized
	}

	if existing, err := s.Orders.FindByIntent(ctx, intentID); err == nil && existing != nil {
		return existing, true, nil
	}

	intent, err := s.Payments.GetIntent(ctx, intentID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrProcessor, err)
	}
	if !intent.Authorized() {
		return nil, false, ErrNotAuthorized
	}

	if buyerID == "" {
		buyerID = intent.Metadata["buyer_id"]
	}
	if buyerID == "" {
		return nil, false, fmt.Errorf("%w: intent %s carries no buyer", ErrNotAuthorized, intentID)
	}

	frozen, err := s.frozenCheckout(ctx, buyerID, intent)
	if err != nil {
		return nil, false, err
	}

	// Final guard against the browse-to-pay race: every listing must still be
	// ours to sell. Whoever CASes first wins; losers revert what they marked.
	var marked []string
	for _, item := range frozen.Items {
		won, err := s.Catalog.MarkSold(ctx, item.ProductID)
		if err != nil || !won {
			s.releaseAll(ctx, marked)
			// The same intent may have been settled concurrently (user click
			// racing the webhook); that is a success, not a conflict.
			if existing, ferr := s.Orders.FindByIntent(ctx, intentID); ferr == nil && existing != nil {
				return existing, true, nil
			}
			if err != nil {
				return nil, false, fmt.Errorf("mark sold %s: %w", item.ProductID, err)
			}
			return nil, false, fmt.Errorf("%w: %s", ErrItemUnavailable, item.ProductID)
		}
		marked = append(marked, item.ProductID)
	}

	paymentStatus := models.PaymentAuthorized
	if intent.Status == "succeeded" {
		paymentStatus = models.PaymentCaptured
	}

	order := &models.Order{
		BuyerID:         buyerID,
		Items:           frozen.Items,
		Subtotal:        frozen.Breakdown.Subtotal,
		ShippingFee:     frozen.Breakdown.ShippingFee,
		TotalAmount:     frozen.Breakdown.Total,
		Currency:        "jpy",
		PaymentMethod:   "card",
		PaymentIntentID: intentID,
		ShippingAddress: frozen.Address,
		OrderStatus:     models.OrderPlaced,
		PaymentStatus:   paymentStatus,
		CreatedAt:       time.Now(),
	}

	if err := s.Orders.Insert(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateOrder) {
			// Another settlement of the same intent beat us to the write.
			if existing, ferr := s.Orders.FindByIntent(ctx, intentID); ferr == nil && existing != nil {
				return existing, true, nil
			}
		}
		s.releaseAll(ctx, marked)
		return nil, false, fmt.Errorf("persist order: %w", err)
	}

	s.afterSettle(ctx, buyerID, order, frozen.Attempt, intent.Metadata["email"])
	return order, false, nil
}

// frozenCheckout reproduces the reconciled checkout the authorization was
// opened for, preferring the buyer's live attempt and falling back to the
// intent metadata. A live attempt pointing at a different intent means the
// caller holds a stale client secret: the amount it was sized for is no
// longer the reconciled one.
type frozenCheckout struct {
	Items     []models.OrderItem
	Breakdown models.PriceBreakdown
	Address   models.AddressSnapshot
	Attempt   *Attempt
}

func (s *Service) frozenCheckout(ctx context.Context, buyerID string, intent *Intent) (*frozenCheckout, error) {
	attempt, err := s.Attempts.Get(ctx, buyerID)
	if err == nil && attempt != nil {
		if attempt.IntentID != intent.ID || attempt.Amount != intent.Amount {
			return nil, ErrStaleAttempt
		}
		return &frozenCheckout{
			Items:     attempt.Items,
			Breakdown: attempt.Breakdown,
			Address:   attempt.Address,
			Attempt:   attempt,
		}, nil
	}

	// Attempt expired (long-delayed webhook): the intent carries everything.
	var items []models.OrderItem
	if err := json.Unmarshal([]byte(intent.Metadata["items"]), &items); err != nil || len(items) == 0 {
		return nil, fmt.Errorf("%w: intent %s carries no items", ErrStaleAttempt, intent.ID)
	}
	var address models.AddressSnapshot
	_ = json.Unmarshal([]byte(intent.Metadata["address"]), &address)

	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return &frozenCheckout{
		Items: items,
		Breakdown: models.PriceBreakdown{
			Subtotal:    subtotal,
			ShippingFee: intent.Amount - subtotal,
			Total:       intent.Amount,
		},
		Address: address,
	}, nil
}

func (s *Service) releaseAll(ctx context.Context, productIDs []string) {
	for _, id := range productIDs {
		if err := s.Catalog.Release(ctx, id); err != nil {
			log.Printf("❌ Failed to release listing %s after aborted settlement: %v", id, err)
		}
	}
}

// afterSettle clears the purchased lines from the cart, closes the attempt
// and fans out side effects. None of this may fail the already-written order.
func (s *Service) afterSettle(ctx context.Context, buyerID string, order *models.Order, attempt *Attempt, buyerEmail string) {
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	if err := s.Carts.RemoveLines(ctx, buyerID, ids); err != nil {
		log.Printf("⚠️ Could not clear purchased lines for %s: %v", buyerID, err)
	}

	if attempt != nil {
		attempt.Status = AttemptSettled
		attempt.UpdatedAt = time.Now()
		if err := s.Attempts.Put(ctx, buyerID, attempt); err != nil {
			log.Printf("⚠️ Could not close attempt for %s: %v", buyerID, err)
		}
	}

	if s.Notifier != nil {
		s.Notifier.OrderPlaced(order, buyerEmail)
	}
}
