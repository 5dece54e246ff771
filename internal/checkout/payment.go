package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"tsurigu_back_end/internal/models"
)

// OpenResult is what the payment-intent endpoint returns to the front end.
// Amount and breakdown are always the reconciled figures, never an echo of
// anything the client proposed.
type OpenResult struct {
	IntentID     string
	ClientSecret string
	Breakdown    models.PriceBreakdown
	Items        []models.OrderItem
	Dropped      []string
	Reused       bool
}

// OpenIntent runs validation and reconciliation and makes sure a payment
// authorization of exactly the reconciled total is open for the buyer.
//
// An unchanged pending attempt is reused; any difference — amount, items or
// destination — opens a fresh processor intent and overwrites the attempt,
// which invalidates the previous client secret ("last reconciliation wins").
// lines may be nil, in which case the buyer's stored cart is used.
func (s *Service) OpenIntent(ctx context.Context, buyer Buyer, addressID string, lines []models.CartLine) (*OpenResult, error) {
	if len(lines) == 0 {
		stored, err := s.Carts.Lines(ctx, buyer.ID)
		if err != nil {
			return nil, fmt.Errorf("read cart: %w", err)
		}
		lines = stored
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	validated, dropped, err := s.ValidateLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(validated) == 0 {
		return &OpenResult{Dropped: dropped}, ErrNothingPurchasable
	}

	address, err := s.Addresses.Get(ctx, buyer.ID, addressID)
	if err != nil || address == nil || !address.Complete() {
		return &OpenResult{Dropped: dropped}, ErrAddressIncomplete
	}

	breakdown := Reconcile(validated, address.Region, s.Fees)
	items := orderItems(validated)

	attempt, err := s.Attempts.Get(ctx, buyer.ID)
	if err == nil && attempt != nil && attempt.Status == AttemptPending &&
		attempt.IntentID != "" && attempt.Amount == breakdown.Total &&
		attempt.Region == address.Region && sameItems(attempt.Items, items) {
		// Nothing changed since the last reconciliation: keep the open
		// authorization and its client secret.
		attempt.UpdatedAt = time.Now()
		if err := s.Attempts.Put(ctx, buyer.ID, attempt); err != nil {
			return nil, fmt.Errorf("refresh attempt: %w", err)
		}
		intent, err := s.Payments.GetIntent(ctx, attempt.IntentID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessor, err)
		}
		return &OpenResult{
			IntentID:     attempt.IntentID,
			ClientSecret: intent.ClientSecret,
			Breakdown:    breakdown,
			Items:        items,
			Dropped:      dropped,
			Reused:       true,
		}, nil
	}

	metadata, err := intentMetadata(buyer, address, items, breakdown)
	if err != nil {
		return nil, err
	}

	intent, err := s.Payments.CreateIntent(ctx, breakdown.Total, "jpy", metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessor, err)
	}

	attempt = &Attempt{
		IntentID:  intent.ID,
		Amount:    breakdown.Total,
		Breakdown: breakdown,
		Items:     items,
		Region:    address.Region,
		AddressID: addressID,
		Address:   address.Snapshot(),
		Status:    AttemptPending,
		UpdatedAt: time.Now(),
	}
	if err := s.Attempts.Put(ctx, buyer.ID, attempt); err != nil {
		return nil, fmt.Errorf("store attempt: %w", err)
	}

	return &OpenResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Breakdown:    breakdown,
		Items:        items,
		Dropped:      dropped,
	}, nil
}

// intentMetadata serializes the reconciled checkout onto the processor
// intent, so settlement can run from the processor notification alone even
// after the attempt expired.
func intentMetadata(buyer Buyer, address *models.Address, items []models.OrderItem, breakdown models.PriceBreakdown) (map[string]string, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("serialize items: %w", err)
	}
	addressJSON, err := json.Marshal(address.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("serialize address: %w", err)
	}
	return map[string]string{
		"buyer_id":     buyer.ID,
		"email":        buyer.Email,
		"items":        string(itemsJSON),
		"address":      string(addressJSON),
		"region":       address.Region,
		"subtotal":     strconv.FormatInt(breakdown.Subtotal, 10),
		"shipping_fee": strconv.FormatInt(breakdown.ShippingFee, 10),
		"total":        strconv.FormatInt(breakdown.Total, 10),
	}, nil
}

func sameItems(a, b []models.OrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ProductID != b[i].ProductID ||
			a[i].Quantity != b[i].Quantity ||
			a[i].UnitPrice != b[i].UnitPrice {
			return false
		}
	}
	return true
}
