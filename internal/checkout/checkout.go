// Package checkout implements the checkout and order-settlement pipeline:
// cart validation, server-side price reconciliation, payment authorization
// and the final idempotent order write. External collaborators (catalog,
// payment processor, stores) sit behind small interfaces so the pipeline can
// be exercised without any network.
package checkout

import (
	"context"
	"errors"
	"time"

	"tsurigu_back_end/internal/models"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNothingPurchasable = errors.New("no purchasable item left in cart")
	ErrProductNotFound    = errors.New("product not found")
	ErrAddressIncomplete  = errors.New("shipping address missing or incomplete")
	ErrProcessor          = errors.New("payment processor failure")
	ErrNotAuthorized      = errors.New("payment not authorized")
	ErrStaleAttempt       = errors.New("stale checkout attempt")
	ErrItemUnavailable    = errors.New("item no longer available")
	ErrDuplicateOrder     = errors.New("order already exists for this payment")
)

// Checkout attempt statuses. An attempt is abandoned by letting its store
// entry (and the processor-side authorization) expire naturally.
const (
	AttemptPending    = "pending"
	AttemptAuthorized = "authorized"
	AttemptSettled    = "settled"
)

// Buyer is the authenticated identity a checkout runs for.
type Buyer struct {
	ID    string
	Email string
}

// Attempt is the per-buyer checkout state. The stored amount is the only
// figure a settlement will accept: a re-reconciliation overwrites the attempt
// and with it invalidates the previous client secret.
type Attempt struct {
	IntentID  string                 `json:"intent_id"`
	Amount    int64                  `json:"amount"`
	Breakdown models.PriceBreakdown  `json:"breakdown"`
	Items     []models.OrderItem     `json:"items"`
	Region    string                 `json:"region"`
	AddressID string                 `json:"address_id"`
	Address   models.AddressSnapshot `json:"address"`
	Status    string                 `json:"status"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Intent mirrors the processor-side payment authorization.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string // processor status: requires_payment_method, requires_capture, succeeded, ...
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

// Authorized reports whether the processor confirmed the funds.
func (i *Intent) Authorized() bool {
	return i.Status == "succeeded" || i.Status == "requires_capture"
}

// ProductCatalog is the read/transition contract against the listing catalog.
type ProductCatalog interface {
	// Snapshot fetches the live listing projection. ErrProductNotFound when
	// the listing was deleted.
	Snapshot(ctx context.Context, productID string) (*models.ProductSnapshot, error)
	// MarkSold transitions available → sold with a compare-and-set; returns
	// false when another checkout won the listing first.
	MarkSold(ctx context.Context, productID string) (bool, error)
	// Release reverts a MarkSold after a partially failed settlement.
	Release(ctx context.Context, productID string) error
}

// PaymentClient is the processor contract (Stripe in production).
type PaymentClient interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// CartStore is the buyer's cart mirror. Checkout reads it as a hint and
// removes only the purchased lines after settlement.
type CartStore interface {
	Lines(ctx context.Context, buyerID string) ([]models.CartLine, error)
	RemoveLines(ctx context.Context, buyerID string, productIDs []string) error
}

// AttemptStore holds the per-buyer checkout attempt with a bounded lifetime.
type AttemptStore interface {
	Get(ctx context.Context, buyerID string) (*Attempt, error) // nil, nil when absent
	Put(ctx context.Context, buyerID string, attempt *Attempt) error
	Delete(ctx context.Context, buyerID string) error
}

// OrderStore is the append-only order collection. Insert must reject a second
// order for the same payment intent with ErrDuplicateOrder.
type OrderStore interface {
	FindByIntent(ctx context.Context, intentID string) (*models.Order, error) // nil, nil when absent
	Insert(ctx context.Context, order *models.Order) error
}

// AddressStore reads the buyer's address book. An empty addressID selects the
// default address.
type AddressStore interface {
	Get(ctx context.Context, buyerID, addressID string) (*models.Address, error)
}

// Notifier fans out post-settlement side effects (seller feed, emails,
// receipt, search de-index). Implementations must never fail the order.
type Notifier interface {
	OrderPlaced(order *models.Order, buyerEmail string)
}

// Service wires the pipeline together.
type Service struct {
	Catalog   ProductCatalog
	Payments  PaymentClient
	Carts     CartStore
	Attempts  AttemptStore
	Orders    OrderStore
	Addresses AddressStore
	Notifier  Notifier
	Fees      FeeTable
}

func New(deps Service) *Service {
	s := deps
	return &s
}
