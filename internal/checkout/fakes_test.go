package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tsurigu_back_end/internal/models"
)

// In-memory fakes for the pipeline interfaces. They keep enough state to
// assert on side effects (what was marked sold, which intents were opened).

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]*models.ProductSnapshot
	failNext error // returned by the next Snapshot call
}

func newFakeCatalog(products ...models.ProductSnapshot) *fakeCatalog {
	c := &fakeCatalog{products: map[string]*models.ProductSnapshot{}}
	for _, p := range products {
		cp := p
		c.products[p.ID] = &cp
	}
	return c
}

func (c *fakeCatalog) Snapshot(ctx context.Context, productID string) (*models.ProductSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return nil, err
	}
	p, ok := c.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *fakeCatalog) MarkSold(ctx context.Context, productID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok {
		return false, nil
	}
	if p.Status != models.ProductAvailable {
		return false, nil
	}
	p.Status = models.ProductSold
	return true, nil
}

func (c *fakeCatalog) Release(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.products[productID]; ok && p.Status == models.ProductSold {
		p.Status = models.ProductAvailable
	}
	return nil
}

func (c *fakeCatalog) status(productID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[productID].Status
}

type fakePayments struct {
	mu      sync.Mutex
	intents map[string]*Intent
	created int
	failing bool
}

func newFakePayments() *fakePayments {
	return &fakePayments{intents: map[string]*Intent{}}
}

func (p *fakePayments) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing {
		return nil, errors.New("processor down")
	}
	p.created++
	intent := &Intent{
		ID:           fmt.Sprintf("pi_%d", p.created),
		ClientSecret: fmt.Sprintf("pi_%d_secret", p.created),
		Status:       "requires_payment_method",
		Amount:       amount,
		Currency:     currency,
		Metadata:     metadata,
	}
	p.intents[intent.ID] = intent
	return intent, nil
}

func (p *fakePayments) GetIntent(ctx context.Context, id string) (*Intent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	intent, ok := p.intents[id]
	if !ok {
		return nil, errors.New("no such intent")
	}
	cp := *intent
	return &cp, nil
}

// authorize simulates the buyer confirming the payment on the client.
func (p *fakePayments) authorize(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.intents[id].Status = "succeeded"
}

type fakeCarts struct {
	mu    sync.Mutex
	lines map[string][]models.CartLine
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{lines: map[string][]models.CartLine{}}
}

func (c *fakeCarts) Lines(ctx context.Context, buyerID string) ([]models.CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine(nil), c.lines[buyerID]...), nil
}

func (c *fakeCarts) RemoveLines(ctx context.Context, buyerID string, productIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	purchased := map[string]bool{}
	for _, id := range productIDs {
		purchased[id] = true
	}
	var remaining []models.CartLine
	for _, line := range c.lines[buyerID] {
		if !purchased[line.ProductID] {
			remaining = append(remaining, line)
		}
	}
	c.lines[buyerID] = remaining
	return nil
}

type fakeAttempts struct {
	mu       sync.Mutex
	attempts map[string]*Attempt
}

func newFakeAttempts() *fakeAttempts {
	return &fakeAttempts{attempts: map[string]*Attempt{}}
}

func (a *fakeAttempts) Get(ctx context.Context, buyerID string) (*Attempt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	attempt, ok := a.attempts[buyerID]
	if !ok {
		return nil, nil
	}
	cp := *attempt
	return &cp, nil
}

func (a *fakeAttempts) Put(ctx context.Context, buyerID string, attempt *Attempt) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := *attempt
	a.attempts[buyerID] = &cp
	return nil
}

func (a *fakeAttempts) Delete(ctx context.Context, buyerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.attempts, buyerID)
	return nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders []*models.Order
}

func (o *fakeOrders) FindByIntent(ctx context.Context, intentID string) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, order := range o.orders {
		if order.PaymentIntentID == intentID {
			return order, nil
		}
	}
	return nil, nil
}

func (o *fakeOrders) Insert(ctx context.Context, order *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, existing := range o.orders {
		if existing.PaymentIntentID == order.PaymentIntentID {
			return ErrDuplicateOrder
		}
	}
	o.orders = append(o.orders, order)
	return nil
}

type fakeAddresses struct {
	addresses map[string]*models.Address // keyed by buyerID
}

func (a *fakeAddresses) Get(ctx context.Context, buyerID, addressID string) (*models.Address, error) {
	address, ok := a.addresses[buyerID]
	if !ok {
		return nil, nil
	}
	return address, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	orders []*models.Order
	emails []string
}

func (n *fakeNotifier) OrderPlaced(order *models.Order, buyerEmail string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	n.emails = append(n.emails, buyerEmail)
}

// Test fixture data. Prices in JPY.

var testFees = FeeTable{
	Fees:    map[string]int64{"Tokyo": 700, "Hokkaido": 1200, "Okinawa": 1500},
	Default: 1000,
}

func testAddress(region string) *models.Address {
	return &models.Address{
		UserID:     "buyer-1",
		PostalCode: "150-0001",
		Region:     region,
		City:       "Shibuya",
		Street:     "1-2-3 Jingumae",
		IsDefault:  true,
	}
}

func rodListing() models.ProductSnapshot {
	return models.ProductSnapshot{
		ID:            "rod-1",
		Title:         "Shimano baitcasting rod",
		Price:         8000,
		Status:        models.ProductAvailable,
		ShippingPayer: models.ShippingPayerBuyer,
		SellerID:      "seller-1",
		SellerName:    "Tanaka Fishing",
		Category:      "rods",
		Condition:     "good",
	}
}

func reelListing() models.ProductSnapshot {
	return models.ProductSnapshot{
		ID:            "reel-1",
		Title:         "Daiwa spinning reel",
		Price:         5000,
		Status:        models.ProductAvailable,
		ShippingPayer: models.ShippingPayerSeller,
		SellerID:      "seller-2",
		SellerName:    "Suzuki Tackle",
		Category:      "reels",
		Condition:     "like new",
	}
}

type testEnv struct {
	svc      *Service
	catalog  *fakeCatalog
	payments *fakePayments
	carts    *fakeCarts
	attempts *fakeAttempts
	orders   *fakeOrders
	notifier *fakeNotifier
}

func newTestEnv(products ...models.ProductSnapshot) *testEnv {
	env := &testEnv{
		catalog:  newFakeCatalog(products...),
		payments: newFakePayments(),
		carts:    newFakeCarts(),
		attempts: newFakeAttempts(),
		orders:   &fakeOrders{},
		notifier: &fakeNotifier{},
	}
	env.svc = New(Service{
		Catalog:  env.catalog,
		Payments: env.payments,
		Carts:    env.carts,
		Attempts: env.attempts,
		Orders:   env.orders,
		Addresses: &fakeAddresses{addresses: map[string]*models.Address{
			"buyer-1": testAddress("Tokyo"),
		}},
		Notifier: env.notifier,
		Fees:     testFees,
	})
	return env
}
