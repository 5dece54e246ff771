package models

// Listing status values. Used gear is sold as single listings, so a product
// moves available → sold exactly once; reserved covers negotiated sales.
const (
	ProductAvailable = "available"
	ProductReserved  = "reserved"
	ProductSold      = "sold"
)

// Shipping payer values.
const (
	ShippingPayerSeller = "seller"
	ShippingPayerBuyer  = "buyer"
)

// ProductSnapshot is the read-only projection of a catalog listing that the
// checkout pipeline prices against. It is fetched fresh for every checkout
// attempt and never cached beyond it.
type ProductSnapshot struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Price         int64  `json:"price"` // JPY, no decimals
	Status        string `json:"status"`
	ShippingPayer string `json:"shipping_payer"`
	SellerID      string `json:"seller_id"`
	SellerName    string `json:"seller_name"`
	Category      string `json:"category"`
	Condition     string `json:"condition"`
	ImageURL      string `json:"image_url"`
}

// Purchasable reports whether a listing can still enter a checkout.
func (p *ProductSnapshot) Purchasable() bool {
	return p.Status == ProductAvailable
}
