package models

// ShippingQuote is the response body of the fee quote endpoint.
type ShippingQuote struct {
	Region    string `json:"region"`
	BuyerPays bool   `json:"buyer_pays"`
	Fee       int64  `json:"fee"`
}
