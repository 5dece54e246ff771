package models

// CartLine is one product/quantity pair of a buyer's cart. The cart lives in
// Redis under cart:{userID} and is only a hint: checkout re-validates every
// line against the live catalog before any money moves.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// MergeLine adds a line into the cart, merging quantities when the product is
// already present. Duplicate product ids are never appended twice.
func MergeLine(cart []CartLine, line CartLine) []CartLine {
	for i := range cart {
		if cart[i].ProductID == line.ProductID {
			cart[i].Quantity += line.Quantity
			return cart
		}
	}
	return append(cart, line)
}
