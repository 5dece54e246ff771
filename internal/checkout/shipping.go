package checkout

import "tsurigu_back_end/internal/models"

// FeeTable maps a destination region (prefecture) to a flat shipping fee in
// JPY. Regions absent from the table fall back to Default. Injected from
// config so carrier rates stay out of the code.
type FeeTable struct {
	Fees    map[string]int64 `json:"fees"`
	Default int64            `json:"default"`
}

// Quote returns the shipping fee for a destination. It is deterministic and
// depends only on its arguments: no buyer-paid item means fee 0 for every
// region, and an unset region quotes 0 until an address is supplied.
func (t FeeTable) Quote(region string, buyerPays bool) int64 {
	if !buyerPays || region == "" {
		return 0
	}
	if fee, ok := t.Fees[region]; ok {
		return fee
	}
	return t.Default
}

// BuyerPays reports whether any validated item puts the shipping fee on the
// buyer. Mixed payer responsibility resolves with OR, not AND.
func BuyerPays(items []ValidatedLine) bool {
	for _, item := range items {
		if item.Product.ShippingPayer == models.ShippingPayerBuyer {
			return true
		}
	}
	return false
}
