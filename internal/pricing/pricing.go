package pricing

import "math"

// Shipping tiers. Boundaries are inclusive on the lower edge.
const (
	freeShippingAt   = 1000.0
	ratedShippingAt  = 500.0
	flatShippingFee  = 50.0
	ratedShippingPct = 0.05
	profitMargin     = 0.30
)

// Quote is the priced breakdown of a cart subtotal.
type Quote struct {
	ShippingCharges float64 `json:"shippingCharges"`
	TotalAmount     float64 `json:"totalAmount"`
	Profit          float64 `json:"profit"`
}

// Price computes shipping, total and the gross-profit estimate for a cart
// subtotal. The subtotal is assumed non-negative; the cart validates it.
func Price(subtotal float64) Quote {
	var shipping float64
	switch {
	case subtotal >= freeShippingAt:
		shipping = 0
	case subtotal >= ratedShippingAt:
		shipping = math.Round(subtotal * ratedShippingPct)
	default:
		shipping = flatShippingFee
	}

	return Quote{
		ShippingCharges: shipping,
		TotalAmount:     subtotal + shipping,
		Profit:          math.Round(subtotal * profitMargin),
	}
}
