package checkout

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type Quote struct {
	StoreID     string
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
}

// PricingInput carries the checkout-wide pricing parameters.
type PricingInput struct {
	// DiscountPercent is zero when no coupon applies.
	DiscountPercent decimal.Decimal
	ShippingFee     decimal.Decimal
	ChargeShipping  bool
}

// Price quotes every group. The shipping fee, when charged, lands on the
// first group only. Each group total is rounded half away from zero to two
// decimals and the checkout total is the sum of the rounded totals.
func Price(groups []Group, in PricingInput) ([]Quote, decimal.Decimal) {
	quotes := make([]Quote, 0, len(groups))
	total := decimal.Zero

	for i, g := range groups {
		q := Quote{StoreID: g.StoreID, Discount: decimal.Zero, ShippingFee: decimal.Zero}

		subtotal := decimal.Zero
		for _, l := range g.Lines {
			subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		q.Subtotal = subtotal

		amount := subtotal
		if in.DiscountPercent.IsPositive() {
			q.Discount = subtotal.Mul(in.DiscountPercent).Div(hundred)
			amount = amount.Sub(q.Discount)
		}

		if in.ChargeShipping && i == 0 {
			q.ShippingFee = in.ShippingFee
			amount = amount.Add(in.ShippingFee)
		}

		q.Total = amount.Round(2)
		total = total.Add(q.Total)
		quotes = append(quotes, q)
	}

	return quotes, total
}
