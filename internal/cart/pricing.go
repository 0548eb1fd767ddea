package cart

import "github.com/shopspring/decimal"

// Pricing derives cart and order totals. Amounts stay at full precision until
// Rounded is called.
type Pricing struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

func (p Pricing) Quote(lines []Line) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(p.TaxRate)
	return Quote{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: p.DeliveryFee,
		Total:       subtotal.Add(tax).Add(p.DeliveryFee),
	}
}

// Empty is the quote shown for an owner without a cart.
func (p Pricing) Empty() Quote {
	return Quote{Subtotal: decimal.Zero, Tax: decimal.Zero, DeliveryFee: p.DeliveryFee, Total: decimal.Zero}
}

// Rounded returns the quote with every amount rounded to cents.
func (q Quote) Rounded() Quote {
	return Quote{
		Subtotal:    q.Subtotal.Round(2),
		Tax:         q.Tax.Round(2),
		DeliveryFee: q.DeliveryFee.Round(2),
		Total:       q.Total.Round(2),
	}
}

// TotalCents is the rounded total in minor currency units.
func (q Quote) TotalCents() int64 {
	return q.Total.Round(2).Shift(2).IntPart()
}
