// Package pricing computes invoice line and aggregate totals.
//
// All arithmetic runs on exact integer numerators (cents and basis points)
// and rounds half away from zero exactly once per returned figure, so totals
// never drift however many line items accumulate. Every function is pure:
// identical inputs always produce identical totals.
package pricing

import "github.com/medledger/medledger-go/money"

// Item describes one priced invoice line.
type Item struct {
	Qty       int
	UnitPrice money.Amount
	TaxRate   money.Percent
}

// Totals aggregates the computed invoice components. The identity
// Total = Subtotal + Tax - Discount holds exactly.
type Totals struct {
	Subtotal money.Amount
	Tax      money.Amount
	Discount money.Amount
	Total    money.Amount
}

// LineTotal returns qty x price with tax applied, rounded only at the end.
// Intended for per-line display; aggregation goes through Compute so that
// rounding never happens before summation.
func LineTotal(qty int, unitPrice money.Amount, taxRate money.Percent) money.Amount {
	base := int64(qty) * int64(unitPrice)
	return money.Amount(money.RoundDiv(base*(10_000+taxRate.Bps()), 10_000))
}

// Compute calculates invoice totals for the given lines and discount.
// The discount applies to the subtotal only; tax is never discounted.
// An empty item slice yields all-zero totals.
func Compute(items []Item, discount money.Percent) Totals {
	var subtotal int64
	var taxNum int64
	for _, it := range items {
		base := int64(it.Qty) * int64(it.UnitPrice)
		subtotal += base
		taxNum += base * it.TaxRate.Bps()
	}
	tax := money.RoundDiv(taxNum, 10_000)
	disc := money.RoundDiv(subtotal*discount.Bps(), 10_000)
	return Totals{
		Subtotal: money.Amount(subtotal),
		Tax:      money.Amount(tax),
		Discount: money.Amount(disc),
		Total:    money.Amount(subtotal + tax - disc),
	}
}
