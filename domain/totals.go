package domain

import "github.com/shopspring/decimal"

// DefaultTaxRate is the flat VAT rate applied to invoice subtotals.
var DefaultTaxRate = decimal.New(16, -2)

// CalculateTotals derives {subtotal, tax, total} from an ordered set of
// line items. The input is never mutated. An empty set yields zeros.
// Money rounds half-up to 2 decimal places at this boundary; downstream
// code carries the rounded values and never re-derives its own.
func CalculateTotals(items []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
