// Package pricing derives order totals from cart lines. Totals are never
// stored; the UI recomputes them on every render.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/VanceeBassem/ecommerce-frontend/internal/cart"
)

// Flat-rate shipping and tax policy. Shipping is charged regardless of cart
// size; weight or distance based shipping is out of scope.
var (
	shippingFlat = decimal.New(1500, -2) // 15.00
	taxRate      = decimal.New(5, -2)    // 5%
)

// Totals is the derived breakdown shown on the order summary. Subtotal keeps
// full precision so repeated derivation never compounds rounding error; Tax
// and Total are rounded to two decimals, matching what the backend charges.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute returns the totals for the given lines. It is pure: identical line
// sets yield identical totals regardless of prior calls. An empty cart yields
// a zero subtotal and a total equal to the shipping charge.
func Compute(lines []cart.Line) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shippingFlat).Add(tax).Round(2)
	return Totals{
		Subtotal: subtotal,
		Shipping: shippingFlat,
		Tax:      tax,
		Total:    total,
	}
}
