package invoicehandler

import (
	invoiceapimodels "wfm-tools-backend/models/api/invoice"

	"github.com/shopspring/decimal"
)

var (
	percentDivisor = decimal.NewFromInt(100)
	maxTaxPercent  = decimal.NewFromInt(100)
)

// LineAmount is hours * rate, rounded half-up to cents. Each line is rounded
// on its own before summing so the printed lines always add up to the
// printed subtotal.
func LineAmount(hours, rate decimal.Decimal) decimal.Decimal {
	return hours.Mul(rate).Round(2)
}

// Totals holds the derived money columns of an invoice.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives subtotal, tax and total from line items. The tax
// percentage is clamped into [0,100]; callers validate, the clamp keeps
// historical rows with bad data from producing negative money.
func ComputeTotals(items []invoiceapimodels.InvoiceItemData, taxPercentage decimal.Decimal) Totals {
	if taxPercentage.IsNegative() {
		taxPercentage = decimal.Zero
	}
	if taxPercentage.GreaterThan(maxTaxPercent) {
		taxPercentage = maxTaxPercent
	}
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineAmount(item.Hours, item.Rate))
	}
	tax := subtotal.Mul(taxPercentage).Div(percentDivisor).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
