package invoicehandler

import (
	"testing"
	invoiceapimodels "wfm-tools-backend/models/api/invoice"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func item(hours, rate string) invoiceapimodels.InvoiceItemData {
	return invoiceapimodels.InvoiceItemData{
		Description: "consulting",
		Hours:       decimal.RequireFromString(hours),
		Rate:        decimal.RequireFromString(rate),
	}
}

func TestLineAmount(t *testing.T) {
	t.Run(`rounds half up to cents`, func(t *testing.T) {
		// 10.5h * 33.333 = 349.9965 -> 350.00
		got := LineAmount(decimal.RequireFromString("10.5"), decimal.RequireFromString("33.333"))
		require.Equal(t, "350.00", got.StringFixed(2))
	})

	t.Run(`exact products stay exact`, func(t *testing.T) {
		got := LineAmount(decimal.RequireFromString("7.5"), decimal.NewFromInt(80))
		require.Equal(t, "600.00", got.StringFixed(2))
	})
}

func TestComputeTotals(t *testing.T) {
	t.Run(`ten percent tax on two items`, func(t *testing.T) {
		items := []invoiceapimodels.InvoiceItemData{
			item("10", "50"),
			item("5", "75"),
		}
		totals := ComputeTotals(items, decimal.NewFromInt(10))
		require.Equal(t, "875.00", totals.Subtotal.StringFixed(2))
		require.Equal(t, "87.50", totals.Tax.StringFixed(2))
		require.Equal(t, "962.50", totals.Total.StringFixed(2))
	})

	t.Run(`zero tax`, func(t *testing.T) {
		totals := ComputeTotals([]invoiceapimodels.InvoiceItemData{item("8", "100")}, decimal.Zero)
		require.Equal(t, "800.00", totals.Subtotal.StringFixed(2))
		require.True(t, totals.Tax.IsZero())
		require.Equal(t, "800.00", totals.Total.StringFixed(2))
	})

	t.Run(`no items`, func(t *testing.T) {
		totals := ComputeTotals(nil, decimal.NewFromInt(20))
		require.True(t, totals.Subtotal.IsZero())
		require.True(t, totals.Tax.IsZero())
		require.True(t, totals.Total.IsZero())
	})

	t.Run(`negative tax clamps to zero`, func(t *testing.T) {
		totals := ComputeTotals([]invoiceapimodels.InvoiceItemData{item("1", "100")}, decimal.NewFromInt(-5))
		require.True(t, totals.Tax.IsZero())
		require.Equal(t, "100.00", totals.Total.StringFixed(2))
	})

	t.Run(`tax above hundred clamps to hundred`, func(t *testing.T) {
		totals := ComputeTotals([]invoiceapimodels.InvoiceItemData{item("1", "100")}, decimal.NewFromInt(150))
		require.Equal(t, "100.00", totals.Tax.StringFixed(2))
		require.Equal(t, "200.00", totals.Total.StringFixed(2))
	})

	t.Run(`per line rounding keeps lines summing to subtotal`, func(t *testing.T) {
		// each line is 0.3333... raw; rounded per line first
		items := []invoiceapimodels.InvoiceItemData{
			item("0.1", "3.333"),
			item("0.1", "3.333"),
			item("0.1", "3.333"),
		}
		totals := ComputeTotals(items, decimal.Zero)
		lineSum := decimal.Zero
		for _, it := range items {
			lineSum = lineSum.Add(LineAmount(it.Hours, it.Rate))
		}
		require.True(t, lineSum.Equal(totals.Subtotal))
	})

	t.Run(`fractional tax percentage`, func(t *testing.T) {
		totals := ComputeTotals([]invoiceapimodels.InvoiceItemData{item("10", "100")}, decimal.RequireFromString("7.25"))
		require.Equal(t, "72.50", totals.Tax.StringFixed(2))
		require.Equal(t, "1072.50", totals.Total.StringFixed(2))
	})
}
