package invoicestore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextInvoiceNumber(t *testing.T) {
	t.Run(`first number of the year`, func(t *testing.T) {
		require.Equal(t, "INV-2026-0001", NextInvoiceNumber("", "INV-2026-"))
	})

	t.Run(`increments the latest suffix`, func(t *testing.T) {
		require.Equal(t, "INV-2026-0008", NextInvoiceNumber("INV-2026-0007", "INV-2026-"))
	})

	t.Run(`sequence keeps counting past four digits`, func(t *testing.T) {
		require.Equal(t, "INV-2026-10000", NextInvoiceNumber("INV-2026-9999", "INV-2026-"))
		require.Equal(t, "INV-2026-10001", NextInvoiceNumber("INV-2026-10000", "INV-2026-"))
	})

	t.Run(`new year starts a fresh sequence`, func(t *testing.T) {
		require.Equal(t, "INV-2027-0001", NextInvoiceNumber("", "INV-2027-"))
	})
}
