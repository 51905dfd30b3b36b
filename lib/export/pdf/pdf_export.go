package pdfexport

import (
	"bytes"
	"fmt"

	dbmodels "wfm-tools-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// GenerateInvoice renders an invoice into a printable A4 PDF.
func GenerateInvoice(rec dbmodels.Invoice, spaceName string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInvoice panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.CellFormat(0, 10, "INVOICE "+rec.InvoiceNumber, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, spaceName, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if rec.Client != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Bill to:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, rec.Client.Name, "", 1, "L", false, 0, "")
		if rec.Client.Address != "" {
			pdf.CellFormat(0, 6, rec.Client.Address, "", 1, "L", false, 0, "")
		}
		if rec.Client.Email != "" {
			pdf.CellFormat(0, 6, rec.Client.Email, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Issue date: "+rec.IssueDate.Format(dateFormat), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Due date: "+rec.DueDate.Format(dateFormat), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	writeItemsTable(pdf, rec.Items)
	writeTotals(pdf, rec)

	var buf bytes.Buffer
	err = pdf.Output(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render invoice pdf")
	}
	return buf.Bytes(), nil
}

var itemColWidths = []float64{95, 25, 30, 30}

func writeItemsTable(pdf *fpdf.Fpdf, items []dbmodels.InvoiceItem) {
	headers := []string{"Description", "Hours", "Rate", "Amount"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for idx, header := range headers {
		align := "L"
		if idx > 0 {
			align = "R"
		}
		pdf.CellFormat(itemColWidths[idx], 8, header, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.CellFormat(itemColWidths[0], 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(itemColWidths[1], 8, item.Hours.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(itemColWidths[2], 8, item.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(itemColWidths[3], 8, item.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func writeTotals(pdf *fpdf.Fpdf, rec dbmodels.Invoice) {
	labelW := itemColWidths[0] + itemColWidths[1] + itemColWidths[2]
	writeTotalRow := func(label string, value decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 8, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(itemColWidths[3], 8, value.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	writeTotalRow("Subtotal", rec.Subtotal, false)
	writeTotalRow(fmt.Sprintf("Tax (%s%%)", rec.TaxPercentage.StringFixed(2)), rec.Tax, false)
	writeTotalRow("Total", rec.Total, true)
}
