package invoiceapimodels

import (
	"strings"
	"time"
	"wfm-tools-backend/models"
	apimodels "wfm-tools-backend/models/api"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const DateFormat = "2006-01-02"

type InvoiceItemData struct {
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
}

type InvoiceData struct {
	ClientID      string            `json:"client_id"`
	IssueDate     string            `json:"issue_date"`
	DueDate       string            `json:"due_date"`
	TaxPercentage decimal.Decimal   `json:"tax_percentage"`
	Items         []InvoiceItemData `json:"items"`
}

func (r InvoiceData) Validate() error {
	if r.ClientID == "" {
		return errors.New("client is required")
	}
	if len(r.Items) == 0 {
		return errors.New("at least one line item is required")
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.Description) == "" {
			return errors.New("line item description is required")
		}
		if item.Hours.IsNegative() || item.Rate.IsNegative() {
			return errors.New("line item hours and rate must not be negative")
		}
	}
	if r.IssueDate != "" {
		if _, err := time.Parse(DateFormat, r.IssueDate); err != nil {
			return errors.New("issue_date is not a valid date")
		}
	}
	if r.DueDate != "" {
		if _, err := time.Parse(DateFormat, r.DueDate); err != nil {
			return errors.New("due_date is not a valid date")
		}
	}
	return nil
}

type InvFilter struct {
	ClientID string               `json:"client_id"`
	Status   models.InvoiceStatus `json:"status"`
	apimodels.Pagination
}

type InvoiceItemView struct {
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceView struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	ClientID      string               `json:"client_id"`
	ClientName    string               `json:"client_name,omitempty"`
	IssueDate     string               `json:"issue_date"`
	DueDate       string               `json:"due_date"`
	Status        models.InvoiceStatus `json:"status"`
	StatusName    string               `json:"status_name"`
	TaxPercentage decimal.Decimal      `json:"tax_percentage"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	Items         []InvoiceItemView    `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
}

func InvoiceConvert(rec dbmodels.Invoice) InvoiceView {
	view := InvoiceView{
		ID:            rec.ID,
		InvoiceNumber: rec.InvoiceNumber,
		ClientID:      rec.ClientID,
		IssueDate:     rec.IssueDate.Format(DateFormat),
		DueDate:       rec.DueDate.Format(DateFormat),
		Status:        rec.Status,
		StatusName:    rec.Status.ToHuman(),
		TaxPercentage: rec.TaxPercentage,
		Subtotal:      rec.Subtotal.Round(2),
		Tax:           rec.Tax.Round(2),
		Total:         rec.Total.Round(2),
		CreatedAt:     rec.CreatedAt,
	}
	if rec.Client != nil {
		view.ClientName = rec.Client.Name
	}
	for _, item := range rec.Items {
		view.Items = append(view.Items, InvoiceItemView{
			Description: item.Description,
			Hours:       item.Hours,
			Rate:        item.Rate,
			Amount:      item.Amount.Round(2),
		})
	}
	return view
}
