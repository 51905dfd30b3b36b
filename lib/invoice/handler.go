package invoicehandler

import (
	"context"
	"fmt"
	"time"
	"wfm-tools-backend/config"
	"wfm-tools-backend/db"
	pdfexport "wfm-tools-backend/lib/export/pdf"
	invoicestore "wfm-tools-backend/lib/invoice/store"
	"wfm-tools-backend/lib/smtp"
	spacestore "wfm-tools-backend/lib/space/store"
	"wfm-tools-backend/lib/utils/helpers"
	"wfm-tools-backend/models"
	invoiceapimodels "wfm-tools-backend/models/api/invoice"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, data invoiceapimodels.InvoiceData) (id string, err error)
	GetByID(spaceID, id string) (view invoiceapimodels.InvoiceView, err error)
	Update(spaceID, id string, data invoiceapimodels.InvoiceData) error
	Delete(spaceID, id string) error
	List(spaceID string, filter invoiceapimodels.InvFilter) (list []invoiceapimodels.InvoiceView, rowCount int64, err error)
	Send(spaceID, id string) error
	MarkPaid(spaceID, id string) error
	Pdf(spaceID, id string) (pdfFile []byte, fileName string, err error)
	CheckOverdue(ctx context.Context)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      invoicestore.NewInstance(db.DB),
		spaceStore: spacestore.NewInstance(db.DB),
		sender:     smtp.Instance,
	}
}

type impl struct {
	store      invoicestore.Provider
	spaceStore spacestore.Provider
	sender     smtp.Provider
}

func (i impl) Create(spaceID string, data invoiceapimodels.InvoiceData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	if err := data.Validate(); err != nil {
		return "", err
	}
	issueDate, dueDate, err := i.resolveDates(data)
	if err != nil {
		return "", err
	}
	taxPercentage := data.TaxPercentage
	if taxPercentage.IsZero() {
		taxPercentage = decimal.NewFromFloat(config.Conf.Invoice.DefaultTaxPercentage)
	}
	totals := ComputeTotals(data.Items, taxPercentage)
	rec := dbmodels.Invoice{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		ClientID:       data.ClientID,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Status:         models.InvStatusDraft,
		TaxPercentage:  taxPercentage,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Items:          buildItems(data.Items),
	}
	// number issued in the same transaction as the insert, so concurrent
	// creates cannot observe the same previous maximum
	err = i.store.Transaction(func(store invoicestore.Provider) error {
		number, err := store.NextNumber(spaceID, issueDate.Year())
		if err != nil {
			return err
		}
		rec.InvoiceNumber = number
		id, err = store.Create(rec)
		return err
	})
	if err != nil {
		logger.WithError(err).Error("failed to create invoice")
		return "", err
	}
	logger.WithField("invoice_number", rec.InvoiceNumber).Info("invoice created")
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (invoiceapimodels.InvoiceView, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return invoiceapimodels.InvoiceView{}, err
	}
	return invoiceapimodels.InvoiceConvert(*rec), nil
}

func (i impl) Update(spaceID, id string, data invoiceapimodels.InvoiceData) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsEditable() {
		return models.NewDomainError("invoice in status %v cannot be edited", rec.Status.ToHuman())
	}
	issueDate, dueDate, err := i.resolveDates(data)
	if err != nil {
		return err
	}
	taxPercentage := data.TaxPercentage
	if taxPercentage.IsZero() {
		taxPercentage = rec.TaxPercentage
	}
	totals := ComputeTotals(data.Items, taxPercentage)
	items := buildItems(data.Items)
	for idx := range items {
		items[idx].InvoiceID = id
	}
	updMap := map[string]interface{}{
		"ClientID":      data.ClientID,
		"IssueDate":     issueDate,
		"DueDate":       dueDate,
		"TaxPercentage": taxPercentage,
		"Subtotal":      totals.Subtotal,
		"Tax":           totals.Tax,
		"Total":         totals.Total,
	}
	err = i.store.Transaction(func(store invoicestore.Provider) error {
		if err := store.Update(spaceID, id, updMap); err != nil {
			return err
		}
		return store.ReplaceItems(id, items)
	})
	if err != nil {
		logger.WithError(err).Error("failed to update invoice")
		return err
	}
	logger.Info("invoice updated")
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if rec.Status != models.InvStatusDraft {
		return models.NewDomainError("only draft invoices can be deleted")
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("failed to delete invoice")
		return err
	}
	logger.Info("invoice deleted")
	return nil
}

func (i impl) List(spaceID string, filter invoiceapimodels.InvFilter) (list []invoiceapimodels.InvoiceView, rowCount int64, err error) {
	logger := log.WithField("space_id", spaceID)
	rowCount, err = i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []invoiceapimodels.InvoiceView{}, rowCount, nil
	}
	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("failed to list invoices")
		return nil, 0, err
	}
	result := make([]invoiceapimodels.InvoiceView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, invoiceapimodels.InvoiceConvert(rec))
	}
	return result, rowCount, nil
}

// Send issues the invoice to its client: the status moves to pending and the
// client gets an email notification. A missing client email blocks sending,
// an SMTP failure after the transition does not undo it.
func (i impl) Send(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsAllowChange(models.InvStatusPending) {
		return models.NewDomainError("invoice in status %v cannot be sent", rec.Status.ToHuman())
	}
	if rec.Client == nil || rec.Client.Email == "" {
		return models.NewDomainError("client has no email address")
	}
	err = i.store.Update(spaceID, id, map[string]interface{}{
		"Status": models.InvStatusPending,
	})
	if err != nil {
		logger.WithError(err).Error("failed to send invoice")
		return err
	}
	logger.Info("invoice sent")
	message := fmt.Sprintf(
		"Invoice %s for %s is due on %s.\nAmount due: %s.",
		rec.InvoiceNumber,
		rec.Client.Name,
		rec.DueDate.Format(invoiceapimodels.DateFormat),
		rec.Total.StringFixed(2),
	)
	if err := i.sender.SendEMail(models.SystemUser, rec.Client.Email, message, "Invoice "+rec.InvoiceNumber); err != nil {
		logger.WithError(err).Error("failed to email the invoice, status already changed")
	}
	return nil
}

func (i impl) MarkPaid(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsAllowChange(models.InvStatusPaid) {
		return models.NewDomainError("invoice in status %v cannot be marked as paid", rec.Status.ToHuman())
	}
	err = i.store.Update(spaceID, id, map[string]interface{}{
		"Status": models.InvStatusPaid,
	})
	if err != nil {
		logger.WithError(err).Error("failed to mark invoice as paid")
		return err
	}
	logger.Info("invoice marked as paid")
	return nil
}

func (i impl) Pdf(spaceID, id string) ([]byte, string, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return nil, "", err
	}
	spaceName := ""
	space, err := i.spaceStore.GetByID(spaceID)
	if err == nil && space != nil {
		spaceName = space.OrganizationName
	}
	pdfFile, err := pdfexport.GenerateInvoice(*rec, spaceName)
	if err != nil {
		return nil, "", err
	}
	return pdfFile, fmt.Sprintf("%s.pdf", rec.InvoiceNumber), nil
}

// CheckOverdue flips pending invoices past their due date to overdue.
// Called periodically by the overdue worker.
func (i impl) CheckOverdue(ctx context.Context) {
	logger := log.WithField("worker", "invoice_overdue")
	list, err := i.store.ListOverdue(time.Now())
	if err != nil {
		logger.WithError(err).Error("failed to load overdue candidates")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		if !rec.Status.IsAllowChange(models.InvStatusOverdue) {
			continue
		}
		err = i.store.Update(rec.SpaceID, rec.ID, map[string]interface{}{
			"Status": models.InvStatusOverdue,
		})
		if err != nil {
			logger.WithError(err).
				WithField("rec_id", rec.ID).
				Error("failed to mark invoice as overdue")
			continue
		}
		logger.
			WithField("rec_id", rec.ID).
			WithField("invoice_number", rec.InvoiceNumber).
			Info("invoice marked as overdue")
	}
}

func (i impl) resolveDates(data invoiceapimodels.InvoiceData) (issueDate, dueDate time.Time, err error) {
	issueDate = time.Now().UTC().Truncate(24 * time.Hour)
	if data.IssueDate != "" {
		issueDate, err = time.Parse(invoiceapimodels.DateFormat, data.IssueDate)
		if err != nil {
			return time.Time{}, time.Time{}, models.NewValidationError("issue_date is not a valid date")
		}
	}
	dueDate = issueDate.AddDate(0, 0, config.Conf.Invoice.DueInDays)
	if data.DueDate != "" {
		dueDate, err = time.Parse(invoiceapimodels.DateFormat, data.DueDate)
		if err != nil {
			return time.Time{}, time.Time{}, models.NewValidationError("due_date is not a valid date")
		}
	}
	if dueDate.Before(issueDate) {
		return time.Time{}, time.Time{}, models.NewValidationError("due_date must not be before issue_date")
	}
	return issueDate, dueDate, nil
}

func buildItems(items []invoiceapimodels.InvoiceItemData) []dbmodels.InvoiceItem {
	result := make([]dbmodels.InvoiceItem, 0, len(items))
	for idx, item := range items {
		result = append(result, dbmodels.InvoiceItem{
			Position:    idx + 1,
			Description: item.Description,
			Hours:       item.Hours,
			Rate:        item.Rate,
			Amount:      LineAmount(item.Hours, item.Rate),
		})
	}
	return result
}

func (i impl) getRec(spaceID, id string) (*dbmodels.Invoice, error) {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		logger.WithError(err).Error("failed to get invoice")
		return nil, err
	}
	if rec == nil {
		return nil, models.NewDomainError("invoice not found")
	}
	return rec, nil
}
