package invoicestore

import (
	"fmt"
	"time"
	"wfm-tools-backend/models"
	invoiceapimodels "wfm-tools-backend/models/api/invoice"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Invoice) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Invoice, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	ReplaceItems(invoiceID string, items []dbmodels.InvoiceItem) error
	Delete(spaceID, id string) error
	List(spaceID string, filter invoiceapimodels.InvFilter) (list []dbmodels.Invoice, err error)
	ListCount(spaceID string, filter invoiceapimodels.InvFilter) (count int64, err error)
	ListOverdue(asOf time.Time) (list []dbmodels.Invoice, err error)
	// NextNumber issues the next invoice number for the space and year.
	// Must be called inside Transaction: the row lock on the previous
	// maximum keeps the sequence monotonic under concurrent issuing.
	NextNumber(spaceID string, year int) (string, error)
	Transaction(fn func(store Provider) error) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Invoice) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Invoice, error) {
	rec := dbmodels.Invoice{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Client").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Invoice{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ReplaceItems(invoiceID string, items []dbmodels.InvoiceItem) error {
	err := i.db.
		Where("invoice_id = ?", invoiceID).
		Delete(&dbmodels.InvoiceItem{}).
		Error
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return i.db.Create(&items).Error
}

func (i impl) Delete(spaceID, id string) error {
	err := i.db.
		Where("invoice_id = ?", id).
		Delete(&dbmodels.InvoiceItem{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.Invoice{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.Delete(&rec).Error
}

func (i impl) listQuery(spaceID string, filter invoiceapimodels.InvFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.Invoice{}).
		Where("space_id = ?", spaceID)
	if filter.ClientID != "" {
		tx = tx.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	return tx
}

func (i impl) List(spaceID string, filter invoiceapimodels.InvFilter) (list []dbmodels.Invoice, err error) {
	page, limit := filter.GetPage()
	list = []dbmodels.Invoice{}
	err = i.listQuery(spaceID, filter).
		Preload("Client").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).
		Order("invoice_number desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID string, filter invoiceapimodels.InvFilter) (count int64, err error) {
	err = i.listQuery(spaceID, filter).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListOverdue(asOf time.Time) (list []dbmodels.Invoice, err error) {
	list = []dbmodels.Invoice{}
	err = i.db.
		Where("status = ?", models.InvStatusPending).
		Where("due_date < ?", asOf).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) NextNumber(spaceID string, year int) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", year)
	last := dbmodels.Invoice{}
	// Suffixes are zero-padded to 4 digits but unbounded, so a plain
	// lexicographic sort would rank 9999 above 10000. Longer suffix first.
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("space_id = ?", spaceID).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("length(invoice_number) desc, invoice_number desc").
		First(&last).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return NextInvoiceNumber(last.InvoiceNumber, prefix), nil
}

// NextInvoiceNumber increments the numeric suffix of the latest issued
// number, starting a fresh sequence when none exists for the year yet.
func NextInvoiceNumber(last, prefix string) string {
	next := 1
	if last != "" {
		var year, seq int
		if _, err := fmt.Sscanf(last, "INV-%d-%d", &year, &seq); err == nil {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, next)
}

func (i impl) Transaction(fn func(store Provider) error) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewInstance(tx))
	})
}
