package dbmodels

import (
	"time"
	"wfm-tools-backend/models"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	BaseSpaceModel
	ClientID      string `gorm:"index"`
	Client        *Client `gorm:"foreignKey:ClientID"`
	InvoiceNumber string  `gorm:"type:varchar(20);index"`
	IssueDate     time.Time `gorm:"type:date"`
	DueDate       time.Time `gorm:"type:date"`
	Status        models.InvoiceStatus `gorm:"type:varchar(20);index"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2)"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2)"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2)"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2)"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

type InvoiceItem struct {
	BaseModel
	InvoiceID   string `gorm:"index"`
	Position    int
	Description string          `gorm:"type:varchar(500)"`
	Hours       decimal.Decimal `gorm:"type:decimal(10,2)"`
	Rate        decimal.Decimal `gorm:"type:decimal(10,2)"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)"`
}
