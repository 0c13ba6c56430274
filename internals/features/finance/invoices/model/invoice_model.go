package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

/* ===================== Model ===================== */

// InvoiceModel is one membership-period invoice. At most one non-cancelled
// invoice may exist per member per period; the writer enforces it with an
// existence check inside the generation transaction.
type InvoiceModel struct {
	InvoiceID     uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`
	InvoiceNumber string    `gorm:"column:invoice_number;size:20;uniqueIndex;not null" json:"invoice_number"`

	InvoiceMemberID uuid.UUID `gorm:"column:invoice_member_id;type:uuid;not null;index:idx_invoices_member_period,priority:1" json:"invoice_member_id"`

	InvoicePeriodStart datatypes.Date `gorm:"column:invoice_period_start;type:date;not null;index:idx_invoices_member_period,priority:2" json:"invoice_period_start"`
	InvoicePeriodEnd   datatypes.Date `gorm:"column:invoice_period_end;type:date;not null;index:idx_invoices_member_period,priority:3" json:"invoice_period_end"`

	InvoiceSubtotal decimal.Decimal `gorm:"column:invoice_subtotal;type:numeric(10,2);not null" json:"invoice_subtotal"`
	InvoiceTotal    decimal.Decimal `gorm:"column:invoice_total;type:numeric(10,2);not null" json:"invoice_total"`

	// draft|sent|paid|cancelled
	InvoiceStatus string `gorm:"column:invoice_status;size:12;not null;default:'draft'" json:"invoice_status"`

	InvoiceCreatedAt time.Time `gorm:"column:invoice_created_at;autoCreateTime" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `gorm:"column:invoice_updated_at;autoUpdateTime" json:"invoice_updated_at"`

	InvoiceItems []InvoiceItemModel `gorm:"foreignKey:InvoiceItemInvoiceID;references:InvoiceID" json:"invoice_items,omitempty"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

func (i *InvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if i.InvoiceID == uuid.Nil {
		i.InvoiceID = uuid.New()
	}
	return nil
}
