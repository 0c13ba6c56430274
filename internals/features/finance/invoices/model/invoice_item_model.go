package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceItemModel is one persisted fee line. Quantity is always 1 in
// practice; line_total is kept denormalized for audit queries.
type InvoiceItemModel struct {
	InvoiceItemID        uuid.UUID  `gorm:"column:invoice_item_id;type:uuid;primaryKey" json:"invoice_item_id"`
	InvoiceItemInvoiceID uuid.UUID  `gorm:"column:invoice_item_invoice_id;type:uuid;not null;index" json:"invoice_item_invoice_id"`
	InvoiceItemFeeItemID *uuid.UUID `gorm:"column:invoice_item_fee_item_id;type:uuid" json:"invoice_item_fee_item_id,omitempty"`

	// Typed fee kind (subscription|england_golf|county|locker).
	InvoiceItemKind        string          `gorm:"column:invoice_item_kind;size:20;not null" json:"invoice_item_kind"`
	InvoiceItemDescription string          `gorm:"column:invoice_item_description;size:120;not null" json:"invoice_item_description"`
	InvoiceItemQuantity    int             `gorm:"column:invoice_item_quantity;not null;default:1" json:"invoice_item_quantity"`
	InvoiceItemUnitPrice   decimal.Decimal `gorm:"column:invoice_item_unit_price;type:numeric(10,2);not null" json:"invoice_item_unit_price"`
	InvoiceItemLineTotal   decimal.Decimal `gorm:"column:invoice_item_line_total;type:numeric(10,2);not null" json:"invoice_item_line_total"`

	InvoiceItemCreatedAt time.Time `gorm:"column:invoice_item_created_at;autoCreateTime" json:"invoice_item_created_at"`
}

func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

func (i *InvoiceItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.InvoiceItemID == uuid.Nil {
		i.InvoiceItemID = uuid.New()
	}
	return nil
}
