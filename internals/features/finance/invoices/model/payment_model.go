package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentModel records the simulated Direct-Debit settlement created
// atomically with a DD invoice. Non-DD invoices never get payment rows; the
// member's account balance carries the debt instead.
type PaymentModel struct {
	PaymentID        uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentInvoiceID uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;not null;index" json:"payment_invoice_id"`
	PaymentMemberID  uuid.UUID `gorm:"column:payment_member_id;type:uuid;not null;index" json:"payment_member_id"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(10,2);not null" json:"payment_amount"`
	PaymentMethod string          `gorm:"column:payment_method;size:30;not null" json:"payment_method"`

	PaymentReceivedAt time.Time `gorm:"column:payment_received_at;not null" json:"payment_received_at"`
	PaymentCreatedAt  time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`

	PaymentLineItems []PaymentLineItemModel `gorm:"foreignKey:PaymentLineItemPaymentID;references:PaymentID" json:"payment_line_items,omitempty"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

// PaymentLineItemModel is the per-invoice-item breakdown of a payment, kept
// for audit traceability.
type PaymentLineItemModel struct {
	PaymentLineItemID            uuid.UUID `gorm:"column:payment_line_item_id;type:uuid;primaryKey" json:"payment_line_item_id"`
	PaymentLineItemPaymentID     uuid.UUID `gorm:"column:payment_line_item_payment_id;type:uuid;not null;index" json:"payment_line_item_payment_id"`
	PaymentLineItemInvoiceItemID uuid.UUID `gorm:"column:payment_line_item_invoice_item_id;type:uuid;not null" json:"payment_line_item_invoice_item_id"`

	PaymentLineItemDescription string          `gorm:"column:payment_line_item_description;size:120;not null" json:"payment_line_item_description"`
	PaymentLineItemAmount      decimal.Decimal `gorm:"column:payment_line_item_amount;type:numeric(10,2);not null" json:"payment_line_item_amount"`

	PaymentLineItemCreatedAt time.Time `gorm:"column:payment_line_item_created_at;autoCreateTime" json:"payment_line_item_created_at"`
}

func (PaymentLineItemModel) TableName() string {
	return "payment_line_items"
}

func (p *PaymentLineItemModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentLineItemID == uuid.Nil {
		p.PaymentLineItemID = uuid.New()
	}
	return nil
}
