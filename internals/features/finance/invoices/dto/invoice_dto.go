// file: internals/features/finance/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"linksclub_backend/internals/features/finance/invoices/model"
)

type InvoiceItemResponse struct {
	InvoiceItemID          uuid.UUID       `json:"invoice_item_id"`
	InvoiceItemFeeItemID   *uuid.UUID      `json:"invoice_item_fee_item_id,omitempty"`
	InvoiceItemKind        string          `json:"invoice_item_kind"`
	InvoiceItemDescription string          `json:"invoice_item_description"`
	InvoiceItemQuantity    int             `json:"invoice_item_quantity"`
	InvoiceItemUnitPrice   decimal.Decimal `json:"invoice_item_unit_price"`
	InvoiceItemLineTotal   decimal.Decimal `json:"invoice_item_line_total"`
}

type InvoiceResponse struct {
	InvoiceID          uuid.UUID       `json:"invoice_id"`
	InvoiceNumber      string          `json:"invoice_number"`
	InvoiceMemberID    uuid.UUID       `json:"invoice_member_id"`
	InvoicePeriodStart datatypes.Date  `json:"invoice_period_start"`
	InvoicePeriodEnd   datatypes.Date  `json:"invoice_period_end"`
	InvoiceSubtotal    decimal.Decimal `json:"invoice_subtotal"`
	InvoiceTotal       decimal.Decimal `json:"invoice_total"`
	InvoiceStatus      string          `json:"invoice_status"`
	InvoiceCreatedAt   time.Time       `json:"invoice_created_at"`

	InvoiceItems []InvoiceItemResponse `json:"invoice_items,omitempty"`
}

func ToInvoiceItemResponse(m model.InvoiceItemModel) InvoiceItemResponse {
	return InvoiceItemResponse{
		InvoiceItemID:          m.InvoiceItemID,
		InvoiceItemFeeItemID:   m.InvoiceItemFeeItemID,
		InvoiceItemKind:        m.InvoiceItemKind,
		InvoiceItemDescription: m.InvoiceItemDescription,
		InvoiceItemQuantity:    m.InvoiceItemQuantity,
		InvoiceItemUnitPrice:   m.InvoiceItemUnitPrice,
		InvoiceItemLineTotal:   m.InvoiceItemLineTotal,
	}
}

func ToInvoiceResponse(m model.InvoiceModel) InvoiceResponse {
	out := InvoiceResponse{
		InvoiceID:          m.InvoiceID,
		InvoiceNumber:      m.InvoiceNumber,
		InvoiceMemberID:    m.InvoiceMemberID,
		InvoicePeriodStart: m.InvoicePeriodStart,
		InvoicePeriodEnd:   m.InvoicePeriodEnd,
		InvoiceSubtotal:    m.InvoiceSubtotal,
		InvoiceTotal:       m.InvoiceTotal,
		InvoiceStatus:      m.InvoiceStatus,
		InvoiceCreatedAt:   m.InvoiceCreatedAt,
	}
	for _, it := range m.InvoiceItems {
		out.InvoiceItems = append(out.InvoiceItems, ToInvoiceItemResponse(it))
	}
	return out
}

func ToInvoiceResponses(list []model.InvoiceModel) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToInvoiceResponse(m))
	}
	return out
}
