// file: internals/features/finance/invoices/service/invoice_writer.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"linksclub_backend/internals/constants"
	membermodel "linksclub_backend/internals/features/members/model"
	memberservice "linksclub_backend/internals/features/members/service"
	feeservice "linksclub_backend/internals/features/finance/fees/service"
	"linksclub_backend/internals/features/finance/invoices/model"
)

// InvoiceWriter converts computed line items into persisted invoice +
// payment records while keeping the account-balance invariant: a draft
// (non-DD) invoice adds its total to the member's balance on creation and
// removes it again on deletion; a DD invoice never touches the balance.
type InvoiceWriter struct {
	DB *gorm.DB
}

func NewInvoiceWriter(db *gorm.DB) *InvoiceWriter {
	return &InvoiceWriter{DB: db}
}

type GenerateOptions struct {
	Year     int
	IsDD     bool
	IsSocial bool
}

type GenerateResult struct {
	InvoiceNumber string          `json:"invoice_number"`
	AlreadyExists bool            `json:"already_exists"`
	Total         decimal.Decimal `json:"total"`
}

// MembershipPeriod returns the 1 April .. 31 March bounds for a year.
func MembershipPeriod(year int) (time.Time, time.Time) {
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// GenerateForMember creates the invoice (and, for DD, the payment rows) for
// one member's membership year inside a single transaction.
//
// Idempotency: a non-cancelled invoice already covering the period short-
// circuits to AlreadyExists=true; no duplicate rows are written. A category
// with no subscription fee returns feeservice.ErrNoSubscriptionFee, which
// batch callers report and carry on from.
func (w *InvoiceWriter) GenerateForMember(memberID uuid.UUID, opts GenerateOptions) (GenerateResult, error) {
	var out GenerateResult
	start, end := MembershipPeriod(opts.Year)
	periodStart := datatypes.Date(start)
	periodEnd := datatypes.Date(end)

	err := w.DB.Transaction(func(tx *gorm.DB) error {
		var m membermodel.MemberModel
		if err := tx.First(&m, "member_id = ?", memberID).Error; err != nil {
			return err
		}

		var existing model.InvoiceModel
		err := tx.Where(
			"invoice_member_id = ? AND invoice_period_start = ? AND invoice_period_end = ? AND invoice_status <> ?",
			memberID, periodStart, periodEnd, model.InvoiceStatusCancelled,
		).First(&existing).Error
		if err == nil {
			out = GenerateResult{InvoiceNumber: existing.InvoiceNumber, AlreadyExists: true, Total: existing.InvoiceTotal}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		isSocial := opts.IsSocial || memberservice.IsSocial(m.MemberCategory)
		amounts := feeservice.LoadFeeAmounts(tx)
		lines, err := feeservice.BuildInvoiceLines(tx, m, amounts, isSocial)
		if err != nil {
			return err
		}

		number, err := nextInvoiceNumber(tx, opts.Year)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, li := range lines {
			total = total.Add(li.UnitPrice)
		}
		total = total.Round(2)

		status := model.InvoiceStatusDraft
		if opts.IsDD {
			status = model.InvoiceStatusPaid
		}

		inv := model.InvoiceModel{
			InvoiceNumber:      number,
			InvoiceMemberID:    m.MemberID,
			InvoicePeriodStart: periodStart,
			InvoicePeriodEnd:   periodEnd,
			InvoiceSubtotal:    total,
			InvoiceTotal:       total,
			InvoiceStatus:      status,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		items := make([]model.InvoiceItemModel, 0, len(lines))
		for _, li := range lines {
			items = append(items, model.InvoiceItemModel{
				InvoiceItemInvoiceID:   inv.InvoiceID,
				InvoiceItemFeeItemID:   li.FeeItemID,
				InvoiceItemKind:        string(li.Kind),
				InvoiceItemDescription: li.Description,
				InvoiceItemQuantity:    1,
				InvoiceItemUnitPrice:   li.UnitPrice,
				InvoiceItemLineTotal:   li.UnitPrice,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		if opts.IsDD {
			// DD collection is assumed settled immediately, so the ledger
			// gets payment rows and the balance stays put.
			pay := model.PaymentModel{
				PaymentInvoiceID:  inv.InvoiceID,
				PaymentMemberID:   m.MemberID,
				PaymentAmount:     total,
				PaymentMethod:     constants.PaymentMethodClubwiseDD,
				PaymentReceivedAt: time.Now(),
			}
			if err := tx.Create(&pay).Error; err != nil {
				return err
			}
			plis := make([]model.PaymentLineItemModel, 0, len(items))
			for _, it := range items {
				plis = append(plis, model.PaymentLineItemModel{
					PaymentLineItemPaymentID:     pay.PaymentID,
					PaymentLineItemInvoiceItemID: it.InvoiceItemID,
					PaymentLineItemDescription:   it.InvoiceItemDescription,
					PaymentLineItemAmount:        it.InvoiceItemLineTotal,
				})
			}
			if err := tx.Create(&plis).Error; err != nil {
				return err
			}

			now := time.Now()
			renewed := datatypes.Date(now)
			m.MemberDateRenewed = &renewed
			m.MemberDateExpires = &periodEnd
			m.MemberDateSubscriptionPaid = &now
			if err := tx.Save(&m).Error; err != nil {
				return err
			}
		} else {
			m.MemberAccountBalance = m.MemberAccountBalance.Add(total).Round(2)
			if err := tx.Save(&m).Error; err != nil {
				return err
			}
		}

		out = GenerateResult{InvoiceNumber: number, Total: total}
		return nil
	})
	return out, err
}

// Delete removes an invoice and everything hanging off it, reversing the
// balance for draft invoices and clearing the member's renewal date.
// Cascade order: payment line items -> payments -> invoice items -> invoice.
func (w *InvoiceWriter) Delete(invoiceID uuid.UUID) error {
	return w.DB.Transaction(func(tx *gorm.DB) error {
		var inv model.InvoiceModel
		if err := tx.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
			return err
		}

		var payments []model.PaymentModel
		if err := tx.Where("payment_invoice_id = ?", inv.InvoiceID).Find(&payments).Error; err != nil {
			return err
		}
		for _, p := range payments {
			if err := tx.Where("payment_line_item_payment_id = ?", p.PaymentID).
				Delete(&model.PaymentLineItemModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("payment_invoice_id = ?", inv.InvoiceID).
			Delete(&model.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_item_invoice_id = ?", inv.InvoiceID).
			Delete(&model.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&inv).Error; err != nil {
			return err
		}

		var m membermodel.MemberModel
		if err := tx.First(&m, "member_id = ?", inv.InvoiceMemberID).Error; err != nil {
			return err
		}
		if inv.InvoiceStatus == model.InvoiceStatusDraft {
			m.MemberAccountBalance = m.MemberAccountBalance.Sub(inv.InvoiceTotal).Round(2)
		}
		m.MemberDateRenewed = nil
		return tx.Save(&m).Error
	})
}

// nextInvoiceNumber allocates INV-{year}-{seq:03d} from the per-year counter
// with an atomic upsert; no read-then-compute gap.
func nextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	ctr := model.InvoiceCounterModel{InvoiceCounterYear: year, InvoiceCounterLastSeq: 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "invoice_counter_year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"invoice_counter_last_seq": gorm.Expr("invoice_counter_last_seq + 1"),
		}),
	}).Create(&ctr).Error; err != nil {
		return "", err
	}
	if err := tx.First(&ctr, "invoice_counter_year = ?", year).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%03d", year, ctr.InvoiceCounterLastSeq), nil
}
