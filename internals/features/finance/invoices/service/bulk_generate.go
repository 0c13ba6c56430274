// file: internals/features/finance/invoices/service/bulk_generate.go
package service

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"linksclub_backend/internals/constants"
	membermodel "linksclub_backend/internals/features/members/model"
	memberservice "linksclub_backend/internals/features/members/service"
	"linksclub_backend/internals/features/finance/invoices/model"
)

// BulkResult is the per-call outcome of a batched invoice run. Remaining is
// how many eligible members are still uninvoiced; the caller re-invokes
// until it reaches zero.
type BulkResult struct {
	Generated int      `json:"generated"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
	Remaining int64    `json:"remaining"`
}

// BulkGenerate invoices up to batchSize members who have no active invoice
// for the year. One member's failure is recorded and the batch carries on;
// only a broken eligibility query aborts the run.
func (w *InvoiceWriter) BulkGenerate(year, batchSize int) (BulkResult, error) {
	out := BulkResult{Errors: []string{}}
	if batchSize <= 0 {
		batchSize = constants.BulkBatchSize
	}

	members, err := w.eligibleMembers(year, batchSize)
	if err != nil {
		return out, err
	}

	for _, m := range members {
		opts := GenerateOptions{
			Year:     year,
			IsDD:     m.MemberPaymentMethod == constants.PaymentMethodDirectDebit,
			IsSocial: m.MemberPaymentMethod == constants.PaymentMethodSocial || memberservice.IsSocial(m.MemberCategory),
		}
		res, err := w.GenerateForMember(m.MemberID, opts)
		if err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("%s (#%d): %v", m.FullName(), m.MemberClubNumber, err))
			continue
		}
		if res.AlreadyExists {
			out.Skipped++
			continue
		}
		out.Generated++
	}

	remaining, err := w.countEligible(year)
	if err != nil {
		return out, err
	}
	out.Remaining = remaining
	return out, nil
}

func (w *InvoiceWriter) eligibleQuery(year int) *gorm.DB {
	start, end := MembershipPeriod(year)
	sub := w.DB.Model(&model.InvoiceModel{}).
		Select("1").
		Where("invoice_member_id = members.member_id").
		Where("invoice_period_start = ? AND invoice_period_end = ?", datatypes.Date(start), datatypes.Date(end)).
		Where("invoice_status <> ?", model.InvoiceStatusCancelled)
	return w.DB.Model(&membermodel.MemberModel{}).Where("NOT EXISTS (?)", sub)
}

func (w *InvoiceWriter) eligibleMembers(year, limit int) ([]membermodel.MemberModel, error) {
	var members []membermodel.MemberModel
	err := w.eligibleQuery(year).
		Order("member_club_number ASC").
		Limit(limit).
		Find(&members).Error
	return members, err
}

func (w *InvoiceWriter) countEligible(year int) (int64, error) {
	var n int64
	err := w.eligibleQuery(year).Count(&n).Error
	return n, err
}
