// file: internals/features/finance/directdebit/service/export.go
package service

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"

	"gorm.io/gorm"

	"linksclub_backend/internals/constants"
	membermodel "linksclub_backend/internals/features/members/model"
	memberservice "linksclub_backend/internals/features/members/service"
	feeservice "linksclub_backend/internals/features/finance/fees/service"
)

// ScheduleExportRow is one line of the Clubwise DD upload file.
type ScheduleExportRow struct {
	Name                     string
	MembershipNumber         int
	CRMMembershipType        string
	DDMembershipType         string
	DDSubscriptionID         string
	FirstMonthlyPayment      string
	SubsequentMonthlyPayment string
	FirstPaymentDate         string
}

var exportHeader = []string{
	"Name",
	"Membership Number",
	"CRM Membership Type",
	"DD Membership Type",
	"DD Subscription ID",
	"First Monthly Payment",
	"Subsequent Monthly Payment",
	"First Payment Date",
}

// BuildExportRows computes a DD schedule for every Direct-Debit member and
// flattens it to export rows. Members whose category has no subscription fee
// are skipped with a log line; the export carries on.
func BuildExportRows(db *gorm.DB, year int, amounts feeservice.FeeAmounts) ([]ScheduleExportRow, error) {
	var members []membermodel.MemberModel
	if err := db.
		Where("member_payment_method = ?", constants.PaymentMethodDirectDebit).
		Order("member_club_number ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	rows := make([]ScheduleExportRow, 0, len(members))
	for _, m := range members {
		sub, err := feeservice.LookupSubscriptionFee(db, m.MemberCategory)
		if err != nil {
			log.Printf("[DD EXPORT] skipping member %d: %v", m.MemberClubNumber, err)
			continue
		}
		sched := CalculateSchedule(feeservice.ProfileFromMember(m), sub.FeeItemAmount, year, amounts)
		rows = append(rows, ScheduleExportRow{
			Name:                     m.FullName(),
			MembershipNumber:         m.MemberClubNumber,
			CRMMembershipType:        m.MemberCategory,
			DDMembershipType:         memberservice.ParseCategory(m.MemberCategory).Base,
			DDSubscriptionID:         sub.FeeItemID.String(),
			FirstMonthlyPayment:      sched.InitialCollectionTotal.StringFixed(2),
			SubsequentMonthlyPayment: sched.MonthlyPayment.StringFixed(2),
			FirstPaymentDate:         sched.CollectionDate.Format("02/01/2006"),
		})
	}
	return rows, nil
}

// WriteScheduleCSV writes rows in the Clubwise upload layout.
func WriteScheduleCSV(w io.Writer, rows []ScheduleExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Name,
			strconv.Itoa(r.MembershipNumber),
			r.CRMMembershipType,
			r.DDMembershipType,
			r.DDSubscriptionID,
			r.FirstMonthlyPayment,
			r.SubsequentMonthlyPayment,
			r.FirstPaymentDate,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
