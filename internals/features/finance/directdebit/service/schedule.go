// file: internals/features/finance/directdebit/service/schedule.go
package service

import (
	"time"

	"github.com/shopspring/decimal"

	feeservice "linksclub_backend/internals/features/finance/fees/service"
)

var (
	eleven = decimal.NewFromInt(11)
	twelve = decimal.NewFromInt(12)
)

// PaymentSchedule is a computed 12-instalment Direct-Debit plan for one
// membership year. It is never persisted; the CSV export and the renewal
// notice render it directly.
//
// Structural invariants, asserted by the test suite rather than checked at
// runtime:
//
//	FirstMonthPayment + 11*MonthlyPayment == AnnualSubscription
//	InitialCollectionTotal == EnglandGolfFee + CountyFee + LockerFee + FirstMonthPayment
type PaymentSchedule struct {
	AnnualSubscription     decimal.Decimal `json:"annual_subscription"`
	EnglandGolfFee         decimal.Decimal `json:"england_golf_fee"`
	CountyFee              decimal.Decimal `json:"county_fee"`
	LockerFee              decimal.Decimal `json:"locker_fee"`
	MonthlyPayment         decimal.Decimal `json:"monthly_payment"`
	FirstMonthPayment      decimal.Decimal `json:"first_month_payment"`
	InitialCollectionTotal decimal.Decimal `json:"initial_collection_total"`
	CollectionDate         time.Time       `json:"collection_date"`
	MembershipYear         int             `json:"membership_year"`
}

// CalculateSchedule turns an annual subscription into the 12-instalment DD
// plan. The monthly instalment is truncated (not rounded) to whole pence and
// the first instalment absorbs the remainder, so the 12 collections always
// reconcile to the annual amount exactly. The flat fees ride on the first
// collection in full; the renewal-notice fee variant decides which apply.
func CalculateSchedule(p feeservice.MemberFeeProfile, subscription decimal.Decimal, year int, amounts feeservice.FeeAmounts) PaymentSchedule {
	eg := decimal.Zero
	county := decimal.Zero
	locker := decimal.Zero
	for _, li := range feeservice.AdditionalFeesForNotices(p, amounts) {
		switch li.Kind {
		case feeservice.FeeKindEnglandGolf:
			eg = li.UnitPrice
		case feeservice.FeeKindCounty:
			county = li.UnitPrice
		case feeservice.FeeKindLocker:
			locker = li.UnitPrice
		}
	}

	monthly := subscription.Div(twelve).Truncate(2)
	first := subscription.Sub(monthly.Mul(eleven)).Round(2)
	initial := eg.Add(county).Add(locker).Add(first).Round(2)

	return PaymentSchedule{
		AnnualSubscription:     subscription.Round(2),
		EnglandGolfFee:         eg,
		CountyFee:              county,
		LockerFee:              locker,
		MonthlyPayment:         monthly,
		FirstMonthPayment:      first,
		InitialCollectionTotal: initial,
		CollectionDate:         time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC),
		MembershipYear:         year,
	}
}

// CollectionDates lists the 12 collection dates: 1 April, then the 1st of
// each month May through March, rolling into the next calendar year for
// January to March.
func (s PaymentSchedule) CollectionDates() []time.Time {
	dates := make([]time.Time, 0, 12)
	d := s.CollectionDate
	for i := 0; i < 12; i++ {
		dates = append(dates, d)
		d = d.AddDate(0, 1, 0)
	}
	return dates
}

// InstalmentAmounts lists the 12 collection amounts, aligned with
// CollectionDates. The first carries the flat fees.
func (s PaymentSchedule) InstalmentAmounts() []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, 12)
	amounts = append(amounts, s.InitialCollectionTotal)
	for i := 0; i < 11; i++ {
		amounts = append(amounts, s.MonthlyPayment)
	}
	return amounts
}

// AnnualTotal is the sum of all 12 collections.
func (s PaymentSchedule) AnnualTotal() decimal.Decimal {
	return s.InitialCollectionTotal.Add(s.MonthlyPayment.Mul(eleven)).Round(2)
}

// Consolidate sums member schedules field-by-field into one family-level
// plan (payer + dependants on a single mandate). Each member's schedule is
// rounded first and then summed, so the family totals match the per-member
// penny amounts exactly; they may differ from a hypothetical un-rounded
// aggregate by up to a penny per member, which is the intended behaviour.
func Consolidate(schedules []PaymentSchedule) PaymentSchedule {
	var out PaymentSchedule
	if len(schedules) == 0 {
		return out
	}
	out.CollectionDate = schedules[0].CollectionDate
	out.MembershipYear = schedules[0].MembershipYear
	for _, s := range schedules {
		out.AnnualSubscription = out.AnnualSubscription.Add(s.AnnualSubscription)
		out.EnglandGolfFee = out.EnglandGolfFee.Add(s.EnglandGolfFee)
		out.CountyFee = out.CountyFee.Add(s.CountyFee)
		out.LockerFee = out.LockerFee.Add(s.LockerFee)
		out.MonthlyPayment = out.MonthlyPayment.Add(s.MonthlyPayment)
		out.FirstMonthPayment = out.FirstMonthPayment.Add(s.FirstMonthPayment)
		out.InitialCollectionTotal = out.InitialCollectionTotal.Add(s.InitialCollectionTotal)
	}
	out.AnnualSubscription = out.AnnualSubscription.Round(2)
	out.MonthlyPayment = out.MonthlyPayment.Round(2)
	out.FirstMonthPayment = out.FirstMonthPayment.Round(2)
	out.InitialCollectionTotal = out.InitialCollectionTotal.Round(2)
	return out
}
