package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feeservice "linksclub_backend/internals/features/finance/fees/service"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testAmounts() feeservice.FeeAmounts {
	return feeservice.FeeAmounts{
		EnglandGolf: dec("12.00"),
		County:      dec("6.50"),
		Locker:      dec("10.00"),
	}
}

// Home CDH member, no locker: pays England Golf + County on top.
func homeProfile() feeservice.MemberFeeProfile {
	return feeservice.MemberFeeProfile{Category: "Full", HomeAway: "H", HasCDH: true}
}

// Away member: no affiliation fees, no locker.
func awayProfile() feeservice.MemberFeeProfile {
	return feeservice.MemberFeeProfile{Category: "Full", HomeAway: "A", HasCDH: true}
}

func TestCalculateSchedule_EvenSplit(t *testing.T) {
	// 432.00 divides evenly: every instalment is 36.00.
	s := CalculateSchedule(awayProfile(), dec("432.00"), 2026, testAmounts())
	assert.True(t, s.MonthlyPayment.Equal(dec("36.00")), "monthly = %s", s.MonthlyPayment)
	assert.True(t, s.FirstMonthPayment.Equal(dec("36.00")), "first = %s", s.FirstMonthPayment)
}

func TestCalculateSchedule_RemainderGoesToFirst(t *testing.T) {
	// 327.50 / 12 = 27.2916..; truncated monthly 27.29, first absorbs the
	// remainder: 327.50 - 11*27.29 = 27.31.
	s := CalculateSchedule(awayProfile(), dec("327.50"), 2026, testAmounts())
	assert.True(t, s.MonthlyPayment.Equal(dec("27.29")), "monthly = %s", s.MonthlyPayment)
	assert.True(t, s.FirstMonthPayment.Equal(dec("27.31")), "first = %s", s.FirstMonthPayment)
}

func TestCalculateSchedule_LargerRemainder(t *testing.T) {
	// 301.50 / 12 = 25.125; truncated 25.12, first = 301.50 - 11*25.12 = 25.18.
	s := CalculateSchedule(awayProfile(), dec("301.50"), 2026, testAmounts())
	assert.True(t, s.MonthlyPayment.Equal(dec("25.12")), "monthly = %s", s.MonthlyPayment)
	assert.True(t, s.FirstMonthPayment.Equal(dec("25.18")), "first = %s", s.FirstMonthPayment)
}

func TestCalculateSchedule_InstalmentsReconcile(t *testing.T) {
	// Property: first + 11*monthly == subscription, for awkward amounts too.
	for _, sub := range []string{"432.00", "327.50", "301.50", "100.01", "99.99", "555.55", "0.11", "1.00"} {
		s := CalculateSchedule(awayProfile(), dec(sub), 2026, testAmounts())
		got := s.FirstMonthPayment.Add(s.MonthlyPayment.Mul(decimal.NewFromInt(11)))
		assert.True(t, got.Equal(dec(sub)), "subscription %s reconciles to %s", sub, got)
	}
}

func TestCalculateSchedule_FlatFeesOnFirstCollection(t *testing.T) {
	s := CalculateSchedule(homeProfile(), dec("432.00"), 2026, testAmounts())
	assert.True(t, s.EnglandGolfFee.Equal(dec("12.00")))
	assert.True(t, s.CountyFee.Equal(dec("6.50")))
	assert.True(t, s.LockerFee.IsZero())
	// 36.00 + 12.00 + 6.50
	assert.True(t, s.InitialCollectionTotal.Equal(dec("54.50")), "initial = %s", s.InitialCollectionTotal)
	assert.True(t, s.AnnualTotal().Equal(dec("450.50")), "annual = %s", s.AnnualTotal())
}

func TestCalculateSchedule_LockerFee(t *testing.T) {
	p := homeProfile()
	p.HasLocker = true
	s := CalculateSchedule(p, dec("432.00"), 2026, testAmounts())
	assert.True(t, s.LockerFee.Equal(dec("10.00")))
	assert.True(t, s.InitialCollectionTotal.Equal(dec("64.50")))
}

func TestCalculateSchedule_UsesNoticeFeeVariant(t *testing.T) {
	// Away out-of-county member with a home handicap gets England Golf on the
	// schedule; the invoicing variant would not grant it.
	p := feeservice.MemberFeeProfile{
		Category:        "Out of County",
		HomeAway:        "A",
		HasCDH:          true,
		HasHomeHandicap: true,
	}
	s := CalculateSchedule(p, dec("200.00"), 2026, testAmounts())
	assert.True(t, s.EnglandGolfFee.Equal(dec("12.00")))
	assert.True(t, s.CountyFee.IsZero())
}

func TestCollectionDates(t *testing.T) {
	s := CalculateSchedule(awayProfile(), dec("432.00"), 2026, testAmounts())
	dates := s.CollectionDates()
	require.Len(t, dates, 12)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), dates[8])
	// Rolls into the next calendar year.
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), dates[9])
	assert.Equal(t, time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC), dates[11])
}

func TestInstalmentAmounts(t *testing.T) {
	s := CalculateSchedule(homeProfile(), dec("327.50"), 2026, testAmounts())
	amounts := s.InstalmentAmounts()
	require.Len(t, amounts, 12)
	assert.True(t, amounts[0].Equal(s.InitialCollectionTotal))
	for i := 1; i < 12; i++ {
		assert.True(t, amounts[i].Equal(s.MonthlyPayment))
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	assert.True(t, total.Equal(s.AnnualTotal()))
}

func TestConsolidate(t *testing.T) {
	a := CalculateSchedule(homeProfile(), dec("432.00"), 2026, testAmounts())
	b := CalculateSchedule(awayProfile(), dec("327.50"), 2026, testAmounts())

	fam := Consolidate([]PaymentSchedule{a, b})
	assert.True(t, fam.AnnualSubscription.Equal(dec("759.50")))
	// 36.00 + 27.29
	assert.True(t, fam.MonthlyPayment.Equal(dec("63.29")), "monthly = %s", fam.MonthlyPayment)
	// 54.50 + 27.31
	assert.True(t, fam.InitialCollectionTotal.Equal(dec("81.81")), "initial = %s", fam.InitialCollectionTotal)
	assert.Equal(t, a.CollectionDate, fam.CollectionDate)
	assert.Equal(t, 2026, fam.MembershipYear)

	// Family total still reconciles against the per-member totals.
	want := a.AnnualTotal().Add(b.AnnualTotal())
	assert.True(t, fam.AnnualTotal().Equal(want))
}

func TestConsolidate_Empty(t *testing.T) {
	fam := Consolidate(nil)
	assert.True(t, fam.AnnualSubscription.IsZero())
	assert.True(t, fam.CollectionDate.IsZero())
}
