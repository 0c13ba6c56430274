package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	membermodel "linksclub_backend/internals/features/members/model"
	"linksclub_backend/internals/features/finance/fees/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&membermodel.MemberModel{},
		&model.FeeItemModel{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func testAmounts() FeeAmounts {
	return FeeAmounts{
		EnglandGolf: decimal.RequireFromString("12.00"),
		County:      decimal.RequireFromString("6.50"),
		Locker:      decimal.RequireFromString("10.00"),
	}
}

func kinds(items []LineItem) []FeeKind {
	out := make([]FeeKind, 0, len(items))
	for _, li := range items {
		out = append(out, li.Kind)
	}
	return out
}

func TestAdditionalFees_SocialPaysNothingExtra(t *testing.T) {
	p := MemberFeeProfile{Category: "Social - House", HomeAway: "H", HasCDH: true, HasLocker: true}
	assert.Empty(t, AdditionalFeesForInvoicing(p, testAmounts()))
	assert.Empty(t, AdditionalFeesForNotices(p, testAmounts()))
}

func TestAdditionalFees_HomeCDHMember(t *testing.T) {
	p := MemberFeeProfile{Category: "Full", HomeAway: "H", HasCDH: true}
	items := AdditionalFeesForInvoicing(p, testAmounts())
	assert.Equal(t, []FeeKind{FeeKindEnglandGolf, FeeKindCounty}, kinds(items))
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, items[1].UnitPrice.Equal(decimal.RequireFromString("6.50")))
}

func TestAdditionalFees_AwayMemberPaysNeither(t *testing.T) {
	p := MemberFeeProfile{Category: "Full", HomeAway: "A", HasCDH: true}
	assert.Empty(t, AdditionalFeesForInvoicing(p, testAmounts()))
	assert.Empty(t, AdditionalFeesForNotices(p, testAmounts()))
}

func TestAdditionalFees_NoCDHNoAffiliation(t *testing.T) {
	p := MemberFeeProfile{Category: "Full", HomeAway: "H", HasCDH: false}
	assert.Empty(t, AdditionalFeesForInvoicing(p, testAmounts()))
}

func TestAdditionalFees_OutOfCountyVariantsDiverge(t *testing.T) {
	// Away out-of-county member with a home handicap: the invoicing rules
	// require Home and grant nothing, the notice rules do not check Home and
	// grant England Golf. The divergence is intentional.
	p := MemberFeeProfile{
		Category:        "Out of County",
		HomeAway:        "A",
		HasCDH:          true,
		HasHomeHandicap: true,
	}
	assert.Empty(t, AdditionalFeesForInvoicing(p, testAmounts()))
	assert.Equal(t, []FeeKind{FeeKindEnglandGolf}, kinds(AdditionalFeesForNotices(p, testAmounts())))
}

func TestAdditionalFees_OutOfCountyHome(t *testing.T) {
	// Home out-of-county member: England Golf only under both variants; the
	// county levy goes through the home county.
	p := MemberFeeProfile{
		Category:        "Out of County",
		HomeAway:        "H",
		HasCDH:          true,
		HasHomeHandicap: true,
	}
	assert.Equal(t, []FeeKind{FeeKindEnglandGolf}, kinds(AdditionalFeesForInvoicing(p, testAmounts())))
	assert.Equal(t, []FeeKind{FeeKindEnglandGolf}, kinds(AdditionalFeesForNotices(p, testAmounts())))
}

func TestAdditionalFees_OutOfCountyNeedsHomeHandicap(t *testing.T) {
	p := MemberFeeProfile{Category: "Out of County", HomeAway: "H", HasCDH: true, HasHomeHandicap: false}
	assert.Empty(t, AdditionalFeesForInvoicing(p, testAmounts()))
	assert.Empty(t, AdditionalFeesForNotices(p, testAmounts()))
}

func TestAdditionalFees_LockerRidesOnAnyBranch(t *testing.T) {
	// Locker fee applies even when no affiliation fees do.
	p := MemberFeeProfile{Category: "Full", HomeAway: "A", HasCDH: false, HasLocker: true}
	items := AdditionalFeesForInvoicing(p, testAmounts())
	assert.Equal(t, []FeeKind{FeeKindLocker}, kinds(items))

	// And stacks after the affiliation fees otherwise.
	p = MemberFeeProfile{Category: "Full", HomeAway: "H", HasCDH: true, HasLocker: true}
	items = AdditionalFeesForInvoicing(p, testAmounts())
	assert.Equal(t, []FeeKind{FeeKindEnglandGolf, FeeKindCounty, FeeKindLocker}, kinds(items))
}

func TestFeeKindDisplayName(t *testing.T) {
	assert.Equal(t, "England Golf", FeeKindEnglandGolf.DisplayName())
	assert.Equal(t, "Northumberland County", FeeKindCounty.DisplayName())
	assert.Equal(t, "Locker", FeeKindLocker.DisplayName())
	assert.Equal(t, "Subscription", FeeKindSubscription.DisplayName())
	assert.Equal(t, "mystery", FeeKind("mystery").DisplayName())
}

/* ===================== DB-backed lookups ===================== */

func seedFeeItems(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []model.FeeItemModel{
		{FeeItemName: "Full", FeeItemCategory: model.FeeItemCategorySubscription, FeeItemAmount: decimal.RequireFromString("432.00"), FeeItemIsActive: true},
		{FeeItemName: "Under 30", FeeItemCategory: model.FeeItemCategorySubscription, FeeItemAmount: decimal.RequireFromString("327.50"), FeeItemIsActive: true},
		{FeeItemName: "England Golf", FeeItemCategory: model.FeeItemCategoryFee, FeeItemAmount: decimal.RequireFromString("12.50"), FeeItemIsActive: true},
		{FeeItemName: "Northumberland County", FeeItemCategory: model.FeeItemCategoryFee, FeeItemAmount: decimal.RequireFromString("7.00"), FeeItemIsActive: true},
		{FeeItemName: "Locker", FeeItemCategory: model.FeeItemCategoryFee, FeeItemAmount: decimal.RequireFromString("10.00"), FeeItemIsActive: true},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func TestLoadFeeAmounts_FromDatabase(t *testing.T) {
	db := setupTestDB(t)
	seedFeeItems(t, db)

	a := LoadFeeAmounts(db)
	assert.True(t, a.EnglandGolf.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, a.County.Equal(decimal.RequireFromString("7.00")))
	assert.True(t, a.Locker.Equal(decimal.RequireFromString("10.00")))
	assert.NotNil(t, a.EnglandGolfItemID)
	assert.NotNil(t, a.CountyItemID)
	assert.NotNil(t, a.LockerItemID)
}

func TestLoadFeeAmounts_MissingRowFallsBack(t *testing.T) {
	db := setupTestDB(t)
	// No fee rows at all: configured defaults, no item ids.
	a := LoadFeeAmounts(db)
	assert.True(t, a.EnglandGolf.Equal(DefaultFeeAmounts().EnglandGolf))
	assert.Nil(t, a.EnglandGolfItemID)
}

func TestLookupSubscriptionFee(t *testing.T) {
	db := setupTestDB(t)
	seedFeeItems(t, db)

	fi, err := LookupSubscriptionFee(db, "Full")
	require.NoError(t, err)
	assert.True(t, fi.FeeItemAmount.Equal(decimal.RequireFromString("432.00")))

	// Case-insensitive, whitespace-tolerant.
	fi, err = LookupSubscriptionFee(db, "  under 30 ")
	require.NoError(t, err)
	assert.True(t, fi.FeeItemAmount.Equal(decimal.RequireFromString("327.50")))

	_, err = LookupSubscriptionFee(db, "Nonexistent")
	assert.ErrorIs(t, err, ErrNoSubscriptionFee)
}

func TestBuildInvoiceLines(t *testing.T) {
	db := setupTestDB(t)
	seedFeeItems(t, db)

	cdh := "10012345"
	locker := "B12"
	m := membermodel.MemberModel{
		MemberFirstName:  "Alice",
		MemberLastName:   "Armstrong",
		MemberClubNumber: 101,
		MemberCategory:   "Full",
		MemberHomeAway:   "H",
		MemberCDHID:      &cdh,
		MemberLockerNumber: &locker,
	}

	lines, err := BuildInvoiceLines(db, m, LoadFeeAmounts(db), false)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, FeeKindSubscription, lines[0].Kind)
	assert.Equal(t, "Full Subscription", lines[0].Description)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("432.00")))
	assert.Equal(t, []FeeKind{FeeKindSubscription, FeeKindEnglandGolf, FeeKindCounty, FeeKindLocker}, kinds(lines))
	for _, li := range lines {
		assert.NotNil(t, li.FeeItemID, "line %s should reference its fee item", li.Kind)
	}
}

func TestBuildInvoiceLines_SocialOnlySubscription(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.FeeItemModel{
		FeeItemName:     "Social",
		FeeItemCategory: model.FeeItemCategorySubscription,
		FeeItemAmount:   decimal.RequireFromString("55.00"),
		FeeItemIsActive: true,
	}).Error)

	cdh := "10099999"
	m := membermodel.MemberModel{
		MemberCategory: "Social",
		MemberHomeAway: "H",
		MemberCDHID:    &cdh,
	}
	lines, err := BuildInvoiceLines(db, m, DefaultFeeAmounts(), true)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, FeeKindSubscription, lines[0].Kind)
}

func TestBuildInvoiceLines_MissingSubscription(t *testing.T) {
	db := setupTestDB(t)
	m := membermodel.MemberModel{MemberCategory: "Full"}
	_, err := BuildInvoiceLines(db, m, DefaultFeeAmounts(), false)
	assert.ErrorIs(t, err, ErrNoSubscriptionFee)
}
