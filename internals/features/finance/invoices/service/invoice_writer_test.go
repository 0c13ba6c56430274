package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linksclub_backend/internals/constants"
	feemodel "linksclub_backend/internals/features/finance/fees/model"
	"linksclub_backend/internals/features/finance/invoices/model"
	membermodel "linksclub_backend/internals/features/members/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

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
		&feemodel.FeeItemModel{},
		&model.InvoiceModel{},
		&model.InvoiceItemModel{},
		&model.PaymentModel{},
		&model.PaymentLineItemModel{},
		&model.InvoiceCounterModel{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func seedFees(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []feemodel.FeeItemModel{
		{FeeItemName: "Full", FeeItemCategory: feemodel.FeeItemCategorySubscription, FeeItemAmount: dec("432.00"), FeeItemIsActive: true},
		{FeeItemName: "Social", FeeItemCategory: feemodel.FeeItemCategorySubscription, FeeItemAmount: dec("55.00"), FeeItemIsActive: true},
		{FeeItemName: "England Golf", FeeItemCategory: feemodel.FeeItemCategoryFee, FeeItemAmount: dec("12.00"), FeeItemIsActive: true},
		{FeeItemName: "Northumberland County", FeeItemCategory: feemodel.FeeItemCategoryFee, FeeItemAmount: dec("6.50"), FeeItemIsActive: true},
		{FeeItemName: "Locker", FeeItemCategory: feemodel.FeeItemCategoryFee, FeeItemAmount: dec("10.00"), FeeItemIsActive: true},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func seedMember(t *testing.T, db *gorm.DB, clubNumber int, category, method string) membermodel.MemberModel {
	t.Helper()
	cdh := fmt.Sprintf("100%05d", clubNumber)
	m := membermodel.MemberModel{
		MemberFirstName:     "Member",
		MemberLastName:      fmt.Sprintf("No%d", clubNumber),
		MemberClubNumber:    clubNumber,
		MemberCategory:      category,
		MemberHomeAway:      "H",
		MemberCDHID:         &cdh,
		MemberPaymentMethod: method,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestGenerateForMember_DraftInvoiceMovesBalance(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 101, "Full", constants.PaymentMethodBACS)

	w := NewInvoiceWriter(db)
	res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
	require.NoError(t, err)
	assert.False(t, res.AlreadyExists)
	assert.Equal(t, "INV-2026-001", res.InvoiceNumber)
	// 432.00 + 12.00 + 6.50
	assert.True(t, res.Total.Equal(dec("450.50")), "total = %s", res.Total)

	var inv model.InvoiceModel
	require.NoError(t, db.Preload("InvoiceItems").First(&inv, "invoice_number = ?", res.InvoiceNumber).Error)
	assert.Equal(t, model.InvoiceStatusDraft, inv.InvoiceStatus)
	assert.Len(t, inv.InvoiceItems, 3)

	// Draft invoice: balance carries the debt, no payment rows.
	var got membermodel.MemberModel
	require.NoError(t, db.First(&got, "member_id = ?", m.MemberID).Error)
	assert.True(t, got.MemberAccountBalance.Equal(dec("450.50")))
	assert.Nil(t, got.MemberDateRenewed)

	var payments int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&payments).Error)
	assert.Zero(t, payments)
}

func TestGenerateForMember_DDInvoicePaidWithLedgerRows(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 102, "Full", constants.PaymentMethodDirectDebit)

	w := NewInvoiceWriter(db)
	res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026, IsDD: true})
	require.NoError(t, err)

	var inv model.InvoiceModel
	require.NoError(t, db.Preload("InvoiceItems").First(&inv, "invoice_number = ?", res.InvoiceNumber).Error)
	assert.Equal(t, model.InvoiceStatusPaid, inv.InvoiceStatus)

	// DD invoice: settled immediately, balance untouched, renewal stamped.
	var got membermodel.MemberModel
	require.NoError(t, db.First(&got, "member_id = ?", m.MemberID).Error)
	assert.True(t, got.MemberAccountBalance.IsZero())
	require.NotNil(t, got.MemberDateRenewed)
	require.NotNil(t, got.MemberDateExpires)
	assert.Equal(t, time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC), time.Time(*got.MemberDateExpires))
	assert.NotNil(t, got.MemberDateSubscriptionPaid)

	var pay model.PaymentModel
	require.NoError(t, db.Preload("PaymentLineItems").First(&pay, "payment_invoice_id = ?", inv.InvoiceID).Error)
	assert.Equal(t, constants.PaymentMethodClubwiseDD, pay.PaymentMethod)
	assert.True(t, pay.PaymentAmount.Equal(inv.InvoiceTotal))
	assert.Len(t, pay.PaymentLineItems, len(inv.InvoiceItems))
}

func TestGenerateForMember_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 103, "Full", constants.PaymentMethodBACS)

	w := NewInvoiceWriter(db)
	first, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
	require.NoError(t, err)

	second, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
	require.NoError(t, err)
	assert.True(t, second.AlreadyExists)
	assert.Equal(t, first.InvoiceNumber, second.InvoiceNumber)

	// The balance moved once, not twice.
	var got membermodel.MemberModel
	require.NoError(t, db.First(&got, "member_id = ?", m.MemberID).Error)
	assert.True(t, got.MemberAccountBalance.Equal(dec("450.50")))

	// A different year is a fresh invoice.
	next, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2027})
	require.NoError(t, err)
	assert.False(t, next.AlreadyExists)
}

func TestGenerateForMember_SocialSubscriptionOnly(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 104, "Social", constants.PaymentMethodSocial)

	w := NewInvoiceWriter(db)
	res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026, IsSocial: true})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(dec("55.00")))

	var items int64
	require.NoError(t, db.Model(&model.InvoiceItemModel{}).Count(&items).Error)
	assert.Equal(t, int64(1), items)
}

func TestGenerateForMember_NoSubscriptionFeeRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 105, "Nonexistent", constants.PaymentMethodBACS)

	w := NewInvoiceWriter(db)
	_, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
	require.Error(t, err)

	var invoices int64
	require.NoError(t, db.Model(&model.InvoiceModel{}).Count(&invoices).Error)
	assert.Zero(t, invoices)
}

func TestNextInvoiceNumber_SequencePerYear(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	w := NewInvoiceWriter(db)

	for i, clubNumber := range []int{201, 202, 203} {
		m := seedMember(t, db, clubNumber, "Full", constants.PaymentMethodBACS)
		res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-2026-%03d", i+1), res.InvoiceNumber)
	}

	// A different year runs its own sequence.
	m := seedMember(t, db, 204, "Full", constants.PaymentMethodBACS)
	res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2027})
	require.NoError(t, err)
	assert.Equal(t, "INV-2027-001", res.InvoiceNumber)
}

func TestDelete_DraftReversesBalance(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 301, "Full", constants.PaymentMethodBACS)

	w := NewInvoiceWriter(db)
	res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
	require.NoError(t, err)

	var inv model.InvoiceModel
	require.NoError(t, db.First(&inv, "invoice_number = ?", res.InvoiceNumber).Error)
	require.NoError(t, w.Delete(inv.InvoiceID))

	var got membermodel.MemberModel
	require.NoError(t, db.First(&got, "member_id = ?", m.MemberID).Error)
	assert.True(t, got.MemberAccountBalance.IsZero(), "balance = %s", got.MemberAccountBalance)

	var invoices, items int64
	require.NoError(t, db.Model(&model.InvoiceModel{}).Count(&invoices).Error)
	require.NoError(t, db.Model(&model.InvoiceItemModel{}).Count(&items).Error)
	assert.Zero(t, invoices)
	assert.Zero(t, items)

	// Deletion frees the member for regeneration.
	again, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026})
	require.NoError(t, err)
	assert.False(t, again.AlreadyExists)
}

func TestDelete_DDCascadesLedgerRows(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	m := seedMember(t, db, 302, "Full", constants.PaymentMethodDirectDebit)

	w := NewInvoiceWriter(db)
	res, err := w.GenerateForMember(m.MemberID, GenerateOptions{Year: 2026, IsDD: true})
	require.NoError(t, err)

	var inv model.InvoiceModel
	require.NoError(t, db.First(&inv, "invoice_number = ?", res.InvoiceNumber).Error)
	require.NoError(t, w.Delete(inv.InvoiceID))

	var payments, plis int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&payments).Error)
	require.NoError(t, db.Model(&model.PaymentLineItemModel{}).Count(&plis).Error)
	assert.Zero(t, payments)
	assert.Zero(t, plis)

	// Paid invoice never touched the balance, so deletion must not either.
	var got membermodel.MemberModel
	require.NoError(t, db.First(&got, "member_id = ?", m.MemberID).Error)
	assert.True(t, got.MemberAccountBalance.IsZero())
	assert.Nil(t, got.MemberDateRenewed)
}

func TestBulkGenerate(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)

	seedMember(t, db, 401, "Full", constants.PaymentMethodBACS)
	seedMember(t, db, 402, "Full", constants.PaymentMethodDirectDebit)
	bad := seedMember(t, db, 403, "Nonexistent", constants.PaymentMethodBACS)

	w := NewInvoiceWriter(db)
	res, err := w.BulkGenerate(2026, constants.BulkBatchSize)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generated)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], bad.FullName())
	// The failed member stays eligible.
	assert.Equal(t, int64(1), res.Remaining)

	// Second run: nothing new to do, the failure repeats.
	res, err = w.BulkGenerate(2026, constants.BulkBatchSize)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Generated)
	assert.Equal(t, 1, res.Failed)
}

func TestBulkGenerate_BatchLimit(t *testing.T) {
	db := setupTestDB(t)
	seedFees(t, db)
	for i := 0; i < 5; i++ {
		seedMember(t, db, 500+i, "Full", constants.PaymentMethodBACS)
	}

	w := NewInvoiceWriter(db)
	res, err := w.BulkGenerate(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generated)
	assert.Equal(t, int64(3), res.Remaining)

	res, err = w.BulkGenerate(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generated)
	assert.Equal(t, int64(1), res.Remaining)

	res, err = w.BulkGenerate(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Generated)
	assert.Zero(t, res.Remaining)
}

func TestMembershipPeriod(t *testing.T) {
	start, end := MembershipPeriod(2026)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC), end)
}
