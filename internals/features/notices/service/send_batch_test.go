package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linksclub_backend/internals/constants"
	feemodel "linksclub_backend/internals/features/finance/fees/model"
	membermodel "linksclub_backend/internals/features/members/model"
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
		&feemodel.FeeItemModel{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	require.NoError(t, db.Create(&feemodel.FeeItemModel{
		FeeItemName:     "Full",
		FeeItemCategory: feemodel.FeeItemCategorySubscription,
		FeeItemAmount:   dec("432.00"),
		FeeItemIsActive: true,
	}).Error)
	return db
}

func dryRunNotifier(t *testing.T) *Notifier {
	t.Helper()
	n := &Notifier{}
	require.NoError(t, n.Init())
	require.True(t, n.DryRun())
	return n
}

func seedNoticeMember(t *testing.T, db *gorm.DB, clubNumber int, email *string, category string) membermodel.MemberModel {
	t.Helper()
	m := membermodel.MemberModel{
		MemberFirstName:     "Member",
		MemberLastName:      "Test",
		MemberClubNumber:    clubNumber,
		MemberEmail:         email,
		MemberCategory:      category,
		MemberHomeAway:      "H",
		MemberPaymentMethod: constants.PaymentMethodBACS,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func strPtr(s string) *string { return &s }

func TestSendBatch(t *testing.T) {
	db := setupTestDB(t)
	s := NewSender(db, dryRunNotifier(t))

	seedNoticeMember(t, db, 101, strPtr("a@example.org"), "Full")
	seedNoticeMember(t, db, 102, strPtr("b@example.org"), "Full")
	noEmail := seedNoticeMember(t, db, 103, nil, "Full")
	noFee := seedNoticeMember(t, db, 104, strPtr("d@example.org"), "Nonexistent")

	res, err := s.SendBatch(context.Background(), 2026, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], noEmail.FullName())
	assert.Contains(t, res.Errors[1], noFee.FullName())
	// Failures stay pending for the next run.
	assert.Equal(t, int64(2), res.Remaining)

	// The successful sends were stamped.
	var stamped int64
	require.NoError(t, db.Model(&membermodel.MemberModel{}).
		Where("member_renewal_notice_sent_at IS NOT NULL").
		Count(&stamped).Error)
	assert.Equal(t, int64(2), stamped)

	// Second run only retries the failures.
	res, err = s.SendBatch(context.Background(), 2026, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Sent)
	assert.Equal(t, 2, res.Failed)
}

func TestSendBatch_BatchLimit(t *testing.T) {
	db := setupTestDB(t)
	s := NewSender(db, dryRunNotifier(t))

	for i := 0; i < 3; i++ {
		seedNoticeMember(t, db, 200+i, strPtr("m@example.org"), "Full")
	}

	res, err := s.SendBatch(context.Background(), 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, int64(1), res.Remaining)

	res, err = s.SendBatch(context.Background(), 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Zero(t, res.Remaining)
}
