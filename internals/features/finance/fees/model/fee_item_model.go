package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

// fee_item_category distinguishes subscription price rows (looked up by
// member category name) from the flat reference fees.
const (
	FeeItemCategorySubscription = "Subscription"
	FeeItemCategoryFee          = "Fee"
)

/* ===================== Model ===================== */

type FeeItemModel struct {
	FeeItemID uuid.UUID `gorm:"column:fee_item_id;type:uuid;primaryKey" json:"fee_item_id"`

	// Lookup key, matched case-insensitively.
	FeeItemName     string `gorm:"column:fee_item_name;size:80;not null;uniqueIndex:ux_fee_items_name_category" json:"fee_item_name"`
	FeeItemCategory string `gorm:"column:fee_item_category;size:20;not null;default:'Fee';uniqueIndex:ux_fee_items_name_category" json:"fee_item_category"`

	FeeItemAmount   decimal.Decimal `gorm:"column:fee_item_amount;type:numeric(10,2);not null" json:"fee_item_amount"`
	FeeItemIsActive bool            `gorm:"column:fee_item_is_active;not null;default:true" json:"fee_item_is_active"`

	FeeItemCreatedAt time.Time      `gorm:"column:fee_item_created_at;autoCreateTime" json:"fee_item_created_at"`
	FeeItemUpdatedAt time.Time      `gorm:"column:fee_item_updated_at;autoUpdateTime" json:"fee_item_updated_at"`
	FeeItemDeletedAt gorm.DeletedAt `gorm:"column:fee_item_deleted_at;index" json:"fee_item_deleted_at,omitempty"`
}

func (FeeItemModel) TableName() string {
	return "fee_items"
}

func (f *FeeItemModel) BeforeCreate(tx *gorm.DB) error {
	if f.FeeItemID == uuid.Nil {
		f.FeeItemID = uuid.New()
	}
	return nil
}
