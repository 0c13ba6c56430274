// file: internals/features/finance/fees/service/fee_rules.go
package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"linksclub_backend/internals/configs"
	"linksclub_backend/internals/constants"
	membermodel "linksclub_backend/internals/features/members/model"
	memberservice "linksclub_backend/internals/features/members/service"
	"linksclub_backend/internals/features/finance/fees/model"
)

// ErrNoSubscriptionFee is reported (never fatal) when a member's category has
// no matching subscription fee row; batch callers count the member as failed
// and continue.
var ErrNoSubscriptionFee = errors.New("no subscription fee for category")

/* ===================== Fee kinds ===================== */

// FeeKind replaces the old stringly lookups ("england golf" et al) with a
// typed enumeration plus a name-mapping table.
type FeeKind string

const (
	FeeKindSubscription FeeKind = "subscription"
	FeeKindEnglandGolf  FeeKind = "england_golf"
	FeeKindCounty       FeeKind = "county"
	FeeKindLocker       FeeKind = "locker"
)

var feeKindDisplayNames = map[FeeKind]string{
	FeeKindSubscription: "Subscription",
	FeeKindEnglandGolf:  "England Golf",
	FeeKindCounty:       "Northumberland County",
	FeeKindLocker:       "Locker",
}

// DisplayName is the human label, also the fee_items lookup key.
func (k FeeKind) DisplayName() string {
	if n, ok := feeKindDisplayNames[k]; ok {
		return n
	}
	return string(k)
}

/* ===================== Line items ===================== */

// LineItem is the ephemeral result of a fee calculation; it becomes an
// invoice_items row when the ledger writer persists it.
type LineItem struct {
	Kind        FeeKind         `json:"kind"`
	FeeItemID   *uuid.UUID      `json:"fee_item_id,omitempty"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

/* ===================== Reference amounts ===================== */

// FeeAmounts carries the three flat reference fees, plus the fee_items row
// ids when the amounts were resolved from the database.
type FeeAmounts struct {
	EnglandGolf decimal.Decimal
	County      decimal.Decimal
	Locker      decimal.Decimal

	EnglandGolfItemID *uuid.UUID
	CountyItemID      *uuid.UUID
	LockerItemID      *uuid.UUID
}

// DefaultFeeAmounts returns the configured reference amounts.
func DefaultFeeAmounts() FeeAmounts {
	return FeeAmounts{
		EnglandGolf: configs.EnglandGolfFee,
		County:      configs.CountyFee,
		Locker:      configs.LockerFee,
	}
}

// LoadFeeAmounts resolves the flat fees from the fee_items reference table
// (name matched case-insensitively, category=Fee, active). A missing row
// falls back to the configured default so a half-seeded table still bills.
func LoadFeeAmounts(db *gorm.DB) FeeAmounts {
	a := DefaultFeeAmounts()
	for _, k := range []FeeKind{FeeKindEnglandGolf, FeeKindCounty, FeeKindLocker} {
		var fi model.FeeItemModel
		err := db.First(&fi,
			"LOWER(fee_item_name) = ? AND fee_item_category = ? AND fee_item_is_active = ?",
			strings.ToLower(k.DisplayName()), model.FeeItemCategoryFee, true,
		).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[FEES] lookup %q failed: %v", k.DisplayName(), err)
			}
			continue
		}
		id := fi.FeeItemID
		switch k {
		case FeeKindEnglandGolf:
			a.EnglandGolf = fi.FeeItemAmount
			a.EnglandGolfItemID = &id
		case FeeKindCounty:
			a.County = fi.FeeItemAmount
			a.CountyItemID = &id
		case FeeKindLocker:
			a.Locker = fi.FeeItemAmount
			a.LockerItemID = &id
		}
	}
	return a
}

// LookupSubscriptionFee finds the subscription fee row for a member category.
func LookupSubscriptionFee(db *gorm.DB, category string) (*model.FeeItemModel, error) {
	var fi model.FeeItemModel
	err := db.First(&fi,
		"LOWER(fee_item_name) = ? AND fee_item_category = ? AND fee_item_is_active = ?",
		strings.ToLower(strings.TrimSpace(category)), model.FeeItemCategorySubscription, true,
	).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w %q", ErrNoSubscriptionFee, category)
	}
	if err != nil {
		return nil, err
	}
	return &fi, nil
}

/* ===================== Member profile ===================== */

// MemberFeeProfile is the slice of a member record the rule engine reads.
type MemberFeeProfile struct {
	HomeAway        string
	HasCDH          bool
	HasHomeHandicap bool
	HasLocker       bool
	Category        string
}

func ProfileFromMember(m membermodel.MemberModel) MemberFeeProfile {
	return MemberFeeProfile{
		HomeAway:        m.MemberHomeAway,
		HasCDH:          m.HasCDH(),
		HasHomeHandicap: m.HasHomeHandicap(),
		HasLocker:       m.HasLocker(),
		Category:        m.MemberCategory,
	}
}

func (p MemberFeeProfile) isHome() bool {
	return p.HomeAway == constants.HomeAwayHome
}

/* ===================== Rule engine ===================== */

// AdditionalFeesForInvoicing computes the England Golf / County / Locker
// line items for ledger writing. The out-of-county branch additionally
// requires the member to be Home.
func AdditionalFeesForInvoicing(p MemberFeeProfile, a FeeAmounts) []LineItem {
	return additionalFees(p, a, true)
}

// AdditionalFeesForNotices is the renewal-notice variant of the same rules.
// It deliberately omits the Home check on the out-of-county branch; the two
// variants diverged in the old system and are kept divergent on purpose
// rather than silently unified.
func AdditionalFeesForNotices(p MemberFeeProfile, a FeeAmounts) []LineItem {
	return additionalFees(p, a, false)
}

func additionalFees(p MemberFeeProfile, a FeeAmounts, requireHomeForOutOfCounty bool) []LineItem {
	// Social members pay the subscription only.
	if memberservice.IsSocial(p.Category) {
		return nil
	}

	var items []LineItem
	outOfCounty := memberservice.IsOutOfCounty(p.Category)

	switch {
	case p.HasCDH && p.isHome() && !outOfCounty:
		items = append(items,
			LineItem{Kind: FeeKindEnglandGolf, FeeItemID: a.EnglandGolfItemID, Description: FeeKindEnglandGolf.DisplayName(), UnitPrice: a.EnglandGolf},
			LineItem{Kind: FeeKindCounty, FeeItemID: a.CountyItemID, Description: FeeKindCounty.DisplayName(), UnitPrice: a.County},
		)
	case p.HasCDH && outOfCounty && p.HasHomeHandicap && (!requireHomeForOutOfCounty || p.isHome()):
		// Out-of-county members pay EGU here but the county levy through
		// their home county.
		items = append(items,
			LineItem{Kind: FeeKindEnglandGolf, FeeItemID: a.EnglandGolfItemID, Description: FeeKindEnglandGolf.DisplayName(), UnitPrice: a.EnglandGolf},
		)
	}

	if p.HasLocker {
		items = append(items,
			LineItem{Kind: FeeKindLocker, FeeItemID: a.LockerItemID, Description: FeeKindLocker.DisplayName(), UnitPrice: a.Locker},
		)
	}
	return items
}

// BuildInvoiceLines produces the full ordered line set for an invoice:
// Subscription, England Golf, County, Locker. isSocial restricts the run to
// the subscription row regardless of the member's other attributes.
func BuildInvoiceLines(db *gorm.DB, m membermodel.MemberModel, a FeeAmounts, isSocial bool) ([]LineItem, error) {
	sub, err := LookupSubscriptionFee(db, m.MemberCategory)
	if err != nil {
		return nil, err
	}
	subID := sub.FeeItemID
	lines := []LineItem{{
		Kind:        FeeKindSubscription,
		FeeItemID:   &subID,
		Description: sub.FeeItemName + " Subscription",
		UnitPrice:   sub.FeeItemAmount,
	}}
	if isSocial {
		return lines, nil
	}
	lines = append(lines, AdditionalFeesForInvoicing(ProfileFromMember(m), a)...)
	return lines, nil
}
