package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MemberModel mirrors the members table. Category is the legacy CRM string
// (e.g. "Full", "Under 30 (A)"); the structured form lives in the service
// layer, the raw string stays authoritative in the DB.
type MemberModel struct {
	MemberID uuid.UUID `gorm:"column:member_id;type:uuid;primaryKey" json:"member_id"`

	MemberFirstName  string  `gorm:"column:member_first_name;size:100;not null" json:"member_first_name"`
	MemberLastName   string  `gorm:"column:member_last_name;size:100;not null" json:"member_last_name"`
	MemberEmail      *string `gorm:"column:member_email;size:255" json:"member_email,omitempty"`
	MemberClubNumber int     `gorm:"column:member_club_number;uniqueIndex;not null" json:"member_club_number"`

	MemberCategory string `gorm:"column:member_category;size:80;not null" json:"member_category"`
	// H = home, A = away, V = visitor
	MemberHomeAway string `gorm:"column:member_home_away;type:varchar(1);not null;default:'H'" json:"member_home_away"`

	// Presence of the CDH id means the member is CDH registered.
	MemberCDHID *string `gorm:"column:member_cdh_id;size:20" json:"member_cdh_id,omitempty"`
	// Presence of a handicap index means the member holds a home handicap.
	MemberHandicapIndex *float64 `gorm:"column:member_handicap_index;type:numeric(4,1)" json:"member_handicap_index,omitempty"`
	// Presence of a locker number attracts the locker fee.
	MemberLockerNumber *string `gorm:"column:member_locker_number;size:10" json:"member_locker_number,omitempty"`

	MemberDateOfBirth *datatypes.Date `gorm:"column:member_date_of_birth;type:date" json:"member_date_of_birth,omitempty"`
	MemberDateJoined  *datatypes.Date `gorm:"column:member_date_joined;type:date" json:"member_date_joined,omitempty"`

	// Direct Debit | BACS | Social
	MemberPaymentMethod string `gorm:"column:member_payment_method;size:30;not null;default:'BACS'" json:"member_payment_method"`

	// Outstanding debt. Only draft (non-DD) invoices move this.
	MemberAccountBalance decimal.Decimal `gorm:"column:member_account_balance;type:numeric(10,2);not null;default:0" json:"member_account_balance"`

	MemberDateRenewed          *datatypes.Date `gorm:"column:member_date_renewed;type:date" json:"member_date_renewed,omitempty"`
	MemberDateExpires          *datatypes.Date `gorm:"column:member_date_expires;type:date" json:"member_date_expires,omitempty"`
	MemberDateSubscriptionPaid *time.Time      `gorm:"column:member_date_subscription_paid" json:"member_date_subscription_paid,omitempty"`

	// Set when the renewal notice for the current year went out.
	MemberRenewalNoticeSentAt *time.Time `gorm:"column:member_renewal_notice_sent_at" json:"member_renewal_notice_sent_at,omitempty"`

	MemberCreatedAt time.Time      `gorm:"column:member_created_at;autoCreateTime" json:"member_created_at"`
	MemberUpdatedAt time.Time      `gorm:"column:member_updated_at;autoUpdateTime" json:"member_updated_at"`
	MemberDeletedAt gorm.DeletedAt `gorm:"column:member_deleted_at;index" json:"member_deleted_at,omitempty"`
}

func (MemberModel) TableName() string {
	return "members"
}

func (m *MemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	return nil
}

// FullName joins first and last name.
func (m MemberModel) FullName() string {
	return m.MemberFirstName + " " + m.MemberLastName
}

// HasCDH reports whether the member carries a national handicap registration.
func (m MemberModel) HasCDH() bool {
	return m.MemberCDHID != nil && *m.MemberCDHID != ""
}

// HasHomeHandicap reports whether a handicap index is held at this club.
func (m MemberModel) HasHomeHandicap() bool {
	return m.MemberHandicapIndex != nil
}

// HasLocker reports whether a locker number is assigned.
func (m MemberModel) HasLocker() bool {
	return m.MemberLockerNumber != nil && *m.MemberLockerNumber != ""
}
