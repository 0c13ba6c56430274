// file: internals/features/members/dto/member_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"linksclub_backend/internals/features/members/model"
)

////////////////////////////////////////////////////////////////////////////////
// MEMBERS - DTO
////////////////////////////////////////////////////////////////////////////////

type MemberCreateDTO struct {
	MemberFirstName  string  `json:"member_first_name" validate:"required,max=100"`
	MemberLastName   string  `json:"member_last_name" validate:"required,max=100"`
	MemberEmail      *string `json:"member_email,omitempty" validate:"omitempty,email"`
	MemberClubNumber int     `json:"member_club_number" validate:"required,min=1"`

	// Optional; when empty the age-appropriate default band is assigned.
	MemberCategory string `json:"member_category,omitempty"`
	MemberHomeAway string `json:"member_home_away,omitempty" validate:"omitempty,oneof=H A V"`

	MemberCDHID         *string  `json:"member_cdh_id,omitempty"`
	MemberHandicapIndex *float64 `json:"member_handicap_index,omitempty"`
	MemberLockerNumber  *string  `json:"member_locker_number,omitempty"`

	MemberDateOfBirth *string `json:"member_date_of_birth,omitempty"` // YYYY-MM-DD
	MemberDateJoined  *string `json:"member_date_joined,omitempty"`   // YYYY-MM-DD

	MemberPaymentMethod string `json:"member_payment_method,omitempty" validate:"omitempty,oneof='Direct Debit' BACS Social"`
}

// Partial update. Nil fields are left untouched; pointers to empty strings
// clear the column.
type MemberUpdateDTO struct {
	MemberFirstName  *string `json:"member_first_name,omitempty"`
	MemberLastName   *string `json:"member_last_name,omitempty"`
	MemberEmail      *string `json:"member_email,omitempty"`
	MemberClubNumber *int    `json:"member_club_number,omitempty"`

	MemberCategory *string `json:"member_category,omitempty"`
	MemberHomeAway *string `json:"member_home_away,omitempty" validate:"omitempty,oneof=H A V"`

	MemberCDHID         *string  `json:"member_cdh_id,omitempty"`
	MemberHandicapIndex *float64 `json:"member_handicap_index,omitempty"`
	MemberLockerNumber  *string  `json:"member_locker_number,omitempty"`

	MemberDateOfBirth *string `json:"member_date_of_birth,omitempty"`
	MemberDateJoined  *string `json:"member_date_joined,omitempty"`

	MemberPaymentMethod *string `json:"member_payment_method,omitempty" validate:"omitempty,oneof='Direct Debit' BACS Social"`
}

type MemberResponse struct {
	MemberID uuid.UUID `json:"member_id"`

	MemberFirstName  string  `json:"member_first_name"`
	MemberLastName   string  `json:"member_last_name"`
	MemberEmail      *string `json:"member_email,omitempty"`
	MemberClubNumber int     `json:"member_club_number"`

	MemberCategory string `json:"member_category"`
	MemberHomeAway string `json:"member_home_away"`

	MemberCDHID         *string  `json:"member_cdh_id,omitempty"`
	MemberHandicapIndex *float64 `json:"member_handicap_index,omitempty"`
	MemberLockerNumber  *string  `json:"member_locker_number,omitempty"`

	MemberDateOfBirth *datatypes.Date `json:"member_date_of_birth,omitempty"`
	MemberDateJoined  *datatypes.Date `json:"member_date_joined,omitempty"`

	MemberPaymentMethod  string          `json:"member_payment_method"`
	MemberAccountBalance decimal.Decimal `json:"member_account_balance"`

	MemberDateRenewed          *datatypes.Date `json:"member_date_renewed,omitempty"`
	MemberDateExpires          *datatypes.Date `json:"member_date_expires,omitempty"`
	MemberDateSubscriptionPaid *time.Time      `json:"member_date_subscription_paid,omitempty"`
	MemberRenewalNoticeSentAt  *time.Time      `json:"member_renewal_notice_sent_at,omitempty"`

	MemberCreatedAt time.Time `json:"member_created_at"`
	MemberUpdatedAt time.Time `json:"member_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS - Model <-> DTO
////////////////////////////////////////////////////////////////////////////////

func ToMemberResponse(m model.MemberModel) MemberResponse {
	return MemberResponse{
		MemberID:                   m.MemberID,
		MemberFirstName:            m.MemberFirstName,
		MemberLastName:             m.MemberLastName,
		MemberEmail:                m.MemberEmail,
		MemberClubNumber:           m.MemberClubNumber,
		MemberCategory:             m.MemberCategory,
		MemberHomeAway:             m.MemberHomeAway,
		MemberCDHID:                m.MemberCDHID,
		MemberHandicapIndex:        m.MemberHandicapIndex,
		MemberLockerNumber:         m.MemberLockerNumber,
		MemberDateOfBirth:          m.MemberDateOfBirth,
		MemberDateJoined:           m.MemberDateJoined,
		MemberPaymentMethod:        m.MemberPaymentMethod,
		MemberAccountBalance:       m.MemberAccountBalance,
		MemberDateRenewed:          m.MemberDateRenewed,
		MemberDateExpires:          m.MemberDateExpires,
		MemberDateSubscriptionPaid: m.MemberDateSubscriptionPaid,
		MemberRenewalNoticeSentAt:  m.MemberRenewalNoticeSentAt,
		MemberCreatedAt:            m.MemberCreatedAt,
		MemberUpdatedAt:            m.MemberUpdatedAt,
	}
}

func ToMemberResponses(list []model.MemberModel) []MemberResponse {
	out := make([]MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMemberResponse(m))
	}
	return out
}

// MemberCreateDTOToModel builds a new model; dates arrive as YYYY-MM-DD.
func MemberCreateDTOToModel(in MemberCreateDTO) (model.MemberModel, error) {
	m := model.MemberModel{
		MemberFirstName:     in.MemberFirstName,
		MemberLastName:      in.MemberLastName,
		MemberEmail:         in.MemberEmail,
		MemberClubNumber:    in.MemberClubNumber,
		MemberCategory:      in.MemberCategory,
		MemberHomeAway:      in.MemberHomeAway,
		MemberCDHID:         in.MemberCDHID,
		MemberHandicapIndex: in.MemberHandicapIndex,
		MemberLockerNumber:  in.MemberLockerNumber,
		MemberPaymentMethod: in.MemberPaymentMethod,
	}
	if m.MemberHomeAway == "" {
		m.MemberHomeAway = "H"
	}
	if m.MemberPaymentMethod == "" {
		m.MemberPaymentMethod = "BACS"
	}

	dob, err := parseDatePtr(in.MemberDateOfBirth)
	if err != nil {
		return m, err
	}
	m.MemberDateOfBirth = dob

	joined, err := parseDatePtr(in.MemberDateJoined)
	if err != nil {
		return m, err
	}
	m.MemberDateJoined = joined

	return m, nil
}

// ApplyMemberUpdate patches the model in place.
func ApplyMemberUpdate(m *model.MemberModel, in MemberUpdateDTO) error {
	if in.MemberFirstName != nil {
		m.MemberFirstName = *in.MemberFirstName
	}
	if in.MemberLastName != nil {
		m.MemberLastName = *in.MemberLastName
	}
	if in.MemberEmail != nil {
		m.MemberEmail = strPtrOrNil(in.MemberEmail)
	}
	if in.MemberClubNumber != nil {
		m.MemberClubNumber = *in.MemberClubNumber
	}
	if in.MemberCategory != nil {
		m.MemberCategory = *in.MemberCategory
	}
	if in.MemberHomeAway != nil {
		m.MemberHomeAway = *in.MemberHomeAway
	}
	if in.MemberCDHID != nil {
		m.MemberCDHID = strPtrOrNil(in.MemberCDHID)
	}
	if in.MemberHandicapIndex != nil {
		m.MemberHandicapIndex = in.MemberHandicapIndex
	}
	if in.MemberLockerNumber != nil {
		m.MemberLockerNumber = strPtrOrNil(in.MemberLockerNumber)
	}
	if in.MemberDateOfBirth != nil {
		d, err := parseDatePtr(in.MemberDateOfBirth)
		if err != nil {
			return err
		}
		m.MemberDateOfBirth = d
	}
	if in.MemberDateJoined != nil {
		d, err := parseDatePtr(in.MemberDateJoined)
		if err != nil {
			return err
		}
		m.MemberDateJoined = d
	}
	if in.MemberPaymentMethod != nil {
		m.MemberPaymentMethod = *in.MemberPaymentMethod
	}
	return nil
}

func parseDatePtr(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

func strPtrOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
