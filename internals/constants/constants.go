package constants

/* ===================== Payment methods ===================== */

const (
	PaymentMethodDirectDebit = "Direct Debit"
	PaymentMethodBACS        = "BACS"
	PaymentMethodSocial      = "Social"

	// Method recorded on simulated DD payment rows.
	PaymentMethodClubwiseDD = "Clubwise Direct Debit"
)

/* ===================== Home/away flags ===================== */

const (
	HomeAwayHome    = "H"
	HomeAwayAway    = "A"
	HomeAwayVisitor = "V"
)

/* ===================== Invoice statuses ===================== */

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

/* ===================== Membership year ===================== */

// The membership year runs 1 April .. 31 March.
const (
	MembershipYearStartMonth = 4
	MembershipYearStartDay   = 1
)

/* ===================== Batch processing ===================== */

// One call processes at most this many members; callers re-invoke until
// remaining == 0. Keeps each request inside the platform request budget.
const BulkBatchSize = 40
