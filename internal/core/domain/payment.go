package domain

import "time"

// PaymentKind distinguishes the two payout types.
type PaymentKind string

const (
	// PaymentBase is the fixed amount paid once, on publication.
	PaymentBase PaymentKind = "base"
	// PaymentBonus is the engagement-weighted amount paid to winners.
	PaymentBonus PaymentKind = "bonus"
)

// PaymentReceipt is the immutable proof of a single escrow debit. One
// receipt exists per successful payment; amount is always positive.
type PaymentReceipt struct {
	ID          string
	Kind        PaymentKind
	Amount      Amount
	CampaignID  string
	ContentID   string
	CreatorID   string
	CreatorAddr string
	Description string
	TxRef       string
	PaidAt      int64
	CreatedAt   time.Time
}
