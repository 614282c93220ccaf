package httpadapter

import (
	"collabpay/internal/core/domain"
)

// View DTOs keep the wire layout independent of the domain structs.

type campaignView struct {
	CampaignID  string          `json:"campaign_id"`
	BrandID     string          `json:"brand_id"`
	Category    string          `json:"category"`
	Schedule    domain.Schedule `json:"schedule"`
	BasePay     uint64          `json:"base_pay"`
	TotalBudget uint64          `json:"total_budget"`
	Escrow      uint64          `json:"escrow_balance"`
	Spent       uint64          `json:"spent"`
	Rates       domain.CPMRates `json:"cpm_rates"`
	Status      string          `json:"status"`
	Winners     []string        `json:"winners"`
	MaxWinners  int             `json:"max_winners"`
}

func toCampaignView(c *domain.Campaign) campaignView {
	return campaignView{
		CampaignID:  c.ID,
		BrandID:     c.BrandID,
		Category:    c.Category,
		Schedule:    c.Schedule,
		BasePay:     uint64(c.BasePay),
		TotalBudget: uint64(c.TotalBudget),
		Escrow:      uint64(c.Escrow),
		Spent:       uint64(c.Spent()),
		Rates:       c.Rates,
		Status:      string(c.Status),
		Winners:     c.Winners,
		MaxWinners:  c.MaxWinners,
	}
}

type applicationView struct {
	CampaignID  string `json:"campaign_id"`
	CreatorID   string `json:"creator_id"`
	Accepted    bool   `json:"accepted"`
	ContentPlan string `json:"content_plan,omitempty"`
	SubmittedAt int64  `json:"submitted_at"`
}

func toApplicationView(a *domain.Application) applicationView {
	return applicationView{
		CampaignID:  a.CampaignID,
		CreatorID:   a.CreatorID,
		Accepted:    a.Accepted,
		ContentPlan: a.ContentPlan,
		SubmittedAt: a.SubmittedAt,
	}
}

type contentView struct {
	ContentID   string            `json:"content_id"`
	CampaignID  string            `json:"campaign_id"`
	CreatorID   string            `json:"creator_id"`
	Link        string            `json:"link"`
	Status      string            `json:"status"`
	Engagement  domain.Engagement `json:"engagement"`
	ReviewNotes string            `json:"review_notes,omitempty"`
	BonusPaid   bool              `json:"bonus_paid"`
	SubmittedAt int64             `json:"submitted_at"`
	ReviewedAt  *int64            `json:"reviewed_at,omitempty"`
	PublishedAt *int64            `json:"published_at,omitempty"`
}

func toContentView(c *domain.Content) contentView {
	return contentView{
		ContentID:   c.ID,
		CampaignID:  c.CampaignID,
		CreatorID:   c.CreatorID,
		Link:        c.Link,
		Status:      string(c.Status),
		Engagement:  c.Engagement,
		ReviewNotes: c.ReviewNotes,
		BonusPaid:   c.BonusPaid,
		SubmittedAt: c.SubmittedAt,
		ReviewedAt:  c.ReviewedAt,
		PublishedAt: c.PublishedAt,
	}
}

type receiptView struct {
	ReceiptID   string `json:"receipt_id"`
	Kind        string `json:"kind"`
	Amount      uint64 `json:"amount"`
	CampaignID  string `json:"campaign_id"`
	ContentID   string `json:"content_id"`
	CreatorID   string `json:"creator_id"`
	Description string `json:"description"`
	TxRef       string `json:"tx_ref"`
	PaidAt      int64  `json:"paid_at"`
}

func toReceiptView(rc *domain.PaymentReceipt) receiptView {
	return receiptView{
		ReceiptID:   rc.ID,
		Kind:        string(rc.Kind),
		Amount:      uint64(rc.Amount),
		CampaignID:  rc.CampaignID,
		ContentID:   rc.ContentID,
		CreatorID:   rc.CreatorID,
		Description: rc.Description,
		TxRef:       rc.TxRef,
		PaidAt:      rc.PaidAt,
	}
}
