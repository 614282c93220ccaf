package port

import (
	"context"

	"collabpay/internal/core/domain"
)

// EscrowEngine is the primary port into the campaign escrow and payment
// engine. Every mutating call carries the caller's address; operations
// fail with domain.ErrUnauthorized when the caller does not own the
// entity being mutated. Mock implementations can be generated from this
// interface for testing.
type EscrowEngine interface {
	// CreateCampaign funds and activates a campaign. The whole budget
	// moves from the brand account into escrow atomically with creation.
	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// UpdateCampaignStatus applies a brand-requested status transition.
	// Terminal states reject all transitions; Active and Paused may
	// alternate.
	UpdateCampaignStatus(ctx context.Context, in UpdateStatusInput) (*domain.Campaign, error)
	// SelectWinners records the bonus-eligible creators and completes
	// the campaign. It moves no money.
	SelectWinners(ctx context.Context, in SelectWinnersInput) (*domain.Campaign, error)

	// Apply files a creator's application; auto-accepted, one per
	// creator per campaign, only inside the application window.
	Apply(ctx context.Context, in ApplyInput) (*domain.Application, error)
	ListApplications(ctx context.Context, campaignID string) ([]domain.Application, error)

	// SubmitContent creates pending content for an applicant.
	SubmitContent(ctx context.Context, in SubmitContentInput) (*domain.Content, error)
	// ReviewContent is the brand's accept/reject decision.
	ReviewContent(ctx context.Context, in ReviewContentInput) (*domain.Content, error)
	// PublishContent transitions accepted content to published and pays
	// the base amount in the same atomic step. If escrow cannot cover
	// the base pay the whole operation fails and the content stays
	// accepted.
	PublishContent(ctx context.Context, in PublishContentInput) (*PublishResult, error)
	// UpdateEngagement overwrites the engagement counters of published
	// content. Brand-only.
	UpdateEngagement(ctx context.Context, in UpdateEngagementInput) (*domain.Content, error)
	ListContent(ctx context.Context, campaignID string) ([]domain.Content, error)

	// PayBonus pays the CPM-weighted bonus to a winner for one published
	// piece of content. A computed bonus of zero is a deliberate no-op
	// returning (nil, nil): no debit, no receipt.
	PayBonus(ctx context.Context, in PayBonusInput) (*domain.PaymentReceipt, error)
	ListReceipts(ctx context.Context, campaignID string) ([]domain.PaymentReceipt, error)
}

// CreateCampaignInput carries the parameters of campaign creation.
// Caller must be the brand's owner address.
type CreateCampaignInput struct {
	Caller     string
	CampaignID string
	BrandID    string
	Category   string
	Schedule   domain.Schedule
	BasePay    domain.Amount
	Budget     domain.Amount
	Rates      domain.CPMRates
	MaxWinners int
}

type UpdateStatusInput struct {
	Caller     string
	CampaignID string
	Status     domain.CampaignStatus
}

type SelectWinnersInput struct {
	Caller     string
	CampaignID string
	Winners    []string
}

// ApplyInput's Timestamp is the caller-supplied clock reading (Unix
// milliseconds) checked against the application window at the instant
// of the call.
type ApplyInput struct {
	Caller      string
	CampaignID  string
	CreatorID   string
	ContentPlan string
	Timestamp   int64
}

type SubmitContentInput struct {
	Caller     string
	CampaignID string
	ContentID  string
	CreatorID  string
	Link       string
	Timestamp  int64
}

type ReviewContentInput struct {
	Caller     string
	CampaignID string
	ContentID  string
	Approve    bool
	Notes      string
	Timestamp  int64
}

type PublishContentInput struct {
	Caller     string
	CampaignID string
	ContentID  string
	Timestamp  int64
}

// PublishResult pairs the published content with the base payment
// receipt minted in the same transaction.
type PublishResult struct {
	Content *domain.Content
	Receipt *domain.PaymentReceipt
}

type UpdateEngagementInput struct {
	Caller     string
	CampaignID string
	ContentID  string
	Engagement domain.Engagement
	Timestamp  int64
}

type PayBonusInput struct {
	Caller     string
	CampaignID string
	ContentID  string
	Timestamp  int64
}
