package port

import (
	"context"

	"collabpay/internal/core/domain"
)

// CampaignRepository is the persistence port for the escrow engine. It
// is an outbound port in hexagonal architecture. Every method that
// touches money or status executes as one atomic unit against the
// campaign aggregate: implementations must lock the campaign row (or an
// equivalent single-writer section), re-validate preconditions through
// the domain functions and commit all writes together, or roll back
// entirely. The escrow balance is never read in one transaction and
// written in another.
type CampaignRepository interface {
	// CreateCampaign debits the campaign budget from the brand account
	// and inserts the campaign in the same transaction. Fails with
	// domain.ErrInsufficientFunds when the brand balance cannot cover
	// the budget and domain.ErrDuplicateID when the id is taken.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// GetCampaign returns a campaign snapshot including its winner list.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// UpdateCampaignStatus applies a status transition after checking
	// legality via CampaignStatus.CanTransitionTo under the row lock.
	UpdateCampaignStatus(ctx context.Context, campaignID string, next domain.CampaignStatus) (*domain.Campaign, error)
	// CompleteWithWinners stores the winner list and moves the campaign
	// to Completed. Winner membership in the applicant set is
	// re-validated inside the transaction.
	CompleteWithWinners(ctx context.Context, campaignID string, winners []string) (*domain.Campaign, error)

	// CreateApplication inserts an application; the unique
	// (campaign_id, creator_id) key surfaces domain.ErrAlreadyApplied.
	CreateApplication(ctx context.Context, app *domain.Application) error
	GetApplication(ctx context.Context, campaignID, creatorID string) (*domain.Application, error)
	ListApplications(ctx context.Context, campaignID string) ([]domain.Application, error)

	CreateContent(ctx context.Context, ct *domain.Content) error
	GetContent(ctx context.Context, campaignID, contentID string) (*domain.Content, error)
	ListContent(ctx context.Context, campaignID string) ([]domain.Content, error)
	// ReviewContent moves pending content to accepted or rejected.
	ReviewContent(ctx context.Context, campaignID, contentID string, approve bool, notes string, ts int64) (*domain.Content, error)
	// PublishContentAndPayBase is the Accepted->Published transition
	// plus the base payment, in one transaction: content update, escrow
	// check-and-debit, receipt insert and creator earnings increment all
	// commit or none do. Fails with domain.ErrInsufficientEscrow when
	// escrow cannot cover the base pay, leaving the content Accepted.
	PublishContentAndPayBase(ctx context.Context, campaignID, contentID string, ts int64, receipt *domain.PaymentReceipt) (*domain.Content, error)
	// SetEngagement overwrites the metric counters of published content.
	SetEngagement(ctx context.Context, campaignID, contentID string, m domain.Engagement, ts int64) (*domain.Content, error)
	// PayBonus computes the bonus from the engagement snapshot under the
	// row lock and, when positive, debits escrow, inserts the receipt
	// and marks the content's bonus as paid. A zero bonus returns
	// (nil, nil) with no writes. Repeat calls fail with
	// domain.ErrBonusAlreadyPaid.
	PayBonus(ctx context.Context, campaignID, contentID string, ts int64, receiptID, txRef string) (*domain.PaymentReceipt, error)

	ListReceipts(ctx context.Context, campaignID string) ([]domain.PaymentReceipt, error)
}

// AccountDirectory resolves brands and creators for existence and
// ownership checks. It is the engine's view of the registration
// subsystem; profile data beyond ownership and balances is not exposed
// here.
type AccountDirectory interface {
	GetBrand(ctx context.Context, id string) (*domain.BrandAccount, error)
	GetCreator(ctx context.Context, id string) (*domain.CreatorAccount, error)
	CreateBrand(ctx context.Context, b *domain.BrandAccount) error
	CreateCreator(ctx context.Context, c *domain.CreatorAccount) error
}
