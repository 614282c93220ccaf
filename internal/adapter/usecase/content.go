package usecase

import (
	"context"
	"fmt"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

// SubmitContent creates pending content for a creator who holds an
// accepted application on the campaign.
func (s *EscrowService) SubmitContent(ctx context.Context, in port.SubmitContentInput) (*domain.Content, error) {
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetApplication(ctx, in.CampaignID, in.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("submit content: creator %s has no application on campaign %s: %w", in.CreatorID, in.CampaignID, err)
	}
	if app.CreatorOwner != in.Caller {
		return nil, fmt.Errorf("submit content: caller does not own creator %s: %w", in.CreatorID, domain.ErrUnauthorized)
	}
	ct, err := domain.NewContent(c, in.ContentID, in.CreatorID, app.CreatorOwner, in.Link, in.Timestamp, s.nowFn())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateContent(ctx, ct); err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventContentSubmitted,
		CampaignID: ct.CampaignID,
		CreatorID:  ct.CreatorID,
		ContentID:  ct.ID,
		Timestamp:  ct.SubmittedAt,
	})
	return ct, nil
}

// ReviewContent is the brand's accept/reject decision over pending
// content.
func (s *EscrowService) ReviewContent(ctx context.Context, in port.ReviewContentInput) (*domain.Content, error) {
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.BrandOwner != in.Caller {
		return nil, fmt.Errorf("review content: caller does not own campaign %s: %w", in.CampaignID, domain.ErrUnauthorized)
	}
	ct, err := s.repo.ReviewContent(ctx, in.CampaignID, in.ContentID, in.Approve, in.Notes, in.Timestamp)
	if err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventContentReviewed,
		CampaignID: ct.CampaignID,
		CreatorID:  ct.CreatorID,
		ContentID:  ct.ID,
		Timestamp:  in.Timestamp,
	})
	return ct, nil
}

// PublishContent transitions accepted content to published and pays the
// base amount in the same transaction. When escrow cannot cover the
// base pay the whole operation fails and the content stays accepted.
func (s *EscrowService) PublishContent(ctx context.Context, in port.PublishContentInput) (*port.PublishResult, error) {
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	ct, err := s.repo.GetContent(ctx, in.CampaignID, in.ContentID)
	if err != nil {
		return nil, err
	}
	if ct.CreatorOwner != in.Caller {
		return nil, fmt.Errorf("publish: caller does not own content %s: %w", in.ContentID, domain.ErrUnauthorized)
	}
	receipt := s.newReceipt(domain.PaymentBase, c.BasePay, c.ID, ct.ID, ct.CreatorID, ct.CreatorOwner, in.Timestamp,
		fmt.Sprintf("base pay for content %s on campaign %s", ct.ID, c.ID))
	published, err := s.repo.PublishContentAndPayBase(ctx, in.CampaignID, in.ContentID, in.Timestamp, receipt)
	if err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventContentPublished,
		CampaignID: published.CampaignID,
		CreatorID:  published.CreatorID,
		ContentID:  published.ID,
		Timestamp:  in.Timestamp,
	})
	s.emit(port.Event{
		Type:       port.EventPaymentProcessed,
		CampaignID: receipt.CampaignID,
		CreatorID:  receipt.CreatorID,
		ContentID:  receipt.ContentID,
		Amount:     uint64(receipt.Amount),
		Timestamp:  receipt.PaidAt,
	})
	return &port.PublishResult{Content: published, Receipt: receipt}, nil
}

// UpdateEngagement overwrites the engagement counters of published
// content. Brand-only; last write wins.
func (s *EscrowService) UpdateEngagement(ctx context.Context, in port.UpdateEngagementInput) (*domain.Content, error) {
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.BrandOwner != in.Caller {
		return nil, fmt.Errorf("update engagement: caller does not own campaign %s: %w", in.CampaignID, domain.ErrUnauthorized)
	}
	ct, err := s.repo.SetEngagement(ctx, in.CampaignID, in.ContentID, in.Engagement, in.Timestamp)
	if err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventEngagementUpdated,
		CampaignID: ct.CampaignID,
		CreatorID:  ct.CreatorID,
		ContentID:  ct.ID,
		Timestamp:  in.Timestamp,
	})
	return ct, nil
}

// ListContent returns all content submitted to a campaign.
func (s *EscrowService) ListContent(ctx context.Context, campaignID string) ([]domain.Content, error) {
	return s.repo.ListContent(ctx, campaignID)
}
