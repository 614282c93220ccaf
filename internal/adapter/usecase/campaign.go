package usecase

import (
	"context"
	"fmt"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

// CreateCampaign funds and activates a campaign. The budget moves from
// the brand account into escrow atomically with the insert; on any
// validation failure nothing is debited and no campaign exists.
func (s *EscrowService) CreateCampaign(ctx context.Context, in port.CreateCampaignInput) (*domain.Campaign, error) {
	brand, err := s.directory.GetBrand(ctx, in.BrandID)
	if err != nil {
		return nil, err
	}
	if brand.Owner != in.Caller {
		return nil, fmt.Errorf("create campaign: caller does not own brand %s: %w", in.BrandID, domain.ErrUnauthorized)
	}
	c, err := domain.NewCampaign(in.CampaignID, in.BrandID, brand.Owner, in.Category, in.Schedule, in.BasePay, in.Budget, in.Rates, in.MaxWinners, s.nowFn())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventCampaignCreated,
		CampaignID: c.ID,
		BrandID:    c.BrandID,
		Amount:     uint64(c.TotalBudget),
		Timestamp:  c.CreatedAt.UnixMilli(),
	})
	return c, nil
}

// GetCampaign returns a campaign snapshot.
func (s *EscrowService) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.GetCampaign(ctx, id)
}

// UpdateCampaignStatus applies a brand-requested transition. Legality is
// re-checked by the repository under the campaign row lock; terminal
// states reject everything.
func (s *EscrowService) UpdateCampaignStatus(ctx context.Context, in port.UpdateStatusInput) (*domain.Campaign, error) {
	if !in.Status.Valid() {
		return nil, fmt.Errorf("update status: unknown status %q: %w", in.Status, domain.ErrInvalidInput)
	}
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.BrandOwner != in.Caller {
		return nil, fmt.Errorf("update status: caller does not own campaign %s: %w", in.CampaignID, domain.ErrUnauthorized)
	}
	updated, err := s.repo.UpdateCampaignStatus(ctx, in.CampaignID, in.Status)
	if err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventCampaignStatus,
		CampaignID: updated.ID,
		BrandID:    updated.BrandID,
		Timestamp:  s.nowFn().UnixMilli(),
	})
	return updated, nil
}

// SelectWinners records the bonus-eligible creators and completes the
// campaign. Winner membership is validated against the applicant set
// both here (fast failure) and inside the repository transaction
// (authoritative).
func (s *EscrowService) SelectWinners(ctx context.Context, in port.SelectWinnersInput) (*domain.Campaign, error) {
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.BrandOwner != in.Caller {
		return nil, fmt.Errorf("select winners: caller does not own campaign %s: %w", in.CampaignID, domain.ErrUnauthorized)
	}
	if c.Status.Terminal() {
		return nil, fmt.Errorf("select winners: campaign %s is %s: %w", c.ID, c.Status, domain.ErrInvalidState)
	}
	apps, err := s.repo.ListApplications(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	applicants := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		applicants[a.CreatorID] = struct{}{}
	}
	if err := c.ValidateWinners(in.Winners, func(id string) bool {
		_, ok := applicants[id]
		return ok
	}); err != nil {
		return nil, err
	}
	updated, err := s.repo.CompleteWithWinners(ctx, in.CampaignID, in.Winners)
	if err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventWinnersSelected,
		CampaignID: updated.ID,
		BrandID:    updated.BrandID,
		Timestamp:  s.nowFn().UnixMilli(),
	})
	return updated, nil
}

// ListReceipts returns every payment receipt issued for a campaign.
func (s *EscrowService) ListReceipts(ctx context.Context, campaignID string) ([]domain.PaymentReceipt, error) {
	return s.repo.ListReceipts(ctx, campaignID)
}
