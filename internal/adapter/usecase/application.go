package usecase

import (
	"context"
	"fmt"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

// Apply files a creator's application to an active campaign. Policy is
// auto-accept: the application is accepted the moment it is created.
// The timestamp is the caller-supplied clock reading checked against the
// application window at the instant of the call.
func (s *EscrowService) Apply(ctx context.Context, in port.ApplyInput) (*domain.Application, error) {
	creator, err := s.directory.GetCreator(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator.Owner != in.Caller {
		return nil, fmt.Errorf("apply: caller does not own creator %s: %w", in.CreatorID, domain.ErrUnauthorized)
	}
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	app, err := domain.NewApplication(c, in.CreatorID, creator.Owner, in.ContentPlan, in.Timestamp, s.nowFn())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.emit(port.Event{
		Type:       port.EventApplicationFiled,
		CampaignID: app.CampaignID,
		CreatorID:  app.CreatorID,
		Timestamp:  app.SubmittedAt,
	})
	return app, nil
}

// ListApplications returns the applications filed on a campaign.
func (s *EscrowService) ListApplications(ctx context.Context, campaignID string) ([]domain.Application, error) {
	return s.repo.ListApplications(ctx, campaignID)
}
