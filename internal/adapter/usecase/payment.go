package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

// PayBonus pays the CPM-weighted bonus for one published piece of
// content to a campaign winner. The bonus is recomputed from the
// engagement snapshot under the campaign row lock; a computed bonus of
// zero is a deliberate no-op returning (nil, nil) so that no zero-value
// receipt is ever minted. Repeat calls for the same content fail with
// domain.ErrBonusAlreadyPaid.
func (s *EscrowService) PayBonus(ctx context.Context, in port.PayBonusInput) (*domain.PaymentReceipt, error) {
	c, err := s.repo.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.BrandOwner != in.Caller {
		return nil, fmt.Errorf("pay bonus: caller does not own campaign %s: %w", in.CampaignID, domain.ErrUnauthorized)
	}
	ct, err := s.repo.GetContent(ctx, in.CampaignID, in.ContentID)
	if err != nil {
		return nil, err
	}
	if !c.IsWinner(ct.CreatorID) {
		return nil, fmt.Errorf("pay bonus: creator %s: %w", ct.CreatorID, domain.ErrNotAWinner)
	}
	receipt, err := s.repo.PayBonus(ctx, in.CampaignID, in.ContentID, in.Timestamp, uuid.NewString(), uuid.NewString())
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, nil
	}
	s.emit(port.Event{
		Type:       port.EventPaymentProcessed,
		CampaignID: receipt.CampaignID,
		CreatorID:  receipt.CreatorID,
		ContentID:  receipt.ContentID,
		Amount:     uint64(receipt.Amount),
		Timestamp:  receipt.PaidAt,
	})
	return receipt, nil
}

// newReceipt mints an unsaved receipt record. Persisting it is part of
// the repository's atomic payment operation.
func (s *EscrowService) newReceipt(kind domain.PaymentKind, amount domain.Amount, campaignID, contentID, creatorID, creatorAddr string, ts int64, desc string) *domain.PaymentReceipt {
	return &domain.PaymentReceipt{
		ID:          uuid.NewString(),
		Kind:        kind,
		Amount:      amount,
		CampaignID:  campaignID,
		ContentID:   contentID,
		CreatorID:   creatorID,
		CreatorAddr: creatorAddr,
		Description: desc,
		TxRef:       uuid.NewString(),
		PaidAt:      ts,
		CreatedAt:   s.nowFn(),
	}
}
