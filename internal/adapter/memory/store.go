// Package memory provides an in-process implementation of the engine's
// persistence ports. Each campaign aggregate is guarded by its own
// mutex, so operations on the same campaign serialize while independent
// campaigns proceed in parallel, mirroring the per-aggregate isolation
// the Postgres adapter gets from row locks.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"collabpay/internal/core/domain"
)

type campaignAggregate struct {
	mu       sync.Mutex
	campaign domain.Campaign
	apps     map[string]domain.Application
	content  map[string]domain.Content
	receipts []domain.PaymentReceipt
}

// Store holds all engine state in memory. It implements both
// port.CampaignRepository and port.AccountDirectory.
type Store struct {
	mu        sync.RWMutex
	campaigns map[string]*campaignAggregate

	amu      sync.Mutex
	brands   map[string]*domain.BrandAccount
	creators map[string]*domain.CreatorAccount
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		campaigns: map[string]*campaignAggregate{},
		brands:    map[string]*domain.BrandAccount{},
		creators:  map[string]*domain.CreatorAccount{},
	}
}

func (s *Store) aggregate(id string) (*campaignAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return agg, nil
}

func cloneCampaign(c domain.Campaign) *domain.Campaign {
	out := c
	out.Winners = append([]string(nil), c.Winners...)
	return &out
}

// CreateCampaign debits the brand balance and registers the campaign in
// one critical section.
func (s *Store) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; ok {
		return fmt.Errorf("campaign %s: %w", c.ID, domain.ErrDuplicateID)
	}
	s.amu.Lock()
	defer s.amu.Unlock()
	brand, ok := s.brands[c.BrandID]
	if !ok {
		return fmt.Errorf("brand %s: %w", c.BrandID, domain.ErrNotFound)
	}
	remaining, err := brand.Balance.CheckedSub(c.TotalBudget)
	if err != nil {
		return fmt.Errorf("brand %s balance %d, budget %d: %w", c.BrandID, brand.Balance, c.TotalBudget, domain.ErrInsufficientFunds)
	}
	brand.Balance = remaining
	s.campaigns[c.ID] = &campaignAggregate{
		campaign: *cloneCampaign(*c),
		apps:     map[string]domain.Application{},
		content:  map[string]domain.Content{},
	}
	return nil
}

// GetCampaign returns a snapshot of the campaign.
func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	agg, err := s.aggregate(id)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return cloneCampaign(agg.campaign), nil
}

// UpdateCampaignStatus applies a legal status transition.
func (s *Store) UpdateCampaignStatus(_ context.Context, campaignID string, next domain.CampaignStatus) (*domain.Campaign, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if !agg.campaign.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("campaign %s: %s -> %s: %w", campaignID, agg.campaign.Status, next, domain.ErrInvalidState)
	}
	agg.campaign.Status = next
	return cloneCampaign(agg.campaign), nil
}

// CompleteWithWinners stores the winner list and completes the campaign.
func (s *Store) CompleteWithWinners(_ context.Context, campaignID string, winners []string) (*domain.Campaign, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.campaign.Status.Terminal() {
		return nil, fmt.Errorf("campaign %s is %s: %w", campaignID, agg.campaign.Status, domain.ErrInvalidState)
	}
	if err := agg.campaign.ValidateWinners(winners, func(id string) bool {
		_, ok := agg.apps[id]
		return ok
	}); err != nil {
		return nil, err
	}
	agg.campaign.Winners = append([]string(nil), winners...)
	agg.campaign.Status = domain.CampaignCompleted
	return cloneCampaign(agg.campaign), nil
}

// CreateApplication inserts an application keyed by creator id.
func (s *Store) CreateApplication(_ context.Context, app *domain.Application) error {
	agg, err := s.aggregate(app.CampaignID)
	if err != nil {
		return err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if _, ok := agg.apps[app.CreatorID]; ok {
		return fmt.Errorf("creator %s on campaign %s: %w", app.CreatorID, app.CampaignID, domain.ErrAlreadyApplied)
	}
	agg.apps[app.CreatorID] = *app
	return nil
}

func (s *Store) GetApplication(_ context.Context, campaignID, creatorID string) (*domain.Application, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	app, ok := agg.apps[creatorID]
	if !ok {
		return nil, fmt.Errorf("application by %s on campaign %s: %w", creatorID, campaignID, domain.ErrNotFound)
	}
	out := app
	return &out, nil
}

func (s *Store) ListApplications(_ context.Context, campaignID string) ([]domain.Application, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	out := make([]domain.Application, 0, len(agg.apps))
	for _, a := range agg.apps {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt < out[j].SubmittedAt })
	return out, nil
}

// CreateContent registers pending content under the submitting creator.
func (s *Store) CreateContent(_ context.Context, ct *domain.Content) error {
	agg, err := s.aggregate(ct.CampaignID)
	if err != nil {
		return err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if _, ok := agg.content[ct.ID]; ok {
		return fmt.Errorf("content %s: %w", ct.ID, domain.ErrDuplicateID)
	}
	agg.content[ct.ID] = *ct
	return nil
}

func (s *Store) GetContent(_ context.Context, campaignID, contentID string) (*domain.Content, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return s.contentLocked(agg, contentID)
}

func (s *Store) contentLocked(agg *campaignAggregate, contentID string) (*domain.Content, error) {
	ct, ok := agg.content[contentID]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}
	out := ct
	return &out, nil
}

func (s *Store) ListContent(_ context.Context, campaignID string) ([]domain.Content, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	out := make([]domain.Content, 0, len(agg.content))
	for _, ct := range agg.content {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt < out[j].SubmittedAt })
	return out, nil
}

// ReviewContent applies the brand's accept/reject decision.
func (s *Store) ReviewContent(_ context.Context, campaignID, contentID string, approve bool, notes string, ts int64) (*domain.Content, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	ct, err := s.contentLocked(agg, contentID)
	if err != nil {
		return nil, err
	}
	if err := ct.Review(approve, notes, ts); err != nil {
		return nil, fmt.Errorf("review content %s in status %s: %w", contentID, agg.content[contentID].Status, err)
	}
	agg.content[contentID] = *ct
	return ct, nil
}

// PublishContentAndPayBase is the publish transition plus base payment:
// all writes happen under the aggregate lock or none do.
func (s *Store) PublishContentAndPayBase(_ context.Context, campaignID, contentID string, ts int64, receipt *domain.PaymentReceipt) (*domain.Content, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	ct, err := s.contentLocked(agg, contentID)
	if err != nil {
		return nil, err
	}
	if err := ct.Publish(ts); err != nil {
		return nil, fmt.Errorf("publish content %s in status %s: %w", contentID, agg.content[contentID].Status, err)
	}
	remaining, err := agg.campaign.Escrow.CheckedSub(agg.campaign.BasePay)
	if err != nil {
		return nil, fmt.Errorf("escrow %d, base pay %d: %w", agg.campaign.Escrow, agg.campaign.BasePay, domain.ErrInsufficientEscrow)
	}
	if err := s.creditCreator(ct.CreatorID, agg.campaign.BasePay); err != nil {
		return nil, err
	}
	agg.campaign.Escrow = remaining
	agg.content[contentID] = *ct
	agg.receipts = append(agg.receipts, *receipt)
	return ct, nil
}

// SetEngagement overwrites the metric counters of published content.
func (s *Store) SetEngagement(_ context.Context, campaignID, contentID string, m domain.Engagement, ts int64) (*domain.Content, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	ct, err := s.contentLocked(agg, contentID)
	if err != nil {
		return nil, err
	}
	if err := ct.SetEngagement(m, ts); err != nil {
		return nil, fmt.Errorf("engagement on content %s in status %s: %w", contentID, agg.content[contentID].Status, err)
	}
	agg.content[contentID] = *ct
	return ct, nil
}

// PayBonus recomputes the bonus under the aggregate lock and, when
// positive, debits escrow, appends the receipt and marks the content
// paid. A zero bonus makes no writes and returns (nil, nil).
func (s *Store) PayBonus(_ context.Context, campaignID, contentID string, ts int64, receiptID, txRef string) (*domain.PaymentReceipt, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	ct, err := s.contentLocked(agg, contentID)
	if err != nil {
		return nil, err
	}
	if ct.Status != domain.ContentPublished {
		return nil, fmt.Errorf("bonus for content %s in status %s: %w", contentID, ct.Status, domain.ErrInvalidState)
	}
	if ct.BonusPaid {
		return nil, fmt.Errorf("content %s: %w", contentID, domain.ErrBonusAlreadyPaid)
	}
	if !agg.campaign.IsWinner(ct.CreatorID) {
		return nil, fmt.Errorf("creator %s: %w", ct.CreatorID, domain.ErrNotAWinner)
	}
	bonus := domain.ComputeBonus(agg.campaign.Rates, ct.Engagement)
	if bonus.IsZero() {
		return nil, nil
	}
	remaining, err := agg.campaign.Escrow.CheckedSub(bonus)
	if err != nil {
		return nil, fmt.Errorf("escrow %d, bonus %d: %w", agg.campaign.Escrow, bonus, domain.ErrInsufficientEscrow)
	}
	if err := s.creditCreator(ct.CreatorID, bonus); err != nil {
		return nil, err
	}
	agg.campaign.Escrow = remaining
	ct.BonusPaid = true
	agg.content[contentID] = *ct
	receipt := domain.PaymentReceipt{
		ID:          receiptID,
		Kind:        domain.PaymentBonus,
		Amount:      bonus,
		CampaignID:  campaignID,
		ContentID:   contentID,
		CreatorID:   ct.CreatorID,
		CreatorAddr: ct.CreatorOwner,
		Description: fmt.Sprintf("bonus pay for content %s on campaign %s", contentID, campaignID),
		TxRef:       txRef,
		PaidAt:      ts,
	}
	agg.receipts = append(agg.receipts, receipt)
	out := receipt
	return &out, nil
}

func (s *Store) ListReceipts(_ context.Context, campaignID string) ([]domain.PaymentReceipt, error) {
	agg, err := s.aggregate(campaignID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return append([]domain.PaymentReceipt(nil), agg.receipts...), nil
}

func (s *Store) creditCreator(creatorID string, amount domain.Amount) error {
	s.amu.Lock()
	defer s.amu.Unlock()
	creator, ok := s.creators[creatorID]
	if !ok {
		return fmt.Errorf("creator %s: %w", creatorID, domain.ErrNotFound)
	}
	balance, err := creator.Balance.CheckedAdd(amount)
	if err != nil {
		return err
	}
	earnings, err := creator.TotalEarnings.CheckedAdd(amount)
	if err != nil {
		return err
	}
	creator.Balance = balance
	creator.TotalEarnings = earnings
	return nil
}
