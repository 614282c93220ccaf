package domain

import "time"

// CampaignStatus enumerates the campaign lifecycle states.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted, CampaignCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignCompleted || s == CampaignCancelled
}

// CanTransitionTo encodes the legal status moves. Transitions are
// monotonic except the Active<->Paused pair; Completed and Cancelled
// are terminal.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	if !next.Valid() || s == next {
		return false
	}
	switch s {
	case CampaignDraft:
		return next == CampaignActive || next == CampaignCancelled
	case CampaignActive:
		return next == CampaignPaused || next == CampaignCompleted || next == CampaignCancelled
	case CampaignPaused:
		return next == CampaignActive || next == CampaignCompleted || next == CampaignCancelled
	case CampaignCompleted, CampaignCancelled:
		return false
	}
	return false
}

// Schedule holds the four campaign timestamps in Unix milliseconds.
type Schedule struct {
	ApplicationStart int64 `json:"application_start"`
	ApplicationEnd   int64 `json:"application_end"`
	CampaignStart    int64 `json:"campaign_start"`
	CampaignEnd      int64 `json:"campaign_end"`
}

// Validate enforces application_start < application_end <=
// campaign_start < campaign_end.
func (s Schedule) Validate() error {
	if s.ApplicationStart >= s.ApplicationEnd ||
		s.ApplicationEnd > s.CampaignStart ||
		s.CampaignStart >= s.CampaignEnd {
		return ErrInvalidSchedule
	}
	return nil
}

// InApplicationWindow reports whether ts falls inside the inclusive
// application window.
func (s Schedule) InApplicationWindow(ts int64) bool {
	return ts >= s.ApplicationStart && ts <= s.ApplicationEnd
}

// CPMRates is the payout table: amount paid per 100 units of each
// engagement metric.
type CPMRates struct {
	Likes      Amount `json:"likes"`
	Views      Amount `json:"views"`
	Retweets   Amount `json:"retweets"`
	Comments   Amount `json:"comments"`
	LinkClicks Amount `json:"link_clicks"`
}

// Campaign is the escrow aggregate root. Escrow is never mutated outside
// the repository's atomic check-and-debit; everything else changes only
// through the workflow operations.
type Campaign struct {
	ID          string
	BrandID     string
	BrandOwner  string
	Category    string
	Schedule    Schedule
	BasePay     Amount
	TotalBudget Amount
	Escrow      Amount
	Rates       CPMRates
	Status      CampaignStatus
	Winners     []string
	MaxWinners  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCampaign validates params and returns an Active campaign holding
// the whole budget in escrow. Moving the funds out of the brand account
// is the repository's job and commits atomically with the insert.
func NewCampaign(id, brandID, brandOwner, category string, sched Schedule, basePay, totalBudget Amount, rates CPMRates, maxWinners int, now time.Time) (*Campaign, error) {
	if id == "" || brandID == "" || brandOwner == "" {
		return nil, ErrInvalidInput
	}
	if err := sched.Validate(); err != nil {
		return nil, err
	}
	if basePay == 0 || totalBudget == 0 || maxWinners <= 0 {
		return nil, ErrInvalidInput
	}
	return &Campaign{
		ID:          id,
		BrandID:     brandID,
		BrandOwner:  brandOwner,
		Category:    category,
		Schedule:    sched,
		BasePay:     basePay,
		TotalBudget: totalBudget,
		Escrow:      totalBudget,
		Rates:       rates,
		Status:      CampaignActive,
		MaxWinners:  maxWinners,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Spent returns the total already paid out of escrow. Conservation:
// Spent equals the sum of all receipt amounts for this campaign.
func (c *Campaign) Spent() Amount {
	return c.TotalBudget - c.Escrow
}

// ValidateWinners checks a proposed winner list against the campaign cap
// and the applicant set. It does not mutate the campaign.
func (c *Campaign) ValidateWinners(winners []string, isApplicant func(creatorID string) bool) error {
	if len(winners) == 0 {
		return ErrInvalidInput
	}
	if len(winners) > c.MaxWinners {
		return ErrTooManyWinners
	}
	for _, id := range winners {
		if !isApplicant(id) {
			return ErrWinnerNotApplicant
		}
	}
	return nil
}

// IsWinner reports whether the creator was designated a winner.
func (c *Campaign) IsWinner(creatorID string) bool {
	for _, id := range c.Winners {
		if id == creatorID {
			return true
		}
	}
	return false
}
