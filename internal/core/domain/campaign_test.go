package domain

import (
	"errors"
	"testing"
	"time"
)

func validSchedule() Schedule {
	return Schedule{ApplicationStart: 1000, ApplicationEnd: 2000, CampaignStart: 2000, CampaignEnd: 5000}
}

// TestScheduleValidate covers the ordering rule over the four
// timestamps.
func TestScheduleValidate(t *testing.T) {
	if err := validSchedule().Validate(); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}

	bad := []Schedule{
		{ApplicationStart: 2000, ApplicationEnd: 1000, CampaignStart: 3000, CampaignEnd: 4000},
		{ApplicationStart: 1000, ApplicationEnd: 1000, CampaignStart: 2000, CampaignEnd: 3000},
		{ApplicationStart: 1000, ApplicationEnd: 2500, CampaignStart: 2000, CampaignEnd: 3000},
		{ApplicationStart: 1000, ApplicationEnd: 2000, CampaignStart: 3000, CampaignEnd: 3000},
		{ApplicationStart: 1000, ApplicationEnd: 2000, CampaignStart: 4000, CampaignEnd: 3000},
	}
	for i, s := range bad {
		if err := s.Validate(); !errors.Is(err, ErrInvalidSchedule) {
			t.Fatalf("schedule %d: expected ErrInvalidSchedule, got %v", i, err)
		}
	}
}

// TestInApplicationWindow checks the window bounds are inclusive.
func TestInApplicationWindow(t *testing.T) {
	s := validSchedule()
	for ts, want := range map[int64]bool{
		999:  false,
		1000: true,
		1500: true,
		2000: true,
		2001: false,
	} {
		if got := s.InApplicationWindow(ts); got != want {
			t.Fatalf("ts %d: expected %v, got %v", ts, want, got)
		}
	}
}

// TestStatusTransitions walks the campaign status machine, including
// the Active<->Paused cycle and the terminal states.
func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to CampaignStatus }{
		{CampaignDraft, CampaignActive},
		{CampaignDraft, CampaignCancelled},
		{CampaignActive, CampaignPaused},
		{CampaignActive, CampaignCompleted},
		{CampaignActive, CampaignCancelled},
		{CampaignPaused, CampaignActive},
		{CampaignPaused, CampaignCompleted},
		{CampaignPaused, CampaignCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to CampaignStatus }{
		{CampaignDraft, CampaignPaused},
		{CampaignDraft, CampaignCompleted},
		{CampaignActive, CampaignDraft},
		{CampaignActive, CampaignActive},
		{CampaignCompleted, CampaignActive},
		{CampaignCompleted, CampaignCancelled},
		{CampaignCancelled, CampaignActive},
		{CampaignActive, CampaignStatus("archived")},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

// TestNewCampaign ensures creation validates inputs and escrows the
// whole budget.
func TestNewCampaign(t *testing.T) {
	now := time.UnixMilli(0)
	c, err := NewCampaign("camp1", "b1", "0xbrand", "tech", validSchedule(), 1000, 10000, CPMRates{}, 2, now)
	if err != nil {
		t.Fatalf("NewCampaign error: %v", err)
	}
	if c.Status != CampaignActive {
		t.Fatalf("expected active, got %s", c.Status)
	}
	if c.Escrow != c.TotalBudget {
		t.Fatalf("expected escrow %d, got %d", c.TotalBudget, c.Escrow)
	}
	if c.Spent() != 0 {
		t.Fatalf("expected nothing spent, got %d", c.Spent())
	}

	if _, err = NewCampaign("", "b1", "0xbrand", "", validSchedule(), 1000, 10000, CPMRates{}, 2, now); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty id: expected ErrInvalidInput, got %v", err)
	}
	if _, err = NewCampaign("camp1", "b1", "0xbrand", "", Schedule{}, 1000, 10000, CPMRates{}, 2, now); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("zero schedule: expected ErrInvalidSchedule, got %v", err)
	}
	if _, err = NewCampaign("camp1", "b1", "0xbrand", "", validSchedule(), 0, 10000, CPMRates{}, 2, now); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero base pay: expected ErrInvalidInput, got %v", err)
	}
	if _, err = NewCampaign("camp1", "b1", "0xbrand", "", validSchedule(), 1000, 10000, CPMRates{}, 0, now); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero winner cap: expected ErrInvalidInput, got %v", err)
	}
}

// TestValidateWinners checks the cap and the applicant-set membership
// rule.
func TestValidateWinners(t *testing.T) {
	c := &Campaign{MaxWinners: 2}
	applicants := map[string]bool{"c1": true, "c2": true, "c3": true}
	isApplicant := func(id string) bool { return applicants[id] }

	if err := c.ValidateWinners([]string{"c1", "c2"}, isApplicant); err != nil {
		t.Fatalf("valid winners rejected: %v", err)
	}
	if err := c.ValidateWinners(nil, isApplicant); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty list: expected ErrInvalidInput, got %v", err)
	}
	if err := c.ValidateWinners([]string{"c1", "c2", "c3"}, isApplicant); !errors.Is(err, ErrTooManyWinners) {
		t.Fatalf("over cap: expected ErrTooManyWinners, got %v", err)
	}
	if err := c.ValidateWinners([]string{"c1", "ghost"}, isApplicant); !errors.Is(err, ErrWinnerNotApplicant) {
		t.Fatalf("non-applicant: expected ErrWinnerNotApplicant, got %v", err)
	}
}
