package db

import (
	"context"
	"errors"
	"time"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

const seedBrandOwner = "0xb8and000000000000000000000000000000acme1"

// Seed inserts demo data: one funded brand, three creators and an
// active campaign whose application window opened an hour ago. It goes
// through the repository ports so the campaign budget is debited
// atomically with the campaign insert, and reruns are no-ops: rows that
// already exist are skipped and no money moves twice.
func Seed(ctx context.Context, repo port.CampaignRepository, accounts port.AccountDirectory) error {
	now := time.Now().UTC()

	brand := &domain.BrandAccount{ID: "acme", Owner: seedBrandOwner, Balance: 100000000, CreatedAt: now}
	if err := accounts.CreateBrand(ctx, brand); err != nil && !errors.Is(err, domain.ErrDuplicateID) {
		return err
	}
	creators := []struct{ id, owner string }{
		{"casey", "0xc8ea000000000000000000000000000000casey1"},
		{"jordan", "0xc8ea00000000000000000000000000000jordan1"},
		{"riley", "0xc8ea000000000000000000000000000000riley1"},
	}
	for _, c := range creators {
		err := accounts.CreateCreator(ctx, &domain.CreatorAccount{ID: c.id, Owner: c.owner, CreatedAt: now})
		if err != nil && !errors.Is(err, domain.ErrDuplicateID) {
			return err
		}
	}

	sched := domain.Schedule{
		ApplicationStart: now.Add(-1 * time.Hour).UnixMilli(),
		ApplicationEnd:   now.Add(24 * time.Hour).UnixMilli(),
		CampaignStart:    now.Add(24 * time.Hour).UnixMilli(),
		CampaignEnd:      now.Add(30 * 24 * time.Hour).UnixMilli(),
	}
	rates := domain.CPMRates{Likes: 10, Views: 5, Retweets: 20, Comments: 15, LinkClicks: 25}
	campaign, err := domain.NewCampaign("spring-launch", "acme", seedBrandOwner, "lifestyle", sched, 100000, 1000000, rates, 3, now)
	if err != nil {
		return err
	}
	if err := repo.CreateCampaign(ctx, campaign); err != nil && !errors.Is(err, domain.ErrDuplicateID) {
		return err
	}
	return nil
}
