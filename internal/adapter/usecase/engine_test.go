package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"collabpay/internal/adapter/events"
	"collabpay/internal/adapter/memory"
	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

const (
	brandOwner  = "0xbrand"
	caseyOwner  = "0xcasey"
	jordanOwner = "0xjordan"
)

type fixture struct {
	store *memory.Store
	svc   *EscrowService
	sink  *events.MemorySink
}

// newFixture builds a service over the in-memory store seeded with one
// brand and two creators.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	svc := NewEscrowService(store, store)
	sink := events.NewMemorySink()
	svc.SetSink(sink)
	svc.SetNowFunc(func() time.Time { return time.UnixMilli(0).UTC() })

	ctx := context.Background()
	require.NoError(t, store.CreateBrand(ctx, &domain.BrandAccount{ID: "b1", Owner: brandOwner, Balance: 50000}))
	require.NoError(t, store.CreateCreator(ctx, &domain.CreatorAccount{ID: "c1", Owner: caseyOwner}))
	require.NoError(t, store.CreateCreator(ctx, &domain.CreatorAccount{ID: "c2", Owner: jordanOwner}))
	return &fixture{store: store, svc: svc, sink: sink}
}

func campaignInput() port.CreateCampaignInput {
	return port.CreateCampaignInput{
		Caller:     brandOwner,
		CampaignID: "camp1",
		BrandID:    "b1",
		Category:   "tech",
		Schedule:   domain.Schedule{ApplicationStart: 1000, ApplicationEnd: 2000, CampaignStart: 2000, CampaignEnd: 5000},
		BasePay:    1000,
		Budget:     10000,
		Rates:      domain.CPMRates{Likes: 10, Views: 5, Retweets: 20, Comments: 15, LinkClicks: 25},
		MaxWinners: 2,
	}
}

func (f *fixture) createCampaign(t *testing.T) *domain.Campaign {
	t.Helper()
	c, err := f.svc.CreateCampaign(context.Background(), campaignInput())
	require.NoError(t, err)
	return c
}

func (f *fixture) apply(t *testing.T, caller, creatorID string, ts int64) {
	t.Helper()
	_, err := f.svc.Apply(context.Background(), port.ApplyInput{
		Caller: caller, CampaignID: "camp1", CreatorID: creatorID, ContentPlan: "posts", Timestamp: ts,
	})
	require.NoError(t, err)
}

func (f *fixture) submitAndApprove(t *testing.T, caller, creatorID, contentID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.SubmitContent(ctx, port.SubmitContentInput{
		Caller: caller, CampaignID: "camp1", ContentID: contentID, CreatorID: creatorID,
		Link: "https://example.com/" + contentID, Timestamp: 2500,
	})
	require.NoError(t, err)
	_, err = f.svc.ReviewContent(ctx, port.ReviewContentInput{
		Caller: brandOwner, CampaignID: "camp1", ContentID: contentID, Approve: true, Timestamp: 2600,
	})
	require.NoError(t, err)
}

// TestCreateCampaignFundsEscrow ensures creation debits the brand
// account and locks the whole budget in escrow.
func TestCreateCampaignFundsEscrow(t *testing.T) {
	f := newFixture(t)
	c := f.createCampaign(t)

	if c.Escrow != 10000 || c.Status != domain.CampaignActive {
		t.Fatalf("unexpected campaign: escrow %d status %s", c.Escrow, c.Status)
	}
	brand, err := f.store.GetBrand(context.Background(), "b1")
	require.NoError(t, err)
	if brand.Balance != 40000 {
		t.Fatalf("expected brand balance 40000, got %d", brand.Balance)
	}

	// same id again
	_, err = f.svc.CreateCampaign(context.Background(), campaignInput())
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	// budget above remaining balance
	in := campaignInput()
	in.CampaignID = "camp2"
	in.Budget = 40001
	_, err = f.svc.CreateCampaign(context.Background(), in)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// reversed schedule fails before anything is debited
	in = campaignInput()
	in.CampaignID = "camp3"
	in.Schedule = domain.Schedule{ApplicationStart: 2000, ApplicationEnd: 1000, CampaignStart: 3000, CampaignEnd: 4000}
	_, err = f.svc.CreateCampaign(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
	if _, err = f.svc.GetCampaign(context.Background(), "camp3"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("failed creation must not register a campaign, got %v", err)
	}

	brand, err = f.store.GetBrand(context.Background(), "b1")
	require.NoError(t, err)
	if brand.Balance != 40000 {
		t.Fatalf("failed creation must not debit, balance %d", brand.Balance)
	}
}

// TestCreateCampaignUnauthorized ensures only the brand owner can fund
// a campaign.
func TestCreateCampaignUnauthorized(t *testing.T) {
	f := newFixture(t)
	in := campaignInput()
	in.Caller = caseyOwner
	_, err := f.svc.CreateCampaign(context.Background(), in)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// TestApplyWindow ensures applications land only inside the inclusive
// application window and only once per creator.
func TestApplyWindow(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, port.ApplyInput{Caller: caseyOwner, CampaignID: "camp1", CreatorID: "c1", Timestamp: 500})
	if !errors.Is(err, domain.ErrOutsideWindow) {
		t.Fatalf("t=500: expected ErrOutsideWindow, got %v", err)
	}

	f.apply(t, caseyOwner, "c1", 1500)

	_, err = f.svc.Apply(ctx, port.ApplyInput{Caller: caseyOwner, CampaignID: "camp1", CreatorID: "c1", Timestamp: 1600})
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	_, err = f.svc.Apply(ctx, port.ApplyInput{Caller: caseyOwner, CampaignID: "camp1", CreatorID: "c2", Timestamp: 1600})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong owner: expected ErrUnauthorized, got %v", err)
	}

	apps, err := f.svc.ListApplications(ctx, "camp1")
	require.NoError(t, err)
	if len(apps) != 1 || apps[0].CreatorID != "c1" {
		t.Fatalf("unexpected applications: %+v", apps)
	}
}

// TestSubmitContentRequiresApplication ensures content from
// non-applicants is refused.
func TestSubmitContentRequiresApplication(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	_, err := f.svc.SubmitContent(context.Background(), port.SubmitContentInput{
		Caller: caseyOwner, CampaignID: "camp1", ContentID: "ct1", CreatorID: "c1",
		Link: "https://example.com/1", Timestamp: 2500,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestPublishPaysBase walks submit -> review -> publish and checks the
// base payment comes out of escrow exactly once.
func TestPublishPaysBase(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	f.apply(t, caseyOwner, "c1", 1500)
	f.submitAndApprove(t, caseyOwner, "c1", "ct1")
	ctx := context.Background()

	res, err := f.svc.PublishContent(ctx, port.PublishContentInput{
		Caller: caseyOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 2800,
	})
	require.NoError(t, err)
	if res.Receipt.Kind != domain.PaymentBase || res.Receipt.Amount != 1000 {
		t.Fatalf("unexpected receipt: %+v", res.Receipt)
	}
	if res.Content.Status != domain.ContentPublished {
		t.Fatalf("expected published, got %s", res.Content.Status)
	}

	c, err := f.svc.GetCampaign(ctx, "camp1")
	require.NoError(t, err)
	if c.Escrow != 9000 {
		t.Fatalf("expected escrow 9000, got %d", c.Escrow)
	}
	creator, err := f.store.GetCreator(ctx, "c1")
	require.NoError(t, err)
	if creator.Balance != 1000 || creator.TotalEarnings != 1000 {
		t.Fatalf("unexpected creator account: %+v", creator)
	}

	// publishing again must fail and move no money
	_, err = f.svc.PublishContent(ctx, port.PublishContentInput{
		Caller: caseyOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 2900,
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("double publish: expected ErrInvalidState, got %v", err)
	}
	c, err = f.svc.GetCampaign(ctx, "camp1")
	require.NoError(t, err)
	if c.Escrow != 9000 {
		t.Fatalf("double publish changed escrow to %d", c.Escrow)
	}
}

// TestPublishUnauthorized ensures only the content's creator owner can
// trigger publication.
func TestPublishUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	f.apply(t, caseyOwner, "c1", 1500)
	f.submitAndApprove(t, caseyOwner, "c1", "ct1")

	_, err := f.svc.PublishContent(context.Background(), port.PublishContentInput{
		Caller: brandOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 2800,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// TestPublishInsufficientEscrow ensures a publish that escrow cannot
// cover fails whole, leaving the content accepted.
func TestPublishInsufficientEscrow(t *testing.T) {
	f := newFixture(t)
	in := campaignInput()
	in.Budget = 1500
	_, err := f.svc.CreateCampaign(context.Background(), in)
	require.NoError(t, err)
	f.apply(t, caseyOwner, "c1", 1500)
	f.apply(t, jordanOwner, "c2", 1500)
	f.submitAndApprove(t, caseyOwner, "c1", "ct1")
	f.submitAndApprove(t, jordanOwner, "c2", "ct2")
	ctx := context.Background()

	_, err = f.svc.PublishContent(ctx, port.PublishContentInput{Caller: caseyOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 2800})
	require.NoError(t, err)

	_, err = f.svc.PublishContent(ctx, port.PublishContentInput{Caller: jordanOwner, CampaignID: "camp1", ContentID: "ct2", Timestamp: 2900})
	if !errors.Is(err, domain.ErrInsufficientEscrow) {
		t.Fatalf("expected ErrInsufficientEscrow, got %v", err)
	}

	cts, err := f.svc.ListContent(ctx, "camp1")
	require.NoError(t, err)
	for _, ct := range cts {
		if ct.ID == "ct2" && ct.Status != domain.ContentAccepted {
			t.Fatalf("failed publish must leave content accepted, got %s", ct.Status)
		}
	}
}

// TestSelectWinners completes the campaign and locks in the bonus
// eligibility set.
func TestSelectWinners(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	f.apply(t, caseyOwner, "c1", 1500)
	f.apply(t, jordanOwner, "c2", 1500)
	ctx := context.Background()

	_, err := f.svc.SelectWinners(ctx, port.SelectWinnersInput{Caller: brandOwner, CampaignID: "camp1", Winners: []string{"c1", "ghost"}})
	if !errors.Is(err, domain.ErrWinnerNotApplicant) {
		t.Fatalf("expected ErrWinnerNotApplicant, got %v", err)
	}
	_, err = f.svc.SelectWinners(ctx, port.SelectWinnersInput{Caller: caseyOwner, CampaignID: "camp1", Winners: []string{"c1"}})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	c, err := f.svc.SelectWinners(ctx, port.SelectWinnersInput{Caller: brandOwner, CampaignID: "camp1", Winners: []string{"c1"}})
	require.NoError(t, err)
	if c.Status != domain.CampaignCompleted {
		t.Fatalf("expected completed, got %s", c.Status)
	}
	if !c.IsWinner("c1") || c.IsWinner("c2") {
		t.Fatalf("unexpected winners: %v", c.Winners)
	}

	// completed is terminal
	_, err = f.svc.UpdateCampaignStatus(ctx, port.UpdateStatusInput{Caller: brandOwner, CampaignID: "camp1", Status: domain.CampaignActive})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	_, err = f.svc.SelectWinners(ctx, port.SelectWinnersInput{Caller: brandOwner, CampaignID: "camp1", Winners: []string{"c2"}})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("re-selecting winners: expected ErrInvalidState, got %v", err)
	}
}

// TestPayBonus runs the full flow through a bonus payment and checks
// conservation: escrow plus everything receipted equals the budget.
func TestPayBonus(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	f.apply(t, caseyOwner, "c1", 1500)
	f.apply(t, jordanOwner, "c2", 1500)
	f.submitAndApprove(t, caseyOwner, "c1", "ct1")
	f.submitAndApprove(t, jordanOwner, "c2", "ct2")
	ctx := context.Background()

	for _, p := range []struct{ caller, id string }{{caseyOwner, "ct1"}, {jordanOwner, "ct2"}} {
		_, err := f.svc.PublishContent(ctx, port.PublishContentInput{Caller: p.caller, CampaignID: "camp1", ContentID: p.id, Timestamp: 2800})
		require.NoError(t, err)
	}
	_, err := f.svc.UpdateEngagement(ctx, port.UpdateEngagementInput{
		Caller: brandOwner, CampaignID: "camp1", ContentID: "ct1",
		Engagement: domain.Engagement{Likes: 2000, Views: 10000, Retweets: 500, Comments: 300, LinkClicks: 200},
		Timestamp:  4000,
	})
	require.NoError(t, err)
	_, err = f.svc.SelectWinners(ctx, port.SelectWinnersInput{Caller: brandOwner, CampaignID: "camp1", Winners: []string{"c1"}})
	require.NoError(t, err)

	// non-winner first
	_, err = f.svc.PayBonus(ctx, port.PayBonusInput{Caller: brandOwner, CampaignID: "camp1", ContentID: "ct2", Timestamp: 5000})
	if !errors.Is(err, domain.ErrNotAWinner) {
		t.Fatalf("expected ErrNotAWinner, got %v", err)
	}

	// 20*10 + 100*5 + 5*20 + 3*15 + 2*25 = 895
	receipt, err := f.svc.PayBonus(ctx, port.PayBonusInput{Caller: brandOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 5000})
	require.NoError(t, err)
	if receipt.Kind != domain.PaymentBonus || receipt.Amount != 895 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	_, err = f.svc.PayBonus(ctx, port.PayBonusInput{Caller: brandOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 5100})
	if !errors.Is(err, domain.ErrBonusAlreadyPaid) {
		t.Fatalf("expected ErrBonusAlreadyPaid, got %v", err)
	}

	c, err := f.svc.GetCampaign(ctx, "camp1")
	require.NoError(t, err)
	receipts, err := f.svc.ListReceipts(ctx, "camp1")
	require.NoError(t, err)
	var paid domain.Amount
	for _, r := range receipts {
		paid += r.Amount
	}
	if c.Escrow+paid != c.TotalBudget {
		t.Fatalf("conservation broken: escrow %d + receipts %d != budget %d", c.Escrow, paid, c.TotalBudget)
	}
	if c.Escrow != 10000-2*1000-895 {
		t.Fatalf("expected escrow %d, got %d", 10000-2*1000-895, c.Escrow)
	}
}

// TestPayBonusZeroEngagement ensures a zero bonus is a no-op: no
// receipt, no debit, and the content stays eligible.
func TestPayBonusZeroEngagement(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	f.apply(t, caseyOwner, "c1", 1500)
	f.submitAndApprove(t, caseyOwner, "c1", "ct1")
	ctx := context.Background()

	_, err := f.svc.PublishContent(ctx, port.PublishContentInput{Caller: caseyOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 2800})
	require.NoError(t, err)
	_, err = f.svc.SelectWinners(ctx, port.SelectWinnersInput{Caller: brandOwner, CampaignID: "camp1", Winners: []string{"c1"}})
	require.NoError(t, err)

	receipt, err := f.svc.PayBonus(ctx, port.PayBonusInput{Caller: brandOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 5000})
	require.NoError(t, err)
	if receipt != nil {
		t.Fatalf("zero bonus must mint no receipt, got %+v", receipt)
	}

	c, err := f.svc.GetCampaign(ctx, "camp1")
	require.NoError(t, err)
	if c.Escrow != 9000 {
		t.Fatalf("zero bonus changed escrow to %d", c.Escrow)
	}
	receipts, err := f.svc.ListReceipts(ctx, "camp1")
	require.NoError(t, err)
	if len(receipts) != 1 {
		t.Fatalf("expected only the base receipt, got %d", len(receipts))
	}
}

// TestStatusPauseResume exercises the Active<->Paused cycle through the
// service.
func TestStatusPauseResume(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	ctx := context.Background()

	c, err := f.svc.UpdateCampaignStatus(ctx, port.UpdateStatusInput{Caller: brandOwner, CampaignID: "camp1", Status: domain.CampaignPaused})
	require.NoError(t, err)
	if c.Status != domain.CampaignPaused {
		t.Fatalf("expected paused, got %s", c.Status)
	}

	// paused campaigns take no applications
	_, err = f.svc.Apply(ctx, port.ApplyInput{Caller: caseyOwner, CampaignID: "camp1", CreatorID: "c1", Timestamp: 1500})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	c, err = f.svc.UpdateCampaignStatus(ctx, port.UpdateStatusInput{Caller: brandOwner, CampaignID: "camp1", Status: domain.CampaignActive})
	require.NoError(t, err)
	if c.Status != domain.CampaignActive {
		t.Fatalf("expected active, got %s", c.Status)
	}
}

// TestDefaultSinkDiscards ensures a service without an attached sink
// discards events and operations run unaffected, and that passing nil
// to SetSink restores that default.
func TestDefaultSinkDiscards(t *testing.T) {
	store := memory.NewStore()
	svc := NewEscrowService(store, store)
	ctx := context.Background()
	require.NoError(t, store.CreateBrand(ctx, &domain.BrandAccount{ID: "b1", Owner: brandOwner, Balance: 50000}))

	c, err := svc.CreateCampaign(ctx, campaignInput())
	require.NoError(t, err)
	if c.Escrow != 10000 {
		t.Fatalf("expected escrow 10000, got %d", c.Escrow)
	}

	svc.SetSink(nil)
	_, err = svc.UpdateCampaignStatus(ctx, port.UpdateStatusInput{Caller: brandOwner, CampaignID: "camp1", Status: domain.CampaignPaused})
	require.NoError(t, err)
}

// TestEventEmission checks the sink sees the lifecycle events in order.
func TestEventEmission(t *testing.T) {
	f := newFixture(t)
	f.createCampaign(t)
	f.apply(t, caseyOwner, "c1", 1500)
	f.submitAndApprove(t, caseyOwner, "c1", "ct1")
	_, err := f.svc.PublishContent(context.Background(), port.PublishContentInput{Caller: caseyOwner, CampaignID: "camp1", ContentID: "ct1", Timestamp: 2800})
	require.NoError(t, err)

	want := []string{
		port.EventCampaignCreated,
		port.EventApplicationFiled,
		port.EventContentSubmitted,
		port.EventContentReviewed,
		port.EventContentPublished,
		port.EventPaymentProcessed,
	}
	got := f.sink.Events()
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, evt := range got {
		if evt.Type != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], evt.Type)
		}
	}
}
