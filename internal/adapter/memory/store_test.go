package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"collabpay/internal/core/domain"
)

// TestConcurrentPublish races many base payments against a limited
// escrow and checks exactly floor(escrow/basePay) succeed with no
// double spending.
func TestConcurrentPublish(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.UnixMilli(0)

	if err := store.CreateBrand(ctx, &domain.BrandAccount{ID: "b1", Owner: "0xbrand", Balance: 100000}); err != nil {
		t.Fatalf("CreateBrand error: %v", err)
	}

	sched := domain.Schedule{ApplicationStart: 1000, ApplicationEnd: 2000, CampaignStart: 2000, CampaignEnd: 5000}
	c, err := domain.NewCampaign("camp1", "b1", "0xbrand", "tech", sched, 1000, 5500, domain.CPMRates{}, 2, now)
	if err != nil {
		t.Fatalf("NewCampaign error: %v", err)
	}
	if err = store.CreateCampaign(ctx, c); err != nil {
		t.Fatalf("CreateCampaign error: %v", err)
	}

	const workers = 8
	for i := 0; i < workers; i++ {
		creatorID := fmt.Sprintf("c%d", i)
		owner := fmt.Sprintf("0xcreator%d", i)
		if err = store.CreateCreator(ctx, &domain.CreatorAccount{ID: creatorID, Owner: owner}); err != nil {
			t.Fatalf("CreateCreator error: %v", err)
		}
		app, err := domain.NewApplication(c, creatorID, owner, "", 1500, now)
		if err != nil {
			t.Fatalf("NewApplication error: %v", err)
		}
		if err = store.CreateApplication(ctx, app); err != nil {
			t.Fatalf("CreateApplication error: %v", err)
		}
		ct, err := domain.NewContent(c, fmt.Sprintf("ct%d", i), creatorID, owner, "https://example.com/"+creatorID, 2500, now)
		if err != nil {
			t.Fatalf("NewContent error: %v", err)
		}
		if err = ct.Review(true, "", 2600); err != nil {
			t.Fatalf("Review error: %v", err)
		}
		if err = store.CreateContent(ctx, ct); err != nil {
			t.Fatalf("CreateContent error: %v", err)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		paid     int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			receipt := &domain.PaymentReceipt{
				ID: fmt.Sprintf("r%d", i), Kind: domain.PaymentBase, Amount: 1000,
				CampaignID: "camp1", ContentID: fmt.Sprintf("ct%d", i), CreatorID: fmt.Sprintf("c%d", i),
				PaidAt: 2800,
			}
			_, err := store.PublishContentAndPayBase(ctx, "camp1", fmt.Sprintf("ct%d", i), 2800, receipt)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				paid++
			case errors.Is(err, domain.ErrInsufficientEscrow):
				rejected++
			default:
				t.Errorf("worker %d: unexpected error %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	// 5500 escrow covers exactly five payments of 1000
	if paid != 5 || rejected != 3 {
		t.Fatalf("expected 5 paid / 3 rejected, got %d / %d", paid, rejected)
	}

	got, err := store.GetCampaign(ctx, "camp1")
	if err != nil {
		t.Fatalf("GetCampaign error: %v", err)
	}
	if got.Escrow != 500 {
		t.Fatalf("expected escrow 500, got %d", got.Escrow)
	}
	receipts, err := store.ListReceipts(ctx, "camp1")
	if err != nil {
		t.Fatalf("ListReceipts error: %v", err)
	}
	if len(receipts) != 5 {
		t.Fatalf("expected 5 receipts, got %d", len(receipts))
	}
}

// TestPayBonusIdempotence ensures a second bonus attempt on the same
// content fails and moves no money.
func TestPayBonusIdempotence(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.UnixMilli(0)

	if err := store.CreateBrand(ctx, &domain.BrandAccount{ID: "b1", Owner: "0xbrand", Balance: 100000}); err != nil {
		t.Fatalf("CreateBrand error: %v", err)
	}
	if err := store.CreateCreator(ctx, &domain.CreatorAccount{ID: "c1", Owner: "0xcasey"}); err != nil {
		t.Fatalf("CreateCreator error: %v", err)
	}

	sched := domain.Schedule{ApplicationStart: 1000, ApplicationEnd: 2000, CampaignStart: 2000, CampaignEnd: 5000}
	rates := domain.CPMRates{Views: 5}
	c, err := domain.NewCampaign("camp1", "b1", "0xbrand", "tech", sched, 1000, 10000, rates, 2, now)
	if err != nil {
		t.Fatalf("NewCampaign error: %v", err)
	}
	if err = store.CreateCampaign(ctx, c); err != nil {
		t.Fatalf("CreateCampaign error: %v", err)
	}
	app, err := domain.NewApplication(c, "c1", "0xcasey", "", 1500, now)
	if err != nil {
		t.Fatalf("NewApplication error: %v", err)
	}
	if err = store.CreateApplication(ctx, app); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	ct, err := domain.NewContent(c, "ct1", "c1", "0xcasey", "https://example.com/1", 2500, now)
	if err != nil {
		t.Fatalf("NewContent error: %v", err)
	}
	if err = ct.Review(true, "", 2600); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if err = ct.Publish(2800); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if err = ct.SetEngagement(domain.Engagement{Views: 2000}, 3000); err != nil {
		t.Fatalf("SetEngagement error: %v", err)
	}
	if err = store.CreateContent(ctx, ct); err != nil {
		t.Fatalf("CreateContent error: %v", err)
	}
	if _, err = store.CompleteWithWinners(ctx, "camp1", []string{"c1"}); err != nil {
		t.Fatalf("CompleteWithWinners error: %v", err)
	}

	receipt, err := store.PayBonus(ctx, "camp1", "ct1", 4000, "r1", "tx1")
	if err != nil {
		t.Fatalf("PayBonus error: %v", err)
	}
	if receipt.Amount != 100 {
		t.Fatalf("expected bonus 100, got %d", receipt.Amount)
	}

	if _, err = store.PayBonus(ctx, "camp1", "ct1", 4100, "r2", "tx2"); !errors.Is(err, domain.ErrBonusAlreadyPaid) {
		t.Fatalf("expected ErrBonusAlreadyPaid, got %v", err)
	}

	got, err := store.GetCampaign(ctx, "camp1")
	if err != nil {
		t.Fatalf("GetCampaign error: %v", err)
	}
	if got.Escrow != 9900 {
		t.Fatalf("expected escrow 9900, got %d", got.Escrow)
	}
}
