package domain

import (
	"errors"
	"testing"
	"time"
)

func testCampaign(t *testing.T) *Campaign {
	t.Helper()
	c, err := NewCampaign("camp1", "b1", "0xbrand", "tech", validSchedule(), 1000, 10000, CPMRates{}, 2, time.UnixMilli(0))
	if err != nil {
		t.Fatalf("NewCampaign error: %v", err)
	}
	return c
}

// TestContentLifecycle walks pending -> accepted -> published and
// verifies each transition rejects out-of-order calls.
func TestContentLifecycle(t *testing.T) {
	c := testCampaign(t)
	ct, err := NewContent(c, "ct1", "c1", "0xcasey", "https://example.com/post/1", 2500, time.UnixMilli(0))
	if err != nil {
		t.Fatalf("NewContent error: %v", err)
	}
	if ct.Status != ContentPending {
		t.Fatalf("expected pending, got %s", ct.Status)
	}

	if err = ct.Publish(2600); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("publish before review: expected ErrInvalidState, got %v", err)
	}
	if err = ct.SetEngagement(Engagement{Likes: 1}, 2600); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("engagement before publish: expected ErrInvalidState, got %v", err)
	}

	if err = ct.Review(true, "looks good", 2600); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if ct.Status != ContentAccepted {
		t.Fatalf("expected accepted, got %s", ct.Status)
	}
	if err = ct.Review(true, "again", 2700); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double review: expected ErrInvalidState, got %v", err)
	}

	if err = ct.Publish(2800); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if ct.Status != ContentPublished || ct.PublishedAt == nil || *ct.PublishedAt != 2800 {
		t.Fatalf("unexpected published state: %+v", ct)
	}
	if err = ct.Publish(2900); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double publish: expected ErrInvalidState, got %v", err)
	}

	if err = ct.SetEngagement(Engagement{Likes: 150, Views: 900}, 3000); err != nil {
		t.Fatalf("SetEngagement error: %v", err)
	}
	// last write wins
	if err = ct.SetEngagement(Engagement{Likes: 200}, 3100); err != nil {
		t.Fatalf("second SetEngagement error: %v", err)
	}
	if ct.Engagement.Likes != 200 || ct.Engagement.Views != 0 {
		t.Fatalf("expected overwrite, got %+v", ct.Engagement)
	}
}

// TestContentRejection ensures rejection is terminal for the content id.
func TestContentRejection(t *testing.T) {
	c := testCampaign(t)
	ct, err := NewContent(c, "ct1", "c1", "0xcasey", "https://example.com/post/1", 2500, time.UnixMilli(0))
	if err != nil {
		t.Fatalf("NewContent error: %v", err)
	}
	if err = ct.Review(false, "off brief", 2600); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if ct.Status != ContentRejected {
		t.Fatalf("expected rejected, got %s", ct.Status)
	}
	if err = ct.Publish(2700); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("publish after reject: expected ErrInvalidState, got %v", err)
	}
}

// TestNewContentInactiveCampaign ensures submission requires an active
// campaign.
func TestNewContentInactiveCampaign(t *testing.T) {
	c := testCampaign(t)
	c.Status = CampaignPaused
	if _, err := NewContent(c, "ct1", "c1", "0xcasey", "https://example.com/post/1", 2500, time.UnixMilli(0)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
