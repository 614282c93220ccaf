package domain

import "time"

// Application is a creator's request to participate in a campaign. At
// most one exists per (campaign, creator) pair. Applications are
// auto-accepted on creation; there is no separate review step, unlike
// content.
type Application struct {
	CampaignID   string
	CreatorID    string
	CreatorOwner string
	Accepted     bool
	ContentPlan  string
	SubmittedAt  int64
	RespondedAt  *int64
	CreatedAt    time.Time
}

// NewApplication creates an auto-accepted application, after checking
// the campaign is Active and ts lies in the application window.
func NewApplication(c *Campaign, creatorID, creatorOwner, contentPlan string, ts int64, now time.Time) (*Application, error) {
	if creatorID == "" || creatorOwner == "" {
		return nil, ErrInvalidInput
	}
	if c.Status != CampaignActive {
		return nil, ErrInvalidState
	}
	if !c.Schedule.InApplicationWindow(ts) {
		return nil, ErrOutsideWindow
	}
	return &Application{
		CampaignID:   c.ID,
		CreatorID:    creatorID,
		CreatorOwner: creatorOwner,
		Accepted:     true,
		ContentPlan:  contentPlan,
		SubmittedAt:  ts,
		CreatedAt:    now,
	}, nil
}
