package domain

import "time"

// ContentStatus enumerates the content review states.
type ContentStatus string

const (
	ContentPending   ContentStatus = "pending"
	ContentAccepted  ContentStatus = "accepted"
	ContentRejected  ContentStatus = "rejected"
	ContentPublished ContentStatus = "published"
)

// Valid reports whether s is one of the known statuses.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentPending, ContentAccepted, ContentRejected, ContentPublished:
		return true
	}
	return false
}

// Engagement holds the five metric counters for a published piece of
// content. Updates overwrite the whole set (last write wins).
type Engagement struct {
	Likes      uint64 `json:"likes"`
	Views      uint64 `json:"views"`
	Retweets   uint64 `json:"retweets"`
	Comments   uint64 `json:"comments"`
	LinkClicks uint64 `json:"link_clicks"`
}

// Content is a creator's deliverable for a campaign. The status machine
// is Pending -> {Accepted, Rejected} and Accepted -> Published; the
// Accepted->Published transition is the base-payment trigger. Rejection
// is terminal for this content id but does not block resubmission under
// a new id.
type Content struct {
	ID           string
	CampaignID   string
	CreatorID    string
	CreatorOwner string
	Link         string
	Status       ContentStatus
	Engagement   Engagement
	ReviewNotes  string
	BonusPaid    bool
	SubmittedAt  int64
	ReviewedAt   *int64
	PublishedAt  *int64
	MetricsSetAt *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewContent creates pending content with zeroed counters. The caller
// must already hold an accepted application on the campaign.
func NewContent(c *Campaign, id, creatorID, creatorOwner, link string, ts int64, now time.Time) (*Content, error) {
	if id == "" || creatorID == "" || creatorOwner == "" || link == "" {
		return nil, ErrInvalidInput
	}
	if c.Status != CampaignActive {
		return nil, ErrInvalidState
	}
	return &Content{
		ID:           id,
		CampaignID:   c.ID,
		CreatorID:    creatorID,
		CreatorOwner: creatorOwner,
		Link:         link,
		Status:       ContentPending,
		SubmittedAt:  ts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Review moves pending content to Accepted or Rejected and records the
// reviewer's notes.
func (c *Content) Review(approve bool, notes string, ts int64) error {
	if c.Status != ContentPending {
		return ErrInvalidState
	}
	if approve {
		c.Status = ContentAccepted
	} else {
		c.Status = ContentRejected
	}
	c.ReviewNotes = notes
	c.ReviewedAt = &ts
	return nil
}

// Publish moves accepted content to Published. The caller pays the base
// amount in the same atomic step; a failed payment must roll the
// transition back.
func (c *Content) Publish(ts int64) error {
	if c.Status != ContentAccepted {
		return ErrInvalidState
	}
	c.Status = ContentPublished
	c.PublishedAt = &ts
	return nil
}

// SetEngagement overwrites the metric counters. Only published content
// accrues engagement.
func (c *Content) SetEngagement(m Engagement, ts int64) error {
	if c.Status != ContentPublished {
		return ErrInvalidState
	}
	c.Engagement = m
	c.MetricsSetAt = &ts
	return nil
}
