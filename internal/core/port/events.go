package port

// Event is the structured notification emitted after every successful
// state transition. It is a fire-and-forget side channel for indexers
// and UIs; sink failures never affect the core transition.
type Event struct {
	Type       string `json:"type"`
	CampaignID string `json:"campaign_id"`
	BrandID    string `json:"brand_id,omitempty"`
	CreatorID  string `json:"creator_id,omitempty"`
	ContentID  string `json:"content_id,omitempty"`
	Amount     uint64 `json:"amount,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// Event types emitted by the engine.
const (
	EventCampaignCreated   = "campaign.created"
	EventCampaignStatus    = "campaign.status_changed"
	EventWinnersSelected   = "campaign.winners_selected"
	EventApplicationFiled  = "application.submitted"
	EventContentSubmitted  = "content.submitted"
	EventContentReviewed   = "content.reviewed"
	EventContentPublished  = "content.published"
	EventEngagementUpdated = "content.engagement_updated"
	EventPaymentProcessed  = "payment.processed"
)

// EventSink receives engine events. Implementations must not block the
// caller on delivery.
type EventSink interface {
	Emit(evt Event)
}
