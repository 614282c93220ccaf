package usecase

import (
	"time"

	"collabpay/internal/adapter/events"
	"collabpay/internal/core/port"
)

// EscrowService implements port.EscrowEngine on top of a campaign
// repository and an account directory. All money movement happens
// inside the repository's atomic operations; this layer owns
// authorization, window checks and event emission.
type EscrowService struct {
	repo      port.CampaignRepository
	directory port.AccountDirectory
	sink      port.EventSink
	nowFn     func() time.Time
}

// NewEscrowService creates a service with a discarding event sink. Use
// SetSink to attach a real one.
func NewEscrowService(repo port.CampaignRepository, directory port.AccountDirectory) *EscrowService {
	return &EscrowService{
		repo:      repo,
		directory: directory,
		sink:      events.NoopSink{},
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// SetSink attaches the notification sink. Passing nil restores the
// discarding default.
func (s *EscrowService) SetSink(sink port.EventSink) {
	if sink == nil {
		s.sink = events.NoopSink{}
		return
	}
	s.sink = sink
}

// SetNowFunc overrides the wall clock, primarily so tests get
// deterministic record timestamps.
func (s *EscrowService) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.nowFn = func() time.Time { return time.Now().UTC() }
		return
	}
	s.nowFn = now
}

func (s *EscrowService) emit(evt port.Event) {
	s.sink.Emit(evt)
}
