// Package events holds notification sink adapters. The engine treats
// the sink as fire-and-forget: a sink must never fail or block the
// state transition that produced the event.
package events

import (
	"log/slog"
	"sync"

	"collabpay/internal/core/port"
)

// SlogSink writes every event as a structured log record. It is the
// default sink in the service binary; an off-process indexer can tail
// the log stream.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a sink writing through the given logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Emit(evt port.Event) {
	s.logger.Info("engine event",
		slog.String("type", evt.Type),
		slog.String("campaign_id", evt.CampaignID),
		slog.String("brand_id", evt.BrandID),
		slog.String("creator_id", evt.CreatorID),
		slog.String("content_id", evt.ContentID),
		slog.Uint64("amount", evt.Amount),
		slog.Int64("ts", evt.Timestamp),
	)
}

// MemorySink records events in order. Used by tests to assert emission.
type MemorySink struct {
	mu     sync.Mutex
	events []port.Event
}

// NewMemorySink returns an empty capture sink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Emit(evt port.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

// Events returns a copy of everything emitted so far.
func (s *MemorySink) Events() []port.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]port.Event(nil), s.events...)
}

// NoopSink discards events.
type NoopSink struct{}

func (NoopSink) Emit(port.Event) {}
