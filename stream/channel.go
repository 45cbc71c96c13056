package stream

import (
	"sync"

	"github.com/hupe1980/agentcouncil/core"
)

// ChannelSink delivers events over a buffered channel for programmatic
// consumers. A full buffer drops the frame rather than blocking the run,
// mirroring the swallow semantics of a disconnected SSE consumer.
type ChannelSink struct {
	mu         sync.Mutex
	ch         chan core.StreamEvent
	closed     bool
	heartbeats int
}

// NewChannelSink constructs a sink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan core.StreamEvent, buffer)}
}

// Events returns the receive side of the sink. The channel is closed by
// Close.
func (s *ChannelSink) Events() <-chan core.StreamEvent { return s.ch }

// Send implements core.Sink.
func (s *ChannelSink) Send(ev core.StreamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	select {
	case s.ch <- ev:
	default:
	}
	return nil
}

// Heartbeat implements core.Sink; heartbeats are counted, not delivered.
func (s *ChannelSink) Heartbeat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeats++
	return nil
}

// Heartbeats reports how many heartbeat frames were pushed.
func (s *ChannelSink) Heartbeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heartbeats
}

// Close stops delivery and closes the events channel. Safe to call once.
func (s *ChannelSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
