// Package stream implements the push-only transports carrying orchestration
// events to callers: an SSE sink for HTTP consumers and a channel sink for
// programmatic ones.
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/hupe1980/agentcouncil/core"
)

// SSESink writes framed JSON events to an HTTP response as Server-Sent
// Events. After Close (or a failed write) every further Send and Heartbeat
// is a no-op; a disconnected consumer must never surface as a failure to
// the run pushing events.
type SSESink struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

// NewSSESink prepares w for event streaming and commits the SSE headers.
// It fails when the underlying writer cannot flush incrementally.
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSESink{w: w, flusher: flusher}, nil
}

// Send implements core.Sink. The first failed write marks the sink closed;
// the error is reported once and every later call is a silent no-op.
func (s *SSESink) Send(ev core.StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal stream event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		s.closed = true
		return fmt.Errorf("stream write failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// Heartbeat implements core.Sink with an SSE comment frame, which keeps the
// connection alive without reaching event consumers.
func (s *SSESink) Heartbeat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if _, err := fmt.Fprint(s.w, ": heartbeat\n\n"); err != nil {
		s.closed = true
		return fmt.Errorf("heartbeat write failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// Close marks the sink closed. The request handler must call it before
// returning: it guarantees no goroutine touches the response writer after
// the handler exits, since Send holds the same mutex.
func (s *SSESink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
