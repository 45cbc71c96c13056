package core

// Sink is the push-only transport carrying stream events to the caller of
// one orchestration run.
//
// Implementations must tolerate consumer disconnects: once the consumer is
// gone every further Send and Heartbeat is a no-op. The orchestrator never
// inspects Send errors for control flow; terminal state is decided by the
// run itself, not by transport health.
type Sink interface {
	// Send pushes one event frame.
	Send(ev StreamEvent) error

	// Heartbeat pushes a no-op frame that keeps the underlying transport
	// from being considered idle while an agent call is in flight.
	Heartbeat() error
}
