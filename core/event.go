package core

// EventType discriminates stream event frames.
type EventType string

const (
	// EventConversationID announces the conversation backing this run.
	// Emitted exactly once, before any other frame.
	EventConversationID EventType = "conversation_id"
	// EventTyping signals that an agent started working on its stage.
	EventTyping EventType = "typing"
	// EventMessage carries a completed agent contribution.
	EventMessage EventType = "message"
	// EventDone terminates the stream successfully.
	EventDone EventType = "done"
	// EventError terminates the stream after a fatal failure.
	EventError EventType = "error"
)

// TokenTotals aggregates token usage across all stages of a run.
type TokenTotals struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// DoneMetadata is attached to the terminal done event.
type DoneMetadata struct {
	Usage        *TokenTotals  `json:"usage,omitempty"`
	SavedRecords []SavedRecord `json:"saved_records,omitempty"`
}

// StreamEvent is one framed JSON event pushed to the caller. Exactly one of
// the optional payload fields is populated depending on Type.
type StreamEvent struct {
	Type     EventType     `json:"type"`
	ID       string        `json:"id,omitempty"`
	Sender   string        `json:"sender,omitempty"`
	Content  string        `json:"content,omitempty"`
	Metadata *DoneMetadata `json:"metadata,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Terminal reports whether the event ends the stream. No frame may follow a
// terminal event.
func (e StreamEvent) Terminal() bool {
	return e.Type == EventDone || e.Type == EventError
}

// NewConversationIDEvent builds the opening frame of a run.
func NewConversationIDEvent(conversationID string) StreamEvent {
	return StreamEvent{Type: EventConversationID, ID: conversationID}
}

// NewTypingEvent builds a typing indicator for the given agent.
func NewTypingEvent(sender string) StreamEvent {
	return StreamEvent{Type: EventTyping, Sender: sender}
}

// NewMessageEvent builds a completed contribution frame.
func NewMessageEvent(sender, content string) StreamEvent {
	return StreamEvent{Type: EventMessage, Sender: sender, Content: content}
}

// NewDoneEvent builds the successful terminal frame. Metadata may be nil.
func NewDoneEvent(md *DoneMetadata) StreamEvent {
	return StreamEvent{Type: EventDone, Metadata: md}
}

// NewErrorEvent builds the failure terminal frame.
func NewErrorEvent(msg string) StreamEvent {
	return StreamEvent{Type: EventError, Error: msg}
}
