package core

import (
	"fmt"
	"time"
)

// Mode selects which agent stages execute within one orchestration run.
type Mode string

const (
	// ModeSolo runs the architect only.
	ModeSolo Mode = "solo"
	// ModeDuo runs architect, reviewer, then an architect summary stage.
	ModeDuo Mode = "duo"
	// ModeTeam runs architect, reviewer, critic, then an architect final stage.
	ModeTeam Mode = "team"
)

// ParseMode validates a wire-level mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSolo, ModeDuo, ModeTeam:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want solo, duo or team)", s)
	}
}

// Senders reports the agent identifiers that may author messages in this
// mode, in stage order. The user sender is implicit in every mode.
func (m Mode) Senders() []string {
	switch m {
	case ModeDuo:
		return []string{SenderArchitect, SenderReviewer, SenderArchitect}
	case ModeTeam:
		return []string{SenderArchitect, SenderReviewer, SenderCritic, SenderArchitect}
	default:
		return []string{SenderArchitect}
	}
}

// Message sender identifiers. SenderUser marks user turns; the rest are the
// fixed agent roles of the council.
const (
	SenderUser      = "user"
	SenderArchitect = "architect"
	SenderReviewer  = "reviewer"
	SenderCritic    = "critic"
)

// Conversation groups an ordered message history under a mode. It is created
// on the first user turn when the caller supplies no id and its UpdatedAt is
// bumped on every appended message.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Mode      Mode      `json:"mode"`
	ProjectID *string   `json:"project_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is a single immutable turn within a conversation. Messages are
// strictly ordered by CreatedAt within their conversation.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Preference is a user preference upserted by key; the key acts as the
// record identity across categories.
type Preference struct {
	Category  string    `json:"category"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
