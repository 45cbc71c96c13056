package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by gateway lookups and deletes that miss. Callers
// are expected to treat it as a normal outcome, not a failure.
var ErrNotFound = errors.New("not found")

// Store is the persistence gateway consumed by the orchestrator. The storage
// backend itself is external to this module; implementations must be safe
// for concurrent use by independent runs.
//
// Record savers (SaveDecision and friends) return an error on failure; the
// orchestration layer logs and skips such failures instead of aborting.
type Store interface {
	// CreateConversation creates a conversation with the given title and mode.
	CreateConversation(ctx context.Context, title string, mode Mode, projectID *string) (*Conversation, error)

	// SaveMessage appends a message to a conversation and bumps its
	// UpdatedAt. Returns ErrNotFound for an unknown conversation.
	SaveMessage(ctx context.Context, conversationID, sender, content string) (*ChatMessage, error)

	// GetHistory returns up to limit most recent messages of a conversation
	// in chronological order. An unknown conversation yields an empty slice.
	GetHistory(ctx context.Context, conversationID string, limit int) ([]ChatMessage, error)

	// GetPreferences returns the full preference set.
	GetPreferences(ctx context.Context) ([]Preference, error)

	// UpsertPreference stores a preference by key, overwriting category and
	// value when the key already exists.
	UpsertPreference(ctx context.Context, category, key, value string) error

	// DeletePreference removes a preference by exact key match, returning
	// ErrNotFound when the key does not exist.
	DeletePreference(ctx context.Context, key string) error

	SaveDecision(ctx context.Context, in DecisionInput) (*SavedRecord, error)
	SaveBug(ctx context.Context, in BugInput) (*SavedRecord, error)
	SaveRule(ctx context.Context, in RuleInput) (*SavedRecord, error)
	SaveTechItem(ctx context.Context, in TechItemInput) (*SavedRecord, error)
	SavePrompt(ctx context.Context, in PromptInput) (*SavedRecord, error)
}
