// Package store provides a volatile implementation of the persistence
// gateway storing everything in process-local maps. It is safe for
// concurrent access and best suited for tests or ephemeral demo servers; a
// durable pgx-backed implementation lives in the postgres subpackage.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/internal/util"
)

// InMemoryStore implements core.Store on process-local maps. Returned
// entities are copies to prevent external mutation of internal state.
type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*core.Conversation
	messages      map[string][]core.ChatMessage
	preferences   map[string]*core.Preference
	records       map[string]core.SavedRecord
}

// NewInMemoryStore constructs an empty in-memory gateway.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		conversations: make(map[string]*core.Conversation),
		messages:      make(map[string][]core.ChatMessage),
		preferences:   make(map[string]*core.Preference),
		records:       make(map[string]core.SavedRecord),
	}
}

// CreateConversation implements core.Store.
func (s *InMemoryStore) CreateConversation(_ context.Context, title string, mode core.Mode, projectID *string) (*core.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	conv := &core.Conversation{
		ID:        util.NewID(),
		Title:     title,
		Mode:      mode,
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations[conv.ID] = conv

	clone := *conv
	return &clone, nil
}

// SaveMessage implements core.Store. Appending bumps the conversation's
// UpdatedAt; messages are never mutated after this point.
func (s *InMemoryStore) SaveMessage(_ context.Context, conversationID, sender, content string) (*core.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, core.ErrNotFound
	}

	msg := core.ChatMessage{
		ID:             util.NewID(),
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], msg)
	conv.UpdatedAt = msg.CreatedAt

	return &msg, nil
}

// GetHistory implements core.Store, returning the most recent messages in
// chronological order.
func (s *InMemoryStore) GetHistory(_ context.Context, conversationID string, limit int) ([]core.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]core.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// GetPreferences implements core.Store.
func (s *InMemoryStore) GetPreferences(_ context.Context) ([]core.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Preference, 0, len(s.preferences))
	for _, p := range s.preferences {
		out = append(out, *p)
	}
	return out, nil
}

// UpsertPreference implements core.Store. The key is the record identity:
// an existing key has its category and value overwritten.
func (s *InMemoryStore) UpsertPreference(_ context.Context, category, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if p, ok := s.preferences[key]; ok {
		p.Category = category
		p.Value = value
		p.UpdatedAt = now
		return nil
	}
	s.preferences[key] = &core.Preference{
		Category:  category,
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// DeletePreference implements core.Store.
func (s *InMemoryStore) DeletePreference(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.preferences[key]; !ok {
		return core.ErrNotFound
	}
	delete(s.preferences, key)
	return nil
}

// SaveDecision implements core.Store.
func (s *InMemoryStore) SaveDecision(_ context.Context, in core.DecisionInput) (*core.SavedRecord, error) {
	return s.saveRecord(core.RecordDecision, in.Title), nil
}

// SaveBug implements core.Store.
func (s *InMemoryStore) SaveBug(_ context.Context, in core.BugInput) (*core.SavedRecord, error) {
	return s.saveRecord(core.RecordBug, util.Truncate(in.Description, 120)), nil
}

// SaveRule implements core.Store.
func (s *InMemoryStore) SaveRule(_ context.Context, in core.RuleInput) (*core.SavedRecord, error) {
	return s.saveRecord(core.RecordRule, in.Title), nil
}

// SaveTechItem implements core.Store.
func (s *InMemoryStore) SaveTechItem(_ context.Context, in core.TechItemInput) (*core.SavedRecord, error) {
	return s.saveRecord(core.RecordTechItem, in.Name), nil
}

// SavePrompt implements core.Store.
func (s *InMemoryStore) SavePrompt(_ context.Context, in core.PromptInput) (*core.SavedRecord, error) {
	return s.saveRecord(core.RecordPrompt, in.Title), nil
}

// Records returns all saved record references, for inspection in tests.
func (s *InMemoryStore) Records() []core.SavedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.SavedRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

func (s *InMemoryStore) saveRecord(kind core.RecordKind, title string) *core.SavedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := core.SavedRecord{Kind: kind, ID: util.NewID(), Title: title}
	s.records[rec.ID] = rec
	return &rec
}
