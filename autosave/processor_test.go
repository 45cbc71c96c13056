package autosave

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/store"
)

func TestProcessor_DecisionAndBug(t *testing.T) {
	gateway := store.NewInMemoryStore()
	p := NewProcessor(gateway, nil)

	saved := p.Process(context.Background(), nil,
		"what should we do about auth?",
		"Decision: move auth into middleware\nThis also fixed the redirect loop bug.")

	require.Len(t, saved, 2)
	assert.Equal(t, core.RecordDecision, saved[0].Kind)
	assert.Equal(t, "move auth into middleware", saved[0].Title)
	assert.Equal(t, core.RecordBug, saved[1].Kind)
	assert.NotEmpty(t, saved[1].ID)
}

func TestProcessor_TechMultipleRecords(t *testing.T) {
	gateway := store.NewInMemoryStore()
	p := NewProcessor(gateway, nil)

	saved := p.Process(context.Background(), nil,
		"compare caches for me",
		"Both redis and memcached would work here.")

	require.Len(t, saved, 2)
	assert.Equal(t, core.RecordTechItem, saved[0].Kind)
	assert.Equal(t, "memcached", saved[0].Title)
	assert.Equal(t, "redis", saved[1].Title)
}

func TestProcessor_ReviewFeedbackSavedAsRule(t *testing.T) {
	gateway := store.NewInMemoryStore()
	p := NewProcessor(gateway, nil)

	saved := p.Process(context.Background(), nil,
		"review this function",
		"Suggestion: inline the single-use helper")

	require.Len(t, saved, 1)
	assert.Equal(t, core.RecordRule, saved[0].Kind)
	assert.Equal(t, "inline the single-use helper", saved[0].Title)
}

func TestProcessor_NoMatches(t *testing.T) {
	gateway := store.NewInMemoryStore()
	p := NewProcessor(gateway, nil)

	saved := p.Process(context.Background(), nil, "hi", "Hello! How can I help?")
	assert.Empty(t, saved)
	assert.Empty(t, gateway.Records())
}

// failingDecisions injects a persistence failure for one record kind.
type failingDecisions struct {
	*store.InMemoryStore
}

func (f *failingDecisions) SaveDecision(context.Context, core.DecisionInput) (*core.SavedRecord, error) {
	return nil, errors.New("db unavailable")
}

// A failed record is skipped; the remaining kinds still persist.
func TestProcessor_PersistenceFailureSkipsRecord(t *testing.T) {
	gateway := &failingDecisions{store.NewInMemoryStore()}
	p := NewProcessor(gateway, nil)

	saved := p.Process(context.Background(), nil,
		"what did we settle on?",
		"Decision: use sqlite for tests. Rule: always seed fixtures.")

	require.Len(t, saved, 2)
	assert.Equal(t, core.RecordRule, saved[0].Kind)
	assert.Equal(t, core.RecordTechItem, saved[1].Kind)
	assert.Equal(t, "sqlite", saved[1].Title)
}
