package agentcouncil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/agent"
	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/model"
	"github.com/hupe1980/agentcouncil/orchestrator"
)

func newTestCouncil() *AgentCouncil {
	return New(func(o *Options) {
		o.Registry = agent.NewRegistry(func(ro *agent.RegistryOptions) {
			ro.ArchitectModel = func() model.Model { return model.NewMockModel("a", "mock") }
			ro.ReviewerModel = func() model.Model { return model.NewMockModel("r", "mock") }
			ro.CriticModel = func() model.Model { return model.NewMockModel("c", "mock") }
		})
	})
}

func TestRunSync_Solo(t *testing.T) {
	council := newTestCouncil()
	ctx := context.Background()

	conv, err := council.Store().CreateConversation(ctx, "demo", core.ModeSolo, nil)
	require.NoError(t, err)

	events, err := council.RunSync(ctx, orchestrator.RunInput{
		ConversationID: conv.ID,
		Message:        "hello there",
		Mode:           core.ModeSolo,
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, core.EventTyping, events[0].Type)
	assert.Equal(t, core.EventMessage, events[1].Type)
	assert.Equal(t, core.EventDone, events[2].Type)
}

func TestRun_StreamsAsynchronously(t *testing.T) {
	council := newTestCouncil()
	ctx := context.Background()

	conv, err := council.Store().CreateConversation(ctx, "demo", core.ModeDuo, nil)
	require.NoError(t, err)

	var events []core.StreamEvent
	for ev := range council.Run(ctx, orchestrator.RunInput{
		ConversationID: conv.ID,
		Message:        "hello there",
		Mode:           core.ModeDuo,
	}) {
		events = append(events, ev)
	}

	require.NotEmpty(t, events)
	assert.Equal(t, core.EventDone, events[len(events)-1].Type)

	var senders []string
	for _, ev := range events {
		if ev.Type == core.EventMessage {
			senders = append(senders, ev.Sender)
		}
	}
	assert.Equal(t, []string{core.SenderArchitect, core.SenderReviewer, core.SenderArchitect}, senders)
}
