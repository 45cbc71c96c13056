package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/model"
)

func TestClient_CallBuildsRequest(t *testing.T) {
	m := model.NewMockModel("test", "mock")
	c := NewClient(core.SenderArchitect, architectPrompt, m, nil)

	aictx := &core.AIContext{
		History: []core.ChatMessage{
			{Sender: core.SenderUser, Content: "first question"},
			{Sender: core.SenderArchitect, Content: "first answer"},
			{Sender: core.SenderReviewer, Content: "a remark"},
		},
		Preferences: []core.Preference{{Category: "general", Key: "likes", Value: "short answers"}},
	}

	reply, err := c.Call(context.Background(), "second question", aictx)
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Text)
	require.NotNil(t, reply.Usage)
	assert.Equal(t, 30, reply.Usage.TotalTokens)

	calls := m.Calls()
	require.Len(t, calls, 1)
	req := calls[0]

	assert.Contains(t, req.Instructions, "architect of a development council")
	assert.Contains(t, req.Instructions, "short answers")

	require.Len(t, req.Messages, 4)
	assert.Equal(t, model.Message{Role: "user", Text: "first question"}, req.Messages[0])
	// Own turns map to plain assistant; other agents keep their attribution.
	assert.Equal(t, model.Message{Role: "assistant", Text: "first answer"}, req.Messages[1])
	assert.Equal(t, model.Message{Role: "assistant", Text: "[reviewer] a remark"}, req.Messages[2])
	assert.Equal(t, model.Message{Role: "user", Text: "second question"}, req.Messages[3])
}

func TestClient_CallNilContext(t *testing.T) {
	m := model.NewMockModel("test", "mock")
	c := NewClient(core.SenderArchitect, architectPrompt, m, nil)

	_, err := c.Call(context.Background(), "hello", nil)
	require.NoError(t, err)

	req := m.Calls()[0]
	require.Len(t, req.Messages, 1)
	assert.Equal(t, architectPrompt, req.Instructions)
}

func TestClient_ReviewWrapsDraft(t *testing.T) {
	m := model.NewMockModel("test", "mock")
	c := NewClient(core.SenderReviewer, reviewerPrompt, m, nil)

	_, err := c.Review(context.Background(), "user question", "the draft", nil)
	require.NoError(t, err)

	last := m.Calls()[0].Messages[0].Text
	assert.Contains(t, last, "user question")
	assert.Contains(t, last, "the draft")
	assert.Contains(t, last, "Review the draft.")
}

func TestClient_RefineIncludesFeedback(t *testing.T) {
	m := model.NewMockModel("test", "mock")
	c := NewClient(core.SenderArchitect, architectPrompt, m, nil)

	_, err := c.Refine(context.Background(), "user question", "the draft", []Feedback{
		{From: core.SenderReviewer, Text: "tighten the loop"},
		{From: core.SenderCritic, Text: "too complex"},
	}, nil)
	require.NoError(t, err)

	last := m.Calls()[0].Messages[0].Text
	assert.Contains(t, last, "Feedback from reviewer:\ntighten the loop")
	assert.Contains(t, last, "Feedback from critic:\ntoo complex")
	assert.Contains(t, last, "produce the final answer")
}

func TestClient_ErrorWrapsAgentName(t *testing.T) {
	m := model.NewMockModel("test", "mock")
	m.FailWith(errors.New("provider down"))
	c := NewClient(core.SenderCritic, criticPrompt, m, nil)

	_, err := c.Call(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent critic call failed")
}

func TestRegistry_SingletonClients(t *testing.T) {
	calls := 0
	r := NewRegistry(func(o *RegistryOptions) {
		o.ArchitectModel = func() model.Model {
			calls++
			return model.NewMockModel("a", "mock")
		}
	})

	first := r.Architect()
	second := r.Architect()
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, core.SenderArchitect, first.Name())
}
