package model

import (
	"context"
	"fmt"
)

// Message is one turn of the normalized provider input. Role is "user" or
// "assistant"; system instructions travel separately on the Request.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Request captures a single normalized model exchange: system instructions
// plus the ordered message history ending with the turn to answer.
type Request struct {
	Instructions string    `json:"instructions"`
	Messages     []Message `json:"messages"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed provider answer. Usage is nil when the provider
// reports nothing.
type Response struct {
	Text  string      `json:"text"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface an agent client needs: one request, one
// response. Each exchange is independent; there is no tool-calling, planning
// or retry layer here, provider failures surface as errors.
type Model interface {
	Exchange(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
	calls     []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input text.
// The text is matched against the last message of the request.
func (m *MockModel) AddResponse(input, response string) { m.responses[input] = response }

// FailWith makes every subsequent Exchange return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Calls returns the requests received so far, in order.
func (m *MockModel) Calls() []Request { return m.calls }

// Exchange implements Model; returns the canned response for the last
// message text or a generic echo.
func (m *MockModel) Exchange(_ context.Context, req Request) (*Response, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	input := req.Messages[len(req.Messages)-1].Text
	full := m.responses[input]
	if full == "" {
		full = fmt.Sprintf("Mock response to: %s", input)
	}
	return &Response{
		Text:  full,
		Usage: &TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
