// Package agent implements the council role clients (architect, reviewer,
// critic) and the once-per-process registry that constructs them lazily.
//
// A client binds a role prompt to a model and renders the request-scoped
// context into the system prompt. Each Call is a single request/response
// exchange; there is no tool-calling or retry layer.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
	"github.com/hupe1980/agentcouncil/model"
)

// Reply is a completed agent contribution. Usage is nil when the provider
// reported nothing.
type Reply struct {
	Text  string
	Usage *model.TokenUsage
}

// Feedback is a prior agent output handed to the architect's refine stage.
type Feedback struct {
	From string
	Text string
}

// Client is one council member: a named role driving a model. Clients hold
// no per-run state and are safe for concurrent use by independent runs.
type Client struct {
	name       string
	rolePrompt string
	model      model.Model
	logger     logging.Logger
}

// NewClient binds a role prompt to a model under the given sender name.
func NewClient(name, rolePrompt string, m model.Model, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Client{name: name, rolePrompt: rolePrompt, model: m, logger: logger}
}

// Name returns the sender identifier this client authors messages as.
func (c *Client) Name() string { return c.name }

// Call performs one exchange: role prompt + rendered context as system
// instructions, conversation history, then the message to answer.
func (c *Client) Call(ctx context.Context, message string, aictx *core.AIContext) (*Reply, error) {
	req := model.Request{
		Instructions: c.rolePrompt + renderContext(aictx),
		Messages:     append(historyMessages(c.name, aictx), model.Message{Role: "user", Text: message}),
	}
	return c.exchange(ctx, req)
}

// Review asks this client to review a draft produced by another agent for
// the given user message.
func (c *Client) Review(ctx context.Context, userMessage, draft string, aictx *core.AIContext) (*Reply, error) {
	prompt := fmt.Sprintf("The user asked:\n%s\n\nThe architect's draft answer:\n%s\n\nReview the draft.", userMessage, draft)
	return c.Call(ctx, prompt, aictx)
}

// Refine re-invokes this client with its own draft plus the reviewers'
// feedback and asks for a single refined final answer. Used for the
// architect's summary (duo) and final (team) stages.
func (c *Client) Refine(ctx context.Context, userMessage, draft string, feedback []Feedback, aictx *core.AIContext) (*Reply, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "The user asked:\n%s\n\nYour draft answer:\n%s\n", userMessage, draft)
	for _, f := range feedback {
		fmt.Fprintf(&b, "\nFeedback from %s:\n%s\n", f.From, f.Text)
	}
	b.WriteString("\nIncorporate the useful feedback and produce the final answer. Reply with the answer only.")
	return c.Call(ctx, b.String(), aictx)
}

func (c *Client) exchange(ctx context.Context, req model.Request) (*Reply, error) {
	resp, err := c.model.Exchange(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("agent %s call failed: %w", c.name, err)
	}
	if resp.Usage != nil {
		c.logger.Debug("agent call completed",
			"agent", c.name,
			"model", c.model.Info().Name,
			"total_tokens", resp.Usage.TotalTokens)
	}
	return &Reply{Text: resp.Text, Usage: resp.Usage}, nil
}

// historyMessages maps persisted conversation turns to provider messages.
// User turns map to the user role; agent turns map to the assistant role,
// prefixed with the author when it is not this client, so multi-agent
// history stays attributable through a single assistant channel.
func historyMessages(self string, aictx *core.AIContext) []model.Message {
	if aictx == nil {
		return nil
	}
	out := make([]model.Message, 0, len(aictx.History))
	for _, msg := range aictx.History {
		switch msg.Sender {
		case core.SenderUser:
			out = append(out, model.Message{Role: "user", Text: msg.Content})
		case self:
			out = append(out, model.Message{Role: "assistant", Text: msg.Content})
		default:
			out = append(out, model.Message{Role: "assistant", Text: fmt.Sprintf("[%s] %s", msg.Sender, msg.Content)})
		}
	}
	return out
}
