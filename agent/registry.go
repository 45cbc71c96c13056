package agent

import (
	"sync"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
	"github.com/hupe1980/agentcouncil/model"
	"github.com/hupe1980/agentcouncil/model/anthropic"
	"github.com/hupe1980/agentcouncil/model/openai"
)

// RegistryOptions configures the role model factories. Factories run at most
// once per process, on first use of the role.
type RegistryOptions struct {
	// ArchitectModel builds the primary agent's model. Defaults to the
	// Anthropic adapter with its default model.
	ArchitectModel func() model.Model

	// ReviewerModel builds reviewer #1's model. Defaults to the OpenAI
	// adapter with its default model.
	ReviewerModel func() model.Model

	// CriticModel builds reviewer #2's model. Defaults to the OpenAI
	// adapter with its default model.
	CriticModel func() model.Model

	// Logger is handed to every constructed client.
	Logger logging.Logger
}

// Registry constructs and caches the three role clients. Construction is
// lazy and happens exactly once per role per process; the shared instances
// must therefore be safe to call concurrently from unrelated runs, which
// Client guarantees.
type Registry struct {
	opts RegistryOptions

	architectOnce sync.Once
	reviewerOnce  sync.Once
	criticOnce    sync.Once

	architect *Client
	reviewer  *Client
	critic    *Client
}

// NewRegistry creates a Registry with optional factory overrides.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		ArchitectModel: func() model.Model { return anthropic.NewModel() },
		ReviewerModel:  func() model.Model { return openai.NewModel() },
		CriticModel:    func() model.Model { return openai.NewModel() },
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{opts: opts}
}

// Architect returns the shared primary agent client.
func (r *Registry) Architect() *Client {
	r.architectOnce.Do(func() {
		r.architect = NewClient(core.SenderArchitect, architectPrompt, r.opts.ArchitectModel(), r.opts.Logger)
	})
	return r.architect
}

// Reviewer returns the shared reviewer #1 client.
func (r *Registry) Reviewer() *Client {
	r.reviewerOnce.Do(func() {
		r.reviewer = NewClient(core.SenderReviewer, reviewerPrompt, r.opts.ReviewerModel(), r.opts.Logger)
	})
	return r.reviewer
}

// Critic returns the shared reviewer #2 client.
func (r *Registry) Critic() *Client {
	r.criticOnce.Do(func() {
		r.critic = NewClient(core.SenderCritic, criticPrompt, r.opts.CriticModel(), r.opts.Logger)
	})
	return r.critic
}
