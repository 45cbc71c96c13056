// Package agentcouncil provides a high-level façade over the orchestrator
// and its services (persistence gateway, agent registry, logging) enabling
// embedded use of the multi-agent council without running the HTTP server.
// Most applications interact with this package by:
//  1. Creating an AgentCouncil via New() (optionally overriding the
//     in-memory gateway or the per-role model factories)
//  2. Creating a conversation
//  3. Running turns asynchronously (Run) or synchronously (RunSync)
//
// All defaults are safe for local development and testing; production
// deployments typically supply the postgres-backed gateway and a structured
// logger.
package agentcouncil

import (
	"context"

	"github.com/hupe1980/agentcouncil/agent"
	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
	"github.com/hupe1980/agentcouncil/orchestrator"
	"github.com/hupe1980/agentcouncil/store"
	"github.com/hupe1980/agentcouncil/stream"
)

// eventBufferSize is the channel buffer for Run's event stream. Large enough
// that a slow consumer does not drop frames of a normal run.
const eventBufferSize = 64

// Options configures the AgentCouncil instance.
type Options struct {
	// Store is the persistence gateway. Defaults to the in-memory
	// implementation.
	Store core.Store

	// Registry supplies the role clients. Defaults to the provider-backed
	// registry with its default models.
	Registry *agent.Registry

	// Logger defaults to NoOp.
	Logger logging.Logger

	// HistoryLimit, RunBudget and HeartbeatInterval pass through to the
	// orchestrator; zero values take the orchestrator defaults.
	Orchestrator []func(o *orchestrator.Options)
}

// AgentCouncil is the high-level façade aggregating the orchestrator and its
// services.
type AgentCouncil struct {
	opts  Options
	store core.Store
	orch  *orchestrator.Orchestrator
}

// New creates an AgentCouncil with optional overrides. Any unset service is
// initialized with an in-memory or NoOp implementation.
func New(optFns ...func(o *Options)) *AgentCouncil {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Store == nil {
		opts.Store = store.NewInMemoryStore()
	}
	if opts.Registry == nil {
		opts.Registry = agent.NewRegistry(func(o *agent.RegistryOptions) {
			o.Logger = opts.Logger
		})
	}

	orchFns := append([]func(o *orchestrator.Options){func(o *orchestrator.Options) {
		o.Logger = opts.Logger
	}}, opts.Orchestrator...)

	return &AgentCouncil{
		opts:  opts,
		store: opts.Store,
		orch:  orchestrator.New(opts.Store, opts.Registry, orchFns...),
	}
}

// Store exposes the persistence gateway, e.g. for creating conversations.
func (c *AgentCouncil) Store() core.Store { return c.store }

// Run starts an asynchronous conversation turn and returns the event stream.
// The channel closes after the terminal frame.
func (c *AgentCouncil) Run(ctx context.Context, in orchestrator.RunInput) <-chan core.StreamEvent {
	sink := stream.NewChannelSink(eventBufferSize)
	go func() {
		defer sink.Close()
		c.orch.Run(ctx, in, sink)
	}()
	return sink.Events()
}

// RunSync is a synchronous helper that drains the event stream and returns
// all frames. A terminal error frame is reported in the last event, not as a
// Go error; only context cancellation returns one.
func (c *AgentCouncil) RunSync(ctx context.Context, in orchestrator.RunInput) ([]core.StreamEvent, error) {
	events := c.Run(ctx, in)

	var collected []core.StreamEvent
	for {
		select {
		case <-ctx.Done():
			return collected, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return collected, nil
			}
			collected = append(collected, ev)
		}
	}
}
