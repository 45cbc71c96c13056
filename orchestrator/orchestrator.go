// Package orchestrator drives one multi-agent conversation run: it
// sequences the council's stages according to the requested mode, pushes
// progress frames over the stream transport, short-circuits preference
// commands and feeds every agent response through the auto-save detector.
//
// A run is single-threaded and event-driven: stages form a strict data
// dependency chain, so there is no fan-out. The only background goroutine is
// the heartbeat ticker. Runs are expected to be spawned fire-and-forget by
// the request layer; the sink is the only coupling back to the caller.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/agentcouncil/agent"
	"github.com/hupe1980/agentcouncil/autosave"
	"github.com/hupe1980/agentcouncil/command"
	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
	"github.com/hupe1980/agentcouncil/model"
)

// reviewerFallback substitutes a failed reviewer or critic contribution so
// the run can continue. Worded to stay clear of the auto-save marker
// phrases.
const reviewerFallback = "Sorry, I ran into a problem on my turn and have nothing to add this time."

// generateSuffix is appended to the first stage's input when the user
// message carries a generate intent.
const generateSuffix = "\n\nProduce the complete artifact, not a description of it. Include full code or content ready to use."

// generateTriggers classify a message as a generate request via
// case-insensitive substring match.
var generateTriggers = []string{
	"generate", "write a", "write me", "create a", "implement",
	"build a", "code a", "make a",
	"wygeneruj", "napisz", "stwórz", "stworz", "zaimplementuj", "zrób", "zrob",
}

// Options tunes a single Orchestrator instance.
type Options struct {
	// Logger receives run progress and degradation warnings. Defaults to NoOp.
	Logger logging.Logger

	// HistoryLimit caps how many recent messages feed the AI context.
	HistoryLimit int

	// RunBudget bounds the wall-clock time of a whole run. Exceeding it
	// forces a terminal error frame regardless of stage progress.
	RunBudget time.Duration

	// HeartbeatInterval paces the no-op frames that keep the transport
	// alive while an agent call is in flight.
	HeartbeatInterval time.Duration
}

// Orchestrator sequences agent stages for conversation runs. It holds no
// per-run state and is safe for concurrent use by independent runs.
type Orchestrator struct {
	store    core.Store
	registry *agent.Registry
	autosave *autosave.Processor
	logger   logging.Logger

	historyLimit      int
	runBudget         time.Duration
	heartbeatInterval time.Duration
}

// New constructs an Orchestrator with optional overrides.
func New(store core.Store, registry *agent.Registry, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		Logger:            logging.NoOpLogger{},
		HistoryLimit:      50,
		RunBudget:         5 * time.Minute,
		HeartbeatInterval: 15 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Orchestrator{
		store:             store,
		registry:          registry,
		autosave:          autosave.NewProcessor(store, opts.Logger),
		logger:            opts.Logger,
		historyLimit:      opts.HistoryLimit,
		runBudget:         opts.RunBudget,
		heartbeatInterval: opts.HeartbeatInterval,
	}
}

// RunInput carries one orchestration request. Context is an optional
// caller-supplied snapshot (project, files, editor); history and
// preferences are always loaded fresh from the gateway.
type RunInput struct {
	ConversationID string
	Message        string
	Mode           core.Mode
	ProjectID      *string
	Context        *core.AIContext
}

// run accumulates per-run state: the sink, token totals and saved record
// references for the terminal metadata.
type run struct {
	sink           core.Sink
	conversationID string
	projectID      *string
	userMessage    string

	usage     core.TokenTotals
	usageSeen bool
	saved     []core.SavedRecord
}

func (r *run) addUsage(u *model.TokenUsage) {
	if u == nil {
		return
	}
	r.usageSeen = true
	r.usage.PromptTokens += u.PromptTokens
	r.usage.CompletionTokens += u.CompletionTokens
	r.usage.TotalTokens += u.TotalTokens
}

func (r *run) metadata() *core.DoneMetadata {
	md := &core.DoneMetadata{SavedRecords: r.saved}
	if r.usageSeen {
		usage := r.usage
		md.Usage = &usage
	}
	return md
}

// Run executes one orchestration to its terminal frame. It is designed to
// be called in a goroutine the request handler does not await; consumer
// disconnects surface only as swallowed sink writes, never as cancellation
// of in-flight agent calls.
func (o *Orchestrator) Run(ctx context.Context, in RunInput, sink core.Sink) {
	ctx, cancel := context.WithTimeout(ctx, o.runBudget)
	defer cancel()

	stopHeartbeat := o.startHeartbeat(sink)
	defer stopHeartbeat()

	r := &run{
		sink:           sink,
		conversationID: in.ConversationID,
		projectID:      in.ProjectID,
		userMessage:    in.Message,
	}

	if cmd := command.Detect(in.Message); cmd.Kind != command.KindNone {
		o.runCommand(ctx, r, cmd)
		return
	}

	aictx := o.buildContext(ctx, in)

	o.persistMessage(ctx, r, core.SenderUser, in.Message)

	firstMessage := in.Message
	if isGenerate(in.Message) {
		firstMessage += generateSuffix
	}

	architect := o.registry.Architect()

	draft, ok := o.runStage(ctx, r, architect.Name(), true, func(c context.Context) (*agent.Reply, error) {
		return architect.Call(c, firstMessage, aictx)
	})
	if !ok {
		return
	}

	switch in.Mode {
	case core.ModeDuo:
		reviewer := o.registry.Reviewer()
		review, _ := o.runStage(ctx, r, reviewer.Name(), false, func(c context.Context) (*agent.Reply, error) {
			return reviewer.Review(c, in.Message, draft, aictx)
		})
		_, ok = o.runStage(ctx, r, architect.Name(), true, func(c context.Context) (*agent.Reply, error) {
			return architect.Refine(c, in.Message, draft, []agent.Feedback{
				{From: reviewer.Name(), Text: review},
			}, aictx)
		})
		if !ok {
			return
		}

	case core.ModeTeam:
		reviewer := o.registry.Reviewer()
		critic := o.registry.Critic()
		review, _ := o.runStage(ctx, r, reviewer.Name(), false, func(c context.Context) (*agent.Reply, error) {
			return reviewer.Review(c, in.Message, draft, aictx)
		})
		critique, _ := o.runStage(ctx, r, critic.Name(), false, func(c context.Context) (*agent.Reply, error) {
			return critic.Review(c, in.Message, draft, aictx)
		})
		_, ok = o.runStage(ctx, r, architect.Name(), true, func(c context.Context) (*agent.Reply, error) {
			return architect.Refine(c, in.Message, draft, []agent.Feedback{
				{From: reviewer.Name(), Text: review},
				{From: critic.Name(), Text: critique},
			}, aictx)
		})
		if !ok {
			return
		}
	}

	o.emit(r.sink, core.NewDoneEvent(r.metadata()))
}

// runStage executes one agent stage: typing frame, the call itself, then the
// message frame plus persistence and auto-save scanning. For a fatal stage a
// call failure emits the terminal error frame and aborts the run; for a
// reviewer stage the fixed fallback text substitutes the contribution.
func (o *Orchestrator) runStage(
	ctx context.Context,
	r *run,
	sender string,
	fatal bool,
	call func(context.Context) (*agent.Reply, error),
) (string, bool) {
	o.emit(r.sink, core.NewTypingEvent(sender))

	text := reviewerFallback
	reply, err := call(ctx)
	switch {
	case err != nil && fatal:
		msg := fmt.Sprintf("agent %s failed: %v", sender, err)
		if ctx.Err() != nil {
			msg = "run exceeded its time budget"
		}
		o.logger.Error("primary agent stage failed", "sender", sender, "error", err)
		o.emit(r.sink, core.NewErrorEvent(msg))
		return "", false
	case err != nil:
		o.logger.Warn("reviewer stage degraded", "sender", sender, "error", err)
	default:
		text = reply.Text
		r.addUsage(reply.Usage)
	}

	o.emit(r.sink, core.NewMessageEvent(sender, text))
	o.persistMessage(ctx, r, sender, text)
	r.saved = append(r.saved, o.autosave.Process(ctx, r.projectID, r.userMessage, text)...)

	return text, true
}

// buildContext assembles the request-scoped AI context: gateway history and
// preferences plus the caller-supplied snapshot. Gateway read failures
// degrade to an emptier context rather than aborting the run.
func (o *Orchestrator) buildContext(ctx context.Context, in RunInput) *core.AIContext {
	aictx := &core.AIContext{}

	history, err := o.store.GetHistory(ctx, in.ConversationID, o.historyLimit)
	if err != nil {
		o.logger.Warn("history load failed", "conversation_id", in.ConversationID, "error", err)
	} else {
		aictx.History = history
	}

	prefs, err := o.store.GetPreferences(ctx)
	if err != nil {
		o.logger.Warn("preference load failed", "error", err)
	} else {
		aictx.Preferences = prefs
	}

	aictx.Merge(in.Context)
	return aictx
}

// persistMessage appends one turn to the conversation. A write failure is
// logged and the run continues: the consumer already holds the content, and
// aborting a multi-model run over a history write loses more than it saves.
func (o *Orchestrator) persistMessage(ctx context.Context, r *run, sender, content string) {
	if _, err := o.store.SaveMessage(ctx, r.conversationID, sender, content); err != nil {
		o.logger.Error("message persistence failed; continuing run",
			"conversation_id", r.conversationID,
			"sender", sender,
			"error", err)
	}
}

// emit pushes one frame. Transport errors are logged at debug and otherwise
// ignored; a disconnected consumer never influences run control flow.
func (o *Orchestrator) emit(sink core.Sink, ev core.StreamEvent) {
	if err := sink.Send(ev); err != nil {
		o.logger.Debug("stream write dropped", "type", string(ev.Type), "error", err)
	}
}

// startHeartbeat pushes no-op frames on a fixed interval until the returned
// stop function is called. Stop waits for the ticker goroutine to exit.
func (o *Orchestrator) startHeartbeat(sink core.Sink) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(o.heartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := sink.Heartbeat(); err != nil {
					o.logger.Debug("heartbeat dropped", "error", err)
				}
			}
		}
	}()

	return func() {
		close(stop)
		wg.Wait()
	}
}

func isGenerate(message string) bool {
	lower := strings.ToLower(message)
	for _, trigger := range generateTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
