package autosave

import (
	"context"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
)

// Processor runs detection and extraction over an agent response and
// persists every candidate through the gateway. A persistence failure for
// one record is logged and skipped; it never aborts the remaining kinds or
// the orchestration run.
type Processor struct {
	store  core.Store
	logger logging.Logger
}

// NewProcessor creates a Processor bound to a gateway.
func NewProcessor(store core.Store, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Processor{store: store, logger: logger}
}

// Process scans one agent response and returns the references of every
// record that persisted successfully.
func (p *Processor) Process(ctx context.Context, projectID *string, userMessage, responseText string) []core.SavedRecord {
	var saved []core.SavedRecord

	for _, kind := range Detect(responseText) {
		switch kind {
		case KindDecision:
			for _, in := range ExtractDecisions(responseText, userMessage) {
				in.ProjectID = projectID
				rec, err := p.store.SaveDecision(ctx, in)
				saved = p.append(saved, rec, err)
			}
		case KindBug:
			for _, in := range ExtractBugs(responseText) {
				in.ProjectID = projectID
				rec, err := p.store.SaveBug(ctx, in)
				saved = p.append(saved, rec, err)
			}
		case KindRule:
			for _, in := range ExtractRules(responseText) {
				in.ProjectID = projectID
				rec, err := p.store.SaveRule(ctx, in)
				saved = p.append(saved, rec, err)
			}
		case KindPrompt:
			for _, in := range ExtractPrompts(responseText) {
				in.ProjectID = projectID
				rec, err := p.store.SavePrompt(ctx, in)
				saved = p.append(saved, rec, err)
			}
		case KindTech:
			for _, in := range ExtractTech(responseText, userMessage) {
				in.ProjectID = projectID
				rec, err := p.store.SaveTechItem(ctx, in)
				saved = p.append(saved, rec, err)
			}
		case KindReviewFeedback:
			for _, in := range ExtractReviewFeedback(responseText) {
				in.ProjectID = projectID
				rec, err := p.store.SaveRule(ctx, in)
				saved = p.append(saved, rec, err)
			}
		}
	}

	return saved
}

func (p *Processor) append(saved []core.SavedRecord, rec *core.SavedRecord, err error) []core.SavedRecord {
	if err != nil {
		p.logger.Error("auto-save record persistence failed", "error", err)
		return saved
	}
	if rec == nil {
		return saved
	}
	return append(saved, *rec)
}
