package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/agentcouncil/command"
	"github.com/hupe1980/agentcouncil/core"
)

// runCommand handles a preference command without invoking any agent. The
// reply is authored by the architect identifier so the stream keeps a single
// assistant voice, then the run terminates with an empty done frame.
func (o *Orchestrator) runCommand(ctx context.Context, r *run, cmd command.Command) {
	o.persistMessage(ctx, r, core.SenderUser, r.userMessage)

	var reply string
	switch cmd.Kind {
	case command.KindList:
		reply = o.listPreferences(ctx)
	case command.KindSave:
		reply = o.savePreference(ctx, cmd.Captured)
	case command.KindDelete:
		reply = o.deletePreference(ctx, cmd.Captured)
	}

	o.emit(r.sink, core.NewMessageEvent(core.SenderArchitect, reply))
	o.persistMessage(ctx, r, core.SenderArchitect, reply)
	o.emit(r.sink, core.NewDoneEvent(r.metadata()))
}

func (o *Orchestrator) listPreferences(ctx context.Context) string {
	prefs, err := o.store.GetPreferences(ctx)
	if err != nil {
		o.logger.Error("preference listing failed", "error", err)
		return "I couldn't read your preferences right now."
	}
	if len(prefs) == 0 {
		return "You have no saved preferences yet."
	}

	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Key < prefs[j].Key })

	var b strings.Builder
	b.WriteString("Your saved preferences:\n")
	for _, p := range prefs {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", p.Category, p.Key, p.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (o *Orchestrator) savePreference(ctx context.Context, captured string) string {
	t := command.Extract(captured)
	if err := o.store.UpsertPreference(ctx, t.Category, t.Key, t.Value); err != nil {
		o.logger.Error("preference upsert failed", "key", t.Key, "error", err)
		return "I couldn't save that preference right now."
	}
	return fmt.Sprintf("Saved: %s = %s", t.Key, t.Value)
}

func (o *Orchestrator) deletePreference(ctx context.Context, captured string) string {
	key := command.DeleteKey(captured)
	err := o.store.DeletePreference(ctx, key)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return fmt.Sprintf("No preference named %q found.", key)
	case err != nil:
		o.logger.Error("preference delete failed", "key", key, "error", err)
		return "I couldn't delete that preference right now."
	default:
		return fmt.Sprintf("Deleted preference %q.", key)
	}
}
