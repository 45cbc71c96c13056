package agent

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentcouncil/core"
)

// Role prompts for the three council members. The architect drives every
// run; reviewer and critic only join in duo/team modes.
const (
	architectPrompt = `You are the architect of a development council. You answer the user's
question directly and produce concrete, working solutions. When reviewers
comment on your draft you incorporate the useful parts and produce a single
refined answer. Be specific; prefer code and exact commands over prose.`

	reviewerPrompt = `You are the reviewer of a development council. You receive the
architect's draft answer and review it for correctness, missing edge cases
and better alternatives. Be concise and concrete; list issues, do not
rewrite the whole answer.`

	criticPrompt = `You are the critic of a development council. You challenge the
architect's draft and the reviewer's comments: question assumptions, point
out risks, complexity and simpler paths. Be blunt and brief.`
)

// renderContext flattens the request-scoped context into system prompt
// sections. Empty sections are omitted.
func renderContext(aictx *core.AIContext) string {
	if aictx == nil {
		return ""
	}

	var b strings.Builder

	if len(aictx.Preferences) > 0 {
		b.WriteString("\n\nUser preferences:\n")
		for _, p := range aictx.Preferences {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", p.Category, p.Key, p.Value)
		}
	}

	if aictx.Project != nil {
		fmt.Fprintf(&b, "\n\nProject: %s", aictx.Project.Name)
		if aictx.Project.Description != "" {
			fmt.Fprintf(&b, " - %s", aictx.Project.Description)
		}
		b.WriteString("\n")
	}

	if len(aictx.Files) > 0 {
		b.WriteString("\n\nProject files:\n")
		for _, f := range aictx.Files {
			fmt.Fprintf(&b, "--- %s ---\n%s\n", f.Path, f.Content)
		}
	}

	if aictx.Editor != nil {
		b.WriteString("\n\nCurrently open in editor")
		if aictx.Editor.Path != "" {
			fmt.Fprintf(&b, " (%s)", aictx.Editor.Path)
		}
		fmt.Fprintf(&b, ":\n%s\n", aictx.Editor.Content)
	}

	return b.String()
}
