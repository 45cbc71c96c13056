package autosave

import (
	"regexp"
	"strings"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/internal/util"
)

// fallbackChars bounds the generic description taken from a response when no
// specific sub-pattern matched.
const fallbackChars = 500

var decisionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)decision:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)(?:we (?:decided to|chose|will use)|decided to|let's go with|chose)\s+([^.\n]+)`),
}

// ExtractDecisions pulls decision records out of a response that matched the
// decision kind. The generic fallback guarantees at least one candidate.
func ExtractDecisions(responseText, userMessage string) []core.DecisionInput {
	for _, re := range decisionPatterns {
		if m := re.FindStringSubmatch(responseText); m != nil {
			desc := strings.TrimSpace(m[1])
			return []core.DecisionInput{{
				Title:       util.Truncate(desc, 120),
				Description: desc,
				Reason:      util.Truncate(userMessage, fallbackChars),
			}}
		}
	}
	return []core.DecisionInput{{
		Title:       "Decision",
		Description: util.Truncate(responseText, fallbackChars),
		Reason:      util.Truncate(userMessage, fallbackChars),
	}}
}

var (
	bugDescPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:bug|issue|error):\s*([^\n]+)`),
		regexp.MustCompile(`(?i)fixed\s+([^.\n]+)`),
	}
	bugSolutionPattern = regexp.MustCompile(`(?i)(?:fix|solution):\s*([^\n]+)`)
	bugLocationPattern = regexp.MustCompile(`([\w./~-]+\.(?:go|ts|tsx|js|jsx|py|rs|java|rb|c|cpp|h)):?(\d+)?`)
	bugSeverityPattern = regexp.MustCompile(`(?i)\b(critical|high|medium|low)\b`)
)

// ExtractBugs pulls bug records out of a response that matched the bug kind.
func ExtractBugs(responseText string) []core.BugInput {
	bug := core.BugInput{}
	for _, re := range bugDescPatterns {
		if m := re.FindStringSubmatch(responseText); m != nil {
			bug.Description = strings.TrimSpace(m[1])
			break
		}
	}
	if bug.Description == "" {
		bug.Description = util.Truncate(responseText, fallbackChars)
	}
	if m := bugSolutionPattern.FindStringSubmatch(responseText); m != nil {
		bug.Solution = strings.TrimSpace(m[1])
	}
	if m := bugLocationPattern.FindStringSubmatch(responseText); m != nil {
		bug.File = m[1]
		if m[2] != "" {
			bug.Line = atoiSafe(m[2])
		}
	}
	if m := bugSeverityPattern.FindStringSubmatch(responseText); m != nil {
		bug.Severity = strings.ToLower(m[1])
	}
	return []core.BugInput{bug}
}

var rulePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rule:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)\b((?:always|never)\s+[^.\n]+)`),
}

// ExtractRules pulls rule records out of a response that matched the rule kind.
func ExtractRules(responseText string) []core.RuleInput {
	for _, re := range rulePatterns {
		if m := re.FindStringSubmatch(responseText); m != nil {
			content := strings.TrimSpace(m[1])
			return []core.RuleInput{{
				Title:    util.Truncate(content, 120),
				Content:  content,
				Category: "convention",
			}}
		}
	}
	return []core.RuleInput{{
		Title:    "Rule",
		Content:  util.Truncate(responseText, fallbackChars),
		Category: "convention",
	}}
}

var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?is)prompt[^\n]*?:\\s*```(?:\\w+)?\n(.+?)```"),
	regexp.MustCompile(`(?i)prompt:\s*([^\n]+)`),
}

// ExtractPrompts pulls reusable prompt records out of a response that
// matched the prompt kind.
func ExtractPrompts(responseText string) []core.PromptInput {
	for _, re := range promptPatterns {
		if m := re.FindStringSubmatch(responseText); m != nil {
			content := strings.TrimSpace(m[1])
			return []core.PromptInput{{
				Title:   util.Truncate(content, 120),
				Content: content,
			}}
		}
	}
	return []core.PromptInput{{
		Title:   "Prompt",
		Content: util.Truncate(responseText, fallbackChars),
	}}
}

var reviewPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:suggestion|improvement|recommendation):\s*([^\n]+)`),
	regexp.MustCompile(`(?i)\b(?:i suggest|you should|consider)\s+([^.\n]+)`),
}

// ExtractReviewFeedback pulls reviewer suggestions; they are persisted as
// rules under the review category so they accumulate like conventions.
func ExtractReviewFeedback(responseText string) []core.RuleInput {
	for _, re := range reviewPatterns {
		if m := re.FindStringSubmatch(responseText); m != nil {
			content := strings.TrimSpace(m[1])
			return []core.RuleInput{{
				Title:    util.Truncate(content, 120),
				Content:  content,
				Category: "review",
			}}
		}
	}
	return []core.RuleInput{{
		Title:    "Review feedback",
		Content:  util.Truncate(responseText, fallbackChars),
		Category: "review",
	}}
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
