// Package autosave scans agent responses for recurring knowledge patterns
// (decisions, bugs, rules, prompts, tech mentions, review feedback) and
// persists matches as structured records without explicit user action.
//
// Detection is a set of independent presence tests; one response can match
// several kinds at once. Per-kind extractors try ordered sub-patterns and
// fall back to a generic record so a detected kind never silently extracts
// nothing, except the tech kind which instead performs a vocabulary scan.
package autosave

import "regexp"

// Kind is one detectable pattern class.
type Kind string

const (
	// KindDecision marks design or tooling decisions.
	KindDecision Kind = "decision"
	// KindBug marks bug reports and fixes.
	KindBug Kind = "bug"
	// KindPrompt marks reusable prompt text.
	KindPrompt Kind = "prompt"
	// KindRule marks project rules and conventions.
	KindRule Kind = "rule"
	// KindTech marks known technology mentions.
	KindTech Kind = "tech"
	// KindReviewFeedback marks reviewer improvement suggestions.
	KindReviewFeedback Kind = "review_feedback"
)

// Presence tests per kind. Tech has no marker phrase; it is detected by the
// vocabulary scan instead.
var detectTable = map[Kind]*regexp.Regexp{
	KindDecision:       regexp.MustCompile(`(?i)\b(?:decided|decision|we(?:'ll| will) (?:use|go with)|chose|let's go with|postanowili[śs]my|decyzja)\b`),
	KindBug:            regexp.MustCompile(`(?i)\b(?:bug|fixed|broken|crash|error|issue|b[łl][ąa]d|naprawi\w*)\b`),
	KindPrompt:         regexp.MustCompile(`(?i)\bprompt\b`),
	KindRule:           regexp.MustCompile(`(?i)\b(?:rule|convention|always|never|must(?:\s+not)?|zasada|regu[łl]a)\b`),
	KindReviewFeedback: regexp.MustCompile(`(?i)\b(?:review|feedback|suggest(?:ion|ed)?|improvement|recommendation)\b`),
}

// Detection order is fixed so runs are deterministic.
var kindOrder = []Kind{KindDecision, KindBug, KindPrompt, KindRule, KindTech, KindReviewFeedback}

// Detect returns the pattern kinds present in an agent response. Kinds are
// non-exclusive and returned in a fixed order.
func Detect(responseText string) []Kind {
	var kinds []Kind
	for _, k := range kindOrder {
		if k == KindTech {
			if len(scanTech(responseText)) > 0 {
				kinds = append(kinds, k)
			}
			continue
		}
		if detectTable[k].MatchString(responseText) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
