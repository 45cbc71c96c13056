// Package command classifies raw user messages as preference commands and
// turns captured command text into structured preference triples.
//
// Both the detector and the extractor are priority-ordered tables of
// (matcher, handler) pairs evaluated in sequence with first-match-wins
// semantics. All functions are pure; handlers never fail.
package command

import (
	"regexp"
	"strings"
)

// Kind is the detected command class.
type Kind string

const (
	// KindList requests the stored preference listing.
	KindList Kind = "list"
	// KindSave stores the captured text as a preference.
	KindSave Kind = "save"
	// KindDelete removes a preference matching the captured text.
	KindDelete Kind = "delete"
	// KindNone means the message is an ordinary chat turn.
	KindNone Kind = "none"
)

// Command is the detector result. Captured holds the free text after the
// trigger phrase for save/delete; it is empty for list and none.
type Command struct {
	Kind     Kind
	Captured string
}

type detectRule struct {
	kind Kind
	re   *regexp.Regexp
}

// Detection order encodes priority: list > save > delete. Each intent
// accepts English and Polish phrasings of the original product.
var detectTable = []detectRule{
	{KindList, regexp.MustCompile(`(?i)^\s*(?:show|list|display)\s+(?:my\s+)?preferences\b`)},
	{KindList, regexp.MustCompile(`(?i)^\s*what\s+are\s+my\s+preferences\b`)},
	{KindList, regexp.MustCompile(`(?i)^\s*(?:pokaż|pokaz|wyświetl|wyswietl)\s+(?:moje\s+)?preferencje\b`)},
	{KindSave, regexp.MustCompile(`(?i)^\s*(?:remember|save)(?:\s+that)?\s+(.+)$`)},
	{KindSave, regexp.MustCompile(`(?i)^\s*(?:zapamiętaj|zapamietaj)(?:\s+(?:że|ze))?\s+(.+)$`)},
	{KindDelete, regexp.MustCompile(`(?i)^\s*(?:forget|delete|remove)(?:\s+(?:about|that))?\s+(.+)$`)},
	{KindDelete, regexp.MustCompile(`(?i)^\s*(?:zapomnij|usuń|usun)(?:\s+(?:o|że|ze))?\s+(.+)$`)},
}

// Detect classifies a raw user message. Messages that match no rule pass
// through to the orchestration pipeline unchanged.
func Detect(message string) Command {
	for _, rule := range detectTable {
		m := rule.re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		cmd := Command{Kind: rule.kind}
		if len(m) > 1 {
			cmd.Captured = strings.TrimRight(strings.TrimSpace(m[1]), ".!?")
		}
		return cmd
	}
	return Command{Kind: KindNone}
}
