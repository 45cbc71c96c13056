package command

import (
	"regexp"
	"strings"
)

// Triple is the structured preference derived from captured command text.
// Key is the record identity used for upsert and delete.
type Triple struct {
	Category string
	Key      string
	Value    string
}

type extractRule struct {
	re      *regexp.Regexp
	extract func(m []string) Triple
}

// Rules are evaluated in order; the first match wins. Single-capture rules
// bind fixed keys, the favorite rules derive the key from the first capture.
var extractTable = []extractRule{
	{
		regexp.MustCompile(`(?i)^my name is\s+(.+)$`),
		func(m []string) Triple { return Triple{"personal", "name", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^(?:mam na imię|mam na imie|nazywam się|nazywam sie)\s+(.+)$`),
		func(m []string) Triple { return Triple{"personal", "name", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^my favou?rite\s+(.+?)\s+is\s+(.+)$`),
		func(m []string) Triple { return Triple{"general", "favorite_" + NormalizeKey(m[1]), m[2]} },
	},
	{
		regexp.MustCompile(`(?i)^(?:mój|moj|moja|moje)\s+ulubion[ya]?\s+(.+?)\s+to\s+(.+)$`),
		func(m []string) Triple { return Triple{"general", "favorite_" + NormalizeKey(m[1]), m[2]} },
	},
	{
		regexp.MustCompile(`(?i)^i prefer\s+(.+)$`),
		func(m []string) Triple { return Triple{"general", "prefers", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^(?:wolę|wole|preferuję|preferuje)\s+(.+)$`),
		func(m []string) Triple { return Triple{"general", "prefers", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^i (?:like|love)\s+(.+)$`),
		func(m []string) Triple { return Triple{"general", "likes", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^(?:lubię|lubie)\s+(.+)$`),
		func(m []string) Triple { return Triple{"general", "likes", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^i work (?:at|for)\s+(.+)$`),
		func(m []string) Triple { return Triple{"work", "company", m[1]} },
	},
	{
		regexp.MustCompile(`(?i)^i use\s+(.+)$`),
		func(m []string) Triple { return Triple{"tech", "uses", m[1]} },
	},
}

// Extract turns captured free text into a preference triple. When no rule
// matches it falls back to the first three words as key and the full text as
// value; extraction is total and never fails.
func Extract(captured string) Triple {
	text := strings.TrimSpace(captured)
	for _, rule := range extractTable {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			t := rule.extract(m)
			t.Value = strings.TrimSpace(t.Value)
			return t
		}
	}

	words := strings.Fields(text)
	if len(words) > 3 {
		words = words[:3]
	}
	return Triple{
		Category: "general",
		Key:      NormalizeKey(strings.Join(words, " ")),
		Value:    text,
	}
}

// DeleteKey derives the preference key targeted by a delete command. It
// strips leading possessives so "forget my name" resolves to the key "name".
func DeleteKey(captured string) string {
	text := strings.TrimSpace(strings.ToLower(captured))
	for _, prefix := range []string{"my ", "the ", "mój ", "moj ", "moja ", "moje "} {
		text = strings.TrimPrefix(text, prefix)
	}
	return NormalizeKey(text)
}

// NormalizeKey lower-cases a phrase and joins its words with underscores.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "_")
}
