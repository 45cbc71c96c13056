package autosave

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hupe1980/agentcouncil/core"
)

// techVocabulary maps known technology names to their category. The scan is
// a fixed-vocabulary presence test over user plus agent text; unlike the
// other kinds there is no generic fallback record.
var techVocabulary = map[string]string{
	"go":         "language",
	"golang":     "language",
	"python":     "language",
	"typescript": "language",
	"javascript": "language",
	"rust":       "language",
	"java":       "language",
	"kotlin":     "language",
	"swift":      "language",

	"react":   "framework",
	"vue":     "framework",
	"angular": "framework",
	"svelte":  "framework",
	"django":  "framework",
	"rails":   "framework",
	"spring":  "framework",
	"nextjs":  "framework",
	"express": "framework",

	"postgres":   "database",
	"postgresql": "database",
	"mysql":      "database",
	"sqlite":     "database",
	"mongodb":    "database",

	"redis":     "cache",
	"memcached": "cache",

	"kafka":    "messaging",
	"rabbitmq": "messaging",
	"nats":     "messaging",

	"docker":     "infrastructure",
	"kubernetes": "infrastructure",
	"terraform":  "infrastructure",
	"nginx":      "infrastructure",

	"aws":   "cloud",
	"gcp":   "cloud",
	"azure": "cloud",

	"grpc":    "transport",
	"graphql": "transport",
	"rest":    "transport",
}

var techWordPattern = regexp.MustCompile(`[a-z][a-z0-9+#.]*`)

// scanTech returns the deduplicated technology mentions found in text,
// sorted by name for deterministic output.
func scanTech(text string) []core.TechItemInput {
	seen := make(map[string]string)
	for _, word := range techWordPattern.FindAllString(strings.ToLower(text), -1) {
		if category, ok := techVocabulary[word]; ok {
			seen[word] = category
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]core.TechItemInput, 0, len(names))
	for _, name := range names {
		items = append(items, core.TechItemInput{Name: name, Category: seen[name]})
	}
	return items
}

// ExtractTech scans the combined user and agent text for known technology
// names. A single exchange can yield multiple tech records or none.
func ExtractTech(responseText, userMessage string) []core.TechItemInput {
	return scanTech(userMessage + "\n" + responseText)
}
