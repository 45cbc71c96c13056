// Package util holds small internal helpers shared across packages.
package util

import "github.com/google/uuid"

// NewID generates a new unique identifier for entities and events.
func NewID() string { return uuid.NewString() }

// Truncate returns s cut to at most n bytes on a rune boundary, appending an
// ellipsis when anything was removed.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	out := make([]rune, 0, n)
	size := 0
	for _, r := range runes {
		size += len(string(r))
		if size > n {
			break
		}
		out = append(out, r)
	}
	return string(out) + "..."
}
