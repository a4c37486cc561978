package matcher

import "strings"

// Match reports whether name satisfies pattern using common CLI semantics:
// "*" matches everything, anything else is a prefix (and therefore also an
// exact) match.
func Match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == "" {
		return false
	}
	return strings.HasPrefix(name, pattern)
}
