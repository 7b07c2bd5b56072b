package stylegraph

import "strings"

// Event is delivered to a subscriber on every write matching its path or
// pattern.
type Event struct {
	Path  string
	Value any
}

// Handler receives store change events.
type Handler func(Event)

// Store is the reactive key-value store the subsystems are built on. Any
// implementation satisfying it is interchangeable; Set must synchronously
// notify every subscriber whose path or pattern matches, in subscription
// order, before returning.
type Store interface {
	// Get returns the value at path, or nil when absent.
	Get(path string) any
	// Set writes value at path and fans out to matching subscribers.
	Set(path string, value any)
	// Subscribe registers h for an exact path or a wildcard pattern and
	// returns its unsubscribe function.
	Subscribe(pathOrPattern string, h Handler) func()
	// Destroy drops all values and subscriptions.
	Destroy()
}

// MatchPath reports whether path matches pathOrPattern. A pattern ending in
// ".*" matches any path sharing that prefix plus one or more additional
// segments; anything else must match exactly.
func MatchPath(pathOrPattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pathOrPattern, ".*"); ok {
		return strings.HasPrefix(path, prefix+".")
	}
	return pathOrPattern == path
}
