package stylegraph

// MemStore is the reference Store implementation: a nested value tree with
// dotted-path addressing and an ordered subscriber list. It assumes a single
// logical thread of control (each external Set runs to completion before the
// next) and therefore takes no locks.
type MemStore struct {
	root map[string]any
	subs []*memSub
}

type memSub struct {
	pattern string
	handler Handler
	active  bool
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{root: map[string]any{}}
}

// Get returns the value at path, which may be a scalar leaf or a nested
// subtree map. It returns nil when the path is absent.
func (s *MemStore) Get(path string) any {
	cur := any(s.root)
	for _, seg := range SplitPath(path) {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// Set writes value at path, creating intermediate nodes as needed, then
// synchronously notifies exact-path and matching wildcard subscribers in
// subscription order. A map value replaces the subtree at path.
func (s *MemStore) Set(path string, value any) {
	segs := SplitPath(path)
	node := s.root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}
	node[segs[len(segs)-1]] = value

	// Snapshot: handlers may subscribe or unsubscribe during fan-out.
	snapshot := make([]*memSub, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		if !sub.active {
			continue
		}
		if MatchPath(sub.pattern, path) {
			sub.handler(Event{Path: path, Value: value})
		}
	}
}

// Subscribe registers h for an exact path or a ".*" wildcard pattern and
// returns an idempotent unsubscribe function.
func (s *MemStore) Subscribe(pathOrPattern string, h Handler) func() {
	sub := &memSub{pattern: pathOrPattern, handler: h, active: true}
	s.subs = append(s.subs, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, cand := range s.subs {
			if cand == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Destroy drops every value and subscription.
func (s *MemStore) Destroy() {
	s.root = map[string]any{}
	for _, sub := range s.subs {
		sub.active = false
	}
	s.subs = nil
}
