package stylegraph

import (
	"log/slog"

	"github.com/reoring/stylegraph/i18n"
)

// DesignOpt bundles DesignSystem options.
type DesignOpt struct {
	// Namespace is the token namespace in the store; defaults to "tokens".
	Namespace string
	Logger    *slog.Logger
}

// DesignSystem owns a design-token tree and a binding graph from token paths
// to style paths. Every token write fans out synchronously to the style
// paths bound to it, in binding insertion order. An in-flight set guards the
// fan-out against cyclic binding graphs (a style path lying inside the token
// namespace can feed a token that, directly or transitively, feeds it back):
// a re-entrant write to a style path already being written in the current
// cascade is skipped and reported.
type DesignSystem struct {
	store    Store
	ns       string
	logger   *slog.Logger
	bindings map[string][]string // token path -> style paths, insertion order
	unsubs   map[string]func()   // token path -> store unsubscribe
	inFlight map[string]struct{} // style paths being written in this cascade
	warned   map[string]struct{} // cycle-suppressed style paths already logged
}

// NewDesignSystem creates a DesignSystem over store.
func NewDesignSystem(store Store, opts ...DesignOpt) *DesignSystem {
	var opt DesignOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Namespace == "" {
		opt.Namespace = "tokens"
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &DesignSystem{
		store:    store,
		ns:       opt.Namespace,
		logger:   opt.Logger,
		bindings: map[string][]string{},
		unsubs:   map[string]func(){},
		inFlight: map[string]struct{}{},
		warned:   map[string]struct{}{},
	}
}

// write sets a style path unless that path is already being written within
// the current fan-out, which would mean the binding graph is cyclic. The
// first suppression per style path is logged.
func (d *DesignSystem) write(stylePath string, value any) {
	if _, busy := d.inFlight[stylePath]; busy {
		if _, seen := d.warned[stylePath]; !seen {
			d.warned[stylePath] = struct{}{}
			d.logger.Warn(i18n.T(CodeRelationCycle, nil), "target", stylePath)
		}
		return
	}
	d.inFlight[stylePath] = struct{}{}
	d.store.Set(stylePath, value)
	delete(d.inFlight, stylePath)
}

func (d *DesignSystem) fullPath(tokenPath string) string { return d.ns + "." + tokenPath }

// Bind registers stylePath as dependent on tokenPath and immediately copies
// the token's current value (when defined) to stylePath. A token path holds
// exactly one store subscription no matter how many style paths are bound to
// it. Re-binding an existing pair is a no-op. The returned disposer removes
// only this style-path dependency and is idempotent; the subscription is
// torn down once no style paths remain for the token.
func (d *DesignSystem) Bind(stylePath, tokenPath string) func() {
	set := d.bindings[tokenPath]
	bound := false
	for _, sp := range set {
		if sp == stylePath {
			bound = true
			break
		}
	}
	if !bound {
		if len(set) == 0 {
			d.unsubs[tokenPath] = d.store.Subscribe(d.fullPath(tokenPath), func(ev Event) {
				for _, sp := range d.bindings[tokenPath] {
					d.write(sp, ev.Value)
				}
			})
		}
		d.bindings[tokenPath] = append(set, stylePath)
	}
	if v := d.store.Get(d.fullPath(tokenPath)); v != nil {
		d.write(stylePath, v)
	}
	disposed := false
	return func() {
		if disposed {
			return
		}
		disposed = true
		d.unbind(stylePath, tokenPath)
	}
}

// BindAll binds every stylePath -> tokenPath pair of the map (style paths in
// sorted order, so the composite is deterministic) and returns a disposer
// releasing them all.
func (d *DesignSystem) BindAll(pairs map[string]string) func() {
	disposers := make([]func(), 0, len(pairs))
	for _, stylePath := range sortedKeys(pairs) {
		disposers = append(disposers, d.Bind(stylePath, pairs[stylePath]))
	}
	return func() {
		for _, dispose := range disposers {
			dispose()
		}
	}
}

func (d *DesignSystem) unbind(stylePath, tokenPath string) {
	set := d.bindings[tokenPath]
	for i, sp := range set {
		if sp == stylePath {
			d.bindings[tokenPath] = append(set[:i], set[i+1:]...)
			break
		}
	}
	if len(d.bindings[tokenPath]) == 0 {
		if unsub := d.unsubs[tokenPath]; unsub != nil {
			unsub()
		}
		delete(d.unsubs, tokenPath)
		delete(d.bindings, tokenPath)
	}
}

// SetToken writes value at the token's full path; every bound style path
// receives it through the existing subscription before SetToken returns.
func (d *DesignSystem) SetToken(tokenPath string, value any) {
	d.store.Set(d.fullPath(tokenPath), value)
}

// SetTokens writes every scalar leaf of the partial tree to its full dotted
// path under the token namespace. This is a merge by path, not a tree
// replace: token paths absent from the input are untouched.
func (d *DesignSystem) SetTokens(partial map[string]any) {
	for _, leaf := range flattenTree(d.ns, partial) {
		d.store.Set(leaf.path, leaf.value)
	}
}

// Token reads the current value of a token path, nil when unset.
func (d *DesignSystem) Token(tokenPath string) any {
	return d.store.Get(d.fullPath(tokenPath))
}

// AllTokens returns a deep copy of the whole token tree.
func (d *DesignSystem) AllTokens() map[string]any {
	if m, ok := d.store.Get(d.ns).(map[string]any); ok {
		return copyTree(m)
	}
	return map[string]any{}
}

// Bindings returns a snapshot of the binding graph, token path -> style
// paths in insertion order. The copy is safe for callers to mutate.
func (d *DesignSystem) Bindings() map[string][]string {
	out := make(map[string][]string, len(d.bindings))
	for token, styles := range d.bindings {
		out[token] = append([]string(nil), styles...)
	}
	return out
}

// Destroy unsubscribes every token subscription and clears the binding
// graph. Token values already written remain in the store.
func (d *DesignSystem) Destroy() {
	for _, unsub := range d.unsubs {
		unsub()
	}
	d.unsubs = map[string]func(){}
	d.bindings = map[string][]string{}
	d.inFlight = map[string]struct{}{}
	d.warned = map[string]struct{}{}
}
