package stylegraph

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/reoring/stylegraph/cssvalue"
	"github.com/reoring/stylegraph/i18n"
)

// RelationKind tags a relation descriptor with its kind.
type RelationKind string

const (
	KindDerive   RelationKind = "derive"
	KindScale    RelationKind = "scale"
	KindContrast RelationKind = "contrast"
	KindClamp    RelationKind = "clamp"
)

// Relation is the immutable descriptor of one registered relation. Only the
// fields of its kind are populated.
type Relation struct {
	ID   string
	Kind RelationKind

	Target   string // derive, contrast, clamp
	Ref      string // derive, clamp
	Multiply float64
	Add      float64
	Unit     cssvalue.Unit

	Base    string             // scale
	Targets map[string]float64 // scale

	Against  string // contrast
	Light    string
	Dark     string
	MinRatio float64

	Min string // clamp
	Max string
}

// DeriveOpt configures Derive. A zero Multiply means the default of 1; an
// empty Unit keeps the source's own unit.
type DeriveOpt struct {
	Ref      string
	Multiply float64
	Add      float64
	Unit     cssvalue.Unit
}

// ContrastOpt configures Contrast. Zero values mean light "#ffffff", dark
// "#1e293b" and a minimum ratio of 4.5 (WCAG AA for normal text).
type ContrastOpt struct {
	Against  string
	Light    string
	Dark     string
	MinRatio float64
}

// ClampOpt configures Clamp. Min/Max are length literals, parsed once at
// registration; a bound only applies when its unit matches the source's.
type ClampOpt struct {
	Ref string
	Min string
	Max string
}

// RelationalOpt bundles RelationalCSS options.
type RelationalOpt struct {
	Logger *slog.Logger
}

// RelationalCSS owns a registry of derive/scale/contrast/clamp relations.
// Each relation computes its target immediately at registration and
// recomputes synchronously on every source change; chained relations cascade
// within the same call stack. A per-engine in-flight set guards against
// cyclic relation graphs: a recompute whose target is already being written
// in the current cascade is skipped and reported.
type RelationalCSS struct {
	store     Store
	logger    *slog.Logger
	relations []Relation
	teardown  map[string]func()   // relation id -> unsubscribe
	inFlight  map[string]struct{} // targets being written in this cascade
	warned    map[string]struct{} // cycle-suppressed targets already logged
}

// NewRelationalCSS creates a RelationalCSS over store.
func NewRelationalCSS(store Store, opts ...RelationalOpt) *RelationalCSS {
	var opt RelationalOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &RelationalCSS{
		store:    store,
		logger:   opt.Logger,
		teardown: map[string]func(){},
		inFlight: map[string]struct{}{},
		warned:   map[string]struct{}{},
	}
}

// Derive keeps target equal to ref's value times Multiply plus Add. A ref
// that parses as a length is formatted in the resolved unit; a bare number
// is written as a plain numeric string; anything else leaves the target
// untouched.
func (r *RelationalCSS) Derive(target string, opt DeriveOpt) func() {
	multiply := opt.Multiply
	if multiply == 0 {
		multiply = 1
	}
	rel := Relation{
		ID:       uuid.NewString(),
		Kind:     KindDerive,
		Target:   target,
		Ref:      opt.Ref,
		Multiply: multiply,
		Add:      opt.Add,
		Unit:     opt.Unit,
	}
	recompute := func() {
		raw := r.store.Get(rel.Ref)
		if raw == nil {
			return
		}
		s := fmt.Sprint(raw)
		if l, ok := cssvalue.ParseLength(s); ok {
			unit := l.Unit
			if rel.Unit != "" {
				unit = rel.Unit
			}
			r.write(rel.Target, cssvalue.FormatLength(l.Value*rel.Multiply+rel.Add, unit))
			return
		}
		if n, ok := cssvalue.ParseNumber(s); ok {
			r.write(rel.Target, cssvalue.FormatNumber(n*rel.Multiply+rel.Add))
		}
	}
	recompute()
	unsub := r.store.Subscribe(rel.Ref, func(Event) { recompute() })
	return r.register(rel, unsub)
}

// Scale keeps every target equal to the base length scaled by its factor,
// formatted in the base's own unit. Factors are fixed at registration; every
// base change recomputes all targets together.
func (r *RelationalCSS) Scale(base string, targets map[string]float64) func() {
	factors := make(map[string]float64, len(targets))
	for target, factor := range targets {
		factors[target] = factor
	}
	rel := Relation{
		ID:      uuid.NewString(),
		Kind:    KindScale,
		Base:    base,
		Targets: factors,
	}
	recompute := func() {
		raw := r.store.Get(rel.Base)
		if raw == nil {
			return
		}
		l, ok := cssvalue.ParseLength(fmt.Sprint(raw))
		if !ok {
			return
		}
		for _, target := range sortedKeys(rel.Targets) {
			r.write(target, cssvalue.FormatLength(l.Value*rel.Targets[target], l.Unit))
		}
	}
	recompute()
	unsub := r.store.Subscribe(rel.Base, func(Event) { recompute() })
	return r.register(rel, unsub)
}

// Contrast keeps target set to whichever of the light/dark candidates reads
// better against the background color at Against. When both meet MinRatio
// the higher ratio wins, ties going to light; when neither meets it the
// higher-ratio candidate is written anyway and a warning is logged.
func (r *RelationalCSS) Contrast(target string, opt ContrastOpt) func() {
	light := opt.Light
	if light == "" {
		light = "#ffffff"
	}
	dark := opt.Dark
	if dark == "" {
		dark = "#1e293b"
	}
	minRatio := opt.MinRatio
	if minRatio == 0 {
		minRatio = 4.5
	}
	rel := Relation{
		ID:       uuid.NewString(),
		Kind:     KindContrast,
		Target:   target,
		Against:  opt.Against,
		Light:    light,
		Dark:     dark,
		MinRatio: minRatio,
	}
	recompute := func() {
		raw := r.store.Get(rel.Against)
		if raw == nil {
			return
		}
		bg, ok := cssvalue.ParseColor(fmt.Sprint(raw))
		if !ok {
			return
		}
		lightRGB, okLight := cssvalue.ParseColor(rel.Light)
		darkRGB, okDark := cssvalue.ParseColor(rel.Dark)
		if !okLight || !okDark {
			return
		}
		lightRatio := cssvalue.ContrastRatio(lightRGB, bg)
		darkRatio := cssvalue.ContrastRatio(darkRGB, bg)
		pick := rel.Light
		switch {
		case lightRatio >= rel.MinRatio && darkRatio >= rel.MinRatio:
			if darkRatio > lightRatio {
				pick = rel.Dark
			}
		case lightRatio >= rel.MinRatio:
			pick = rel.Light
		case darkRatio >= rel.MinRatio:
			pick = rel.Dark
		default:
			if darkRatio > lightRatio {
				pick = rel.Dark
			}
			r.logger.Warn("no candidate meets contrast ratio",
				"target", rel.Target, "against", fmt.Sprint(raw), "minRatio", rel.MinRatio)
		}
		r.write(rel.Target, pick)
	}
	recompute()
	unsub := r.store.Subscribe(rel.Against, func(Event) { recompute() })
	return r.register(rel, unsub)
}

// Clamp keeps target equal to ref's length clamped to [Min, Max]. A bound
// whose unit differs from the source's is skipped; a ref value that is not a
// length passes through unchanged.
func (r *RelationalCSS) Clamp(target string, opt ClampOpt) func() {
	minLen, minOK := cssvalue.ParseLength(opt.Min)
	maxLen, maxOK := cssvalue.ParseLength(opt.Max)
	rel := Relation{
		ID:     uuid.NewString(),
		Kind:   KindClamp,
		Target: target,
		Ref:    opt.Ref,
		Min:    opt.Min,
		Max:    opt.Max,
	}
	recompute := func() {
		raw := r.store.Get(rel.Ref)
		if raw == nil {
			return
		}
		s := fmt.Sprint(raw)
		l, ok := cssvalue.ParseLength(s)
		if !ok {
			r.write(rel.Target, raw)
			return
		}
		v := l.Value
		if minOK && minLen.Unit == l.Unit && v < minLen.Value {
			v = minLen.Value
		}
		if maxOK && maxLen.Unit == l.Unit && v > maxLen.Value {
			v = maxLen.Value
		}
		r.write(rel.Target, cssvalue.FormatLength(v, l.Unit))
	}
	recompute()
	unsub := r.store.Subscribe(rel.Ref, func(Event) { recompute() })
	return r.register(rel, unsub)
}

// register records the descriptor, parks the unsubscribe in the teardown
// arena keyed by the relation id, and returns the opaque disposer. The
// disposer is the only way to remove a single relation.
func (r *RelationalCSS) register(rel Relation, unsub func()) func() {
	r.relations = append(r.relations, rel)
	r.teardown[rel.ID] = unsub
	return func() {
		teardown, ok := r.teardown[rel.ID]
		if !ok {
			return
		}
		delete(r.teardown, rel.ID)
		teardown()
		for i := range r.relations {
			if r.relations[i].ID == rel.ID {
				r.relations = append(r.relations[:i], r.relations[i+1:]...)
				break
			}
		}
	}
}

// write sets a target unless that target is already being written within the
// current cascade, which would mean the relation graph is cyclic. The first
// suppression per target is logged.
func (r *RelationalCSS) write(target string, value any) {
	if _, busy := r.inFlight[target]; busy {
		if _, seen := r.warned[target]; !seen {
			r.warned[target] = struct{}{}
			r.logger.Warn(i18n.T(CodeRelationCycle, nil), "target", target)
		}
		return
	}
	r.inFlight[target] = struct{}{}
	r.store.Set(target, value)
	delete(r.inFlight, target)
}

// Relations returns a snapshot of all registered descriptors in registration
// order. The copy is safe for callers to mutate.
func (r *RelationalCSS) Relations() []Relation {
	out := make([]Relation, len(r.relations))
	copy(out, r.relations)
	for i, rel := range out {
		if rel.Targets != nil {
			factors := make(map[string]float64, len(rel.Targets))
			for target, factor := range rel.Targets {
				factors[target] = factor
			}
			out[i].Targets = factors
		}
	}
	return out
}

// Destroy unsubscribes every relation and clears the registry.
func (r *RelationalCSS) Destroy() {
	for _, teardown := range r.teardown {
		teardown()
	}
	r.teardown = map[string]func(){}
	r.relations = nil
	r.inFlight = map[string]struct{}{}
	r.warned = map[string]struct{}{}
}
