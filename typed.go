package stylegraph

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/stylegraph/cssvalue"
	"github.com/reoring/stylegraph/i18n"
)

// ValueType names the constraint kinds a schema can declare.
type ValueType string

const (
	TypeColor  ValueType = "color"
	TypeLength ValueType = "length"
	TypeEnum   ValueType = "enum"
	TypeNumber ValueType = "number"
	TypeString ValueType = "string"
	TypeShadow ValueType = "shadow"
)

// Constraint declares the type and bounds a style property must satisfy.
// Min/Max hold numeric bounds for number constraints and length literals for
// length constraints; both decode naturally from JSON and YAML.
type Constraint struct {
	Type      ValueType `json:"type" yaml:"type"`
	Min       any       `json:"min,omitempty" yaml:"min,omitempty"`
	Max       any       `json:"max,omitempty" yaml:"max,omitempty"`
	Values    []string  `json:"values,omitempty" yaml:"values,omitempty"`
	MaxLayers int       `json:"maxLayers,omitempty" yaml:"maxLayers,omitempty"`
}

// ComponentSchema maps property names to their constraints.
type ComponentSchema map[string]Constraint

// Schema maps component names to their property schemas.
type Schema map[string]ComponentSchema

// Result is the outcome of an on-demand validation.
type Result struct {
	Valid bool
	Error string // empty when valid
}

// Mode selects what happens when automatic validation finds a violation.
type Mode int

const (
	// ModeWarn records the violation and logs at warn level.
	ModeWarn Mode = iota
	// ModeError records the violation and logs at error level.
	ModeError
	// ModeReject records the violation silently. Against the plain watcher
	// it is advisory only; route writes through Guard() to give it real
	// veto power.
	ModeReject
)

// TypedOpt bundles TypedCSS options.
type TypedOpt struct {
	Mode        Mode
	OnViolation func(Violation)
	Logger      *slog.Logger
	// Namespace is the watched style namespace; defaults to "css".
	Namespace string
	// SchemaNamespace is where the schema is mirrored for introspection;
	// defaults to "schema".
	SchemaNamespace string
}

// TypedCSS validates style writes against a runtime schema and keeps a
// bounded violation log. Components without a schema entry are permissive:
// their values pass through unvalidated.
type TypedCSS struct {
	store       Store
	schema      Schema
	mode        Mode
	onViolation func(Violation)
	logger      *slog.Logger
	ns          string
	schemaNS    string
	log         violationLog
	unsub       func()
}

// NewTypedCSS creates a TypedCSS over store with an initial schema. The
// schema is copied defensively and mirrored into the store under the schema
// namespace; a wildcard subscription validates every leaf write under the
// style namespace from then on.
func NewTypedCSS(store Store, schema Schema, opts ...TypedOpt) *TypedCSS {
	var opt TypedOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Namespace == "" {
		opt.Namespace = "css"
	}
	if opt.SchemaNamespace == "" {
		opt.SchemaNamespace = "schema"
	}
	t := &TypedCSS{
		store:       store,
		schema:      Schema{},
		mode:        opt.Mode,
		onViolation: opt.OnViolation,
		logger:      opt.Logger,
		ns:          opt.Namespace,
		schemaNS:    opt.SchemaNamespace,
	}
	for component, cs := range schema {
		t.DefineComponent(component, cs)
	}
	t.unsub = store.Subscribe(t.ns+".*", t.onWrite)
	return t
}

// onWrite is the automatic validation path. Map values are subtree
// replacements and are skipped, as is any path that is not exactly
// <ns>.<component>.<property>.
func (t *TypedCSS) onWrite(ev Event) {
	if _, isTree := ev.Value.(map[string]any); isTree {
		return
	}
	segs := SplitPath(ev.Path)
	if len(segs) != 3 {
		return
	}
	res := t.Validate(segs[1], segs[2], ev.Value)
	if !res.Valid {
		t.Report(segs[1], segs[2], res.Error)
	}
}

// Validate checks value against the schema for component/property. It is a
// pure function of the current schema and its arguments: no violation is
// recorded. Unknown components are valid by design; a known component with
// an unknown property is invalid, naming the allowed properties.
func (t *TypedCSS) Validate(component, property string, value any) Result {
	cs, ok := t.schema[component]
	if !ok {
		return Result{Valid: true}
	}
	c, ok := cs[property]
	if !ok {
		return invalid("%s: %q is not a property of %q (allowed: %s)",
			i18n.T(CodeUnknownProperty, nil), property, component, strings.Join(sortedKeys(cs), ", "))
	}
	return checkConstraint(c, fmt.Sprint(value))
}

func invalid(format string, args ...any) Result {
	return Result{Valid: false, Error: fmt.Sprintf(format, args...)}
}

func checkConstraint(c Constraint, value string) Result {
	switch c.Type {
	case TypeColor:
		return checkColor(value)
	case TypeLength:
		return checkLength(c, value)
	case TypeEnum:
		return checkEnum(c, value)
	case TypeNumber:
		return checkNumber(c, value)
	case TypeShadow:
		return checkShadow(c, value)
	default: // TypeString and unknown types are always valid
		return Result{Valid: true}
	}
}

var colorPrefixes = []string{"rgb(", "rgba(", "hsl(", "hsla(", "var("}

var colorKeywords = map[string]bool{
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	digits := s[1:]
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

func checkColor(value string) Result {
	s := strings.ToLower(strings.TrimSpace(value))
	if isHexColor(s) || colorKeywords[s] {
		return Result{Valid: true}
	}
	for _, p := range colorPrefixes {
		if strings.HasPrefix(s, p) {
			return Result{Valid: true}
		}
	}
	if _, ok := cssvalue.NamedColor(s); ok {
		return Result{Valid: true}
	}
	return invalid("%s: %q", i18n.T(CodeInvalidColor, nil), value)
}

var lengthKeywords = map[string]bool{
	"0":       true,
	"auto":    true,
	"inherit": true,
	"initial": true,
	"unset":   true,
}

func checkLength(c Constraint, value string) Result {
	if strings.TrimSpace(value) == "" {
		return invalid("%s: %q", i18n.T(CodeInvalidLength, nil), value)
	}
	for _, field := range strings.Fields(value) {
		lower := strings.ToLower(field)
		if lengthKeywords[lower] || strings.HasPrefix(lower, "var(") {
			continue
		}
		l, ok := cssvalue.ParseLength(field)
		if !ok {
			return invalid("%s: %q", i18n.T(CodeInvalidLength, nil), field)
		}
		if res := checkLengthBounds(c, l); !res.Valid {
			return res
		}
	}
	return Result{Valid: true}
}

// checkLengthBounds compares a parsed length against the min/max literals
// using approximate pixel equivalents. A bound is skipped when either side
// has no pixel mapping.
func checkLengthBounds(c Constraint, l cssvalue.Length) Result {
	px, ok := cssvalue.PixelsOf(l)
	if !ok {
		return Result{Valid: true}
	}
	if lit, ok := lengthBound(c.Min); ok {
		if min, ok := cssvalue.ParseLength(lit); ok {
			if minPx, ok := cssvalue.PixelsOf(min); ok && px < minPx {
				return invalid("%s: %s is below minimum %s", i18n.T(CodeOutOfRange, nil),
					cssvalue.FormatLength(l.Value, l.Unit), lit)
			}
		}
	}
	if lit, ok := lengthBound(c.Max); ok {
		if max, ok := cssvalue.ParseLength(lit); ok {
			if maxPx, ok := cssvalue.PixelsOf(max); ok && px > maxPx {
				return invalid("%s: %s is above maximum %s", i18n.T(CodeOutOfRange, nil),
					cssvalue.FormatLength(l.Value, l.Unit), lit)
			}
		}
	}
	return Result{Valid: true}
}

func checkEnum(c Constraint, value string) Result {
	for _, v := range c.Values {
		if v == value {
			return Result{Valid: true}
		}
	}
	return invalid("%s: %q is not one of [%s]", i18n.T(CodeInvalidEnum, nil),
		value, strings.Join(c.Values, ", "))
}

func checkNumber(c Constraint, value string) Result {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return invalid("%s: %q", i18n.T(CodeInvalidNumber, nil), value)
	}
	if min, ok := numBound(c.Min); ok && n < min {
		return invalid("%s: %v is below minimum %v", i18n.T(CodeOutOfRange, nil), n, min)
	}
	if max, ok := numBound(c.Max); ok && n > max {
		return invalid("%s: %v is above maximum %v", i18n.T(CodeOutOfRange, nil), n, max)
	}
	return Result{Valid: true}
}

func checkShadow(c Constraint, value string) Result {
	if c.MaxLayers <= 0 {
		return Result{Valid: true}
	}
	layers := len(strings.Split(value, ","))
	if layers > c.MaxLayers {
		return invalid("%s: %d layers exceed maxLayers %d", i18n.T(CodeTooManyLayers, nil),
			layers, c.MaxLayers)
	}
	return Result{Valid: true}
}

// lengthBound extracts a length-literal bound from a Constraint field.
func lengthBound(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// numBound extracts a numeric bound from a Constraint field. JSON decodes
// numbers as float64, YAML as int or float64; string forms are accepted for
// hand-built schemas.
func numBound(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Report appends a Violation for component/property and hands it to the
// OnViolation sink when one is set; otherwise it logs at warn or error level
// per the mode. Reject mode records without output.
func (t *TypedCSS) Report(component, property, message string) {
	v := Violation{
		Component: component,
		Property:  property,
		Message:   message,
		Timestamp: time.Now(),
	}
	t.log.append(v)
	if t.onViolation != nil {
		t.onViolation(v)
		return
	}
	switch t.mode {
	case ModeWarn:
		t.logger.Warn("style violation", "component", component, "property", property, "message", message)
	case ModeError:
		t.logger.Error("style violation", "component", component, "property", property, "message", message)
	}
}

// DefineComponent installs (or replaces) a component schema and mirrors a
// defensive copy into the store for introspection.
func (t *TypedCSS) DefineComponent(component string, cs ComponentSchema) {
	copied := make(ComponentSchema, len(cs))
	for prop, c := range cs {
		c.Values = append([]string(nil), c.Values...)
		copied[prop] = c
	}
	t.schema[component] = copied
	mirror := make(ComponentSchema, len(copied))
	for prop, c := range copied {
		c.Values = append([]string(nil), c.Values...)
		mirror[prop] = c
	}
	t.store.Set(t.schemaNS+"."+component, mirror)
}

// RemoveComponent deletes a component schema; its values become permissive
// again. The store mirror is left as written.
func (t *TypedCSS) RemoveComponent(component string) {
	delete(t.schema, component)
}

// SchemaOf returns a copy of one component's schema, nil when undefined.
func (t *TypedCSS) SchemaOf(component string) ComponentSchema {
	cs, ok := t.schema[component]
	if !ok {
		return nil
	}
	out := make(ComponentSchema, len(cs))
	for prop, c := range cs {
		c.Values = append([]string(nil), c.Values...)
		out[prop] = c
	}
	return out
}

// FullSchema returns a copy of the whole schema.
func (t *TypedCSS) FullSchema() Schema {
	out := make(Schema, len(t.schema))
	for component := range t.schema {
		out[component] = t.SchemaOf(component)
	}
	return out
}

// Violations returns up to limit of the most recent violations, oldest-first
// within that slice. A non-positive limit means 50.
func (t *TypedCSS) Violations(limit int) []Violation { return t.log.recent(limit) }

// ClearViolations empties the violation log.
func (t *TypedCSS) ClearViolations() { t.log.clear() }

// Destroy detaches the style-namespace subscription and clears the log.
func (t *TypedCSS) Destroy() {
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
	t.log.clear()
}

// Guard returns a Store whose Set gives reject mode real veto power: an
// invalid <ns>.<component>.<property> leaf write is recorded and dropped
// before it reaches the underlying store. In warn and error modes Guard
// delegates unchanged (the watcher already reports). Reads and
// subscriptions pass through.
func (t *TypedCSS) Guard() Store {
	return &guardStore{Store: t.store, typed: t}
}

type guardStore struct {
	Store
	typed *TypedCSS
}

func (g *guardStore) Set(path string, value any) {
	t := g.typed
	if t.mode == ModeReject {
		if _, isTree := value.(map[string]any); !isTree {
			segs := SplitPath(path)
			if len(segs) == 3 && segs[0] == t.ns {
				if res := t.Validate(segs[1], segs[2], value); !res.Valid {
					t.Report(segs[1], segs[2], res.Error)
					return
				}
			}
		}
	}
	g.Store.Set(path, value)
}
