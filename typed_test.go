package stylegraph_test

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	stylegraph "github.com/reoring/stylegraph"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func cardSchema() stylegraph.Schema {
	return stylegraph.Schema{
		"card": {
			"zIndex":     {Type: stylegraph.TypeNumber, Min: 0, Max: 9999},
			"background": {Type: stylegraph.TypeColor},
			"padding":    {Type: stylegraph.TypeLength, Min: "0px", Max: "4rem"},
			"display":    {Type: stylegraph.TypeEnum, Values: []string{"block", "flex", "grid"}},
			"boxShadow":  {Type: stylegraph.TypeShadow, MaxLayers: 2},
			"label":      {Type: stylegraph.TypeString},
		},
	}
}

func newTyped(t *testing.T, opts ...stylegraph.TypedOpt) (*stylegraph.MemStore, *stylegraph.TypedCSS) {
	t.Helper()
	store := stylegraph.NewMemStore()
	if len(opts) == 0 {
		opts = []stylegraph.TypedOpt{{Logger: discard()}}
	}
	typed := stylegraph.NewTypedCSS(store, cardSchema(), opts...)
	t.Cleanup(typed.Destroy)
	return store, typed
}

func TestValidate_NumberBounds(t *testing.T) {
	_, typed := newTyped(t)

	if res := typed.Validate("card", "zIndex", "10"); !res.Valid || res.Error != "" {
		t.Fatalf("got %+v", res)
	}
	if res := typed.Validate("card", "zIndex", "-1"); res.Valid {
		t.Fatalf("expected invalid")
	}
	if res := typed.Validate("card", "zIndex", "10000"); res.Valid {
		t.Fatalf("expected invalid")
	}
	if res := typed.Validate("card", "zIndex", "not-a-number"); res.Valid {
		t.Fatalf("expected invalid")
	}
}

func TestValidate_IsPure(t *testing.T) {
	_, typed := newTyped(t)
	first := typed.Validate("card", "zIndex", "-1")
	second := typed.Validate("card", "zIndex", "-1")
	if first != second {
		t.Fatalf("repeated validation differed: %+v vs %+v", first, second)
	}
	if len(typed.Violations(0)) != 0 {
		t.Fatalf("on-demand validation recorded violations")
	}
}

func TestValidate_UnknownComponentIsPermissive(t *testing.T) {
	_, typed := newTyped(t)
	if res := typed.Validate("tooltip", "anything", "whatever"); !res.Valid {
		t.Fatalf("got %+v", res)
	}
}

func TestValidate_UnknownPropertyNamesAllowed(t *testing.T) {
	_, typed := newTyped(t)
	res := typed.Validate("card", "margin", "1rem")
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	for _, prop := range []string{"background", "boxShadow", "display", "label", "padding", "zIndex"} {
		if !strings.Contains(res.Error, prop) {
			t.Fatalf("error does not name allowed property %q: %s", prop, res.Error)
		}
	}
}

func TestValidate_Color(t *testing.T) {
	_, typed := newTyped(t)
	valid := []string{
		"#fff", "#f0a8", "#3b82f6", "#1e293bff", "RGB(1,2,3)", "rgba(0,0,0,.5)",
		"hsl(200, 50%, 50%)", "hsla(200,50%,50%,.2)", "transparent", "currentColor",
		"inherit", "initial", "unset", "var(--brand)", "white", "Orange",
	}
	for _, v := range valid {
		if res := typed.Validate("card", "background", v); !res.Valid {
			t.Fatalf("%q rejected: %s", v, res.Error)
		}
	}
	invalid := []string{"", "#12345", "blurple", "12", "#gggggg"}
	for _, v := range invalid {
		if res := typed.Validate("card", "background", v); res.Valid {
			t.Fatalf("%q accepted", v)
		}
	}
}

func TestValidate_Length(t *testing.T) {
	_, typed := newTyped(t)
	valid := []string{"1rem", "0", "auto", "inherit", "initial", "unset",
		"var(--pad)", "1rem 2rem", "0 auto", "10px 0.5rem 1em 2%", "50vh"}
	for _, v := range valid {
		if res := typed.Validate("card", "padding", v); !res.Valid {
			t.Fatalf("%q rejected: %s", v, res.Error)
		}
	}
	invalid := []string{"", "   ", "fast", "1 rem", "1meter", "px"}
	for _, v := range invalid {
		if res := typed.Validate("card", "padding", v); res.Valid {
			t.Fatalf("%q accepted", v)
		}
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	_, typed := newTyped(t)
	// bounds are 0px..4rem = 0..64px approx
	if res := typed.Validate("card", "padding", "-1px"); res.Valid {
		t.Fatalf("below-minimum accepted")
	}
	res := typed.Validate("card", "padding", "5rem")
	if res.Valid {
		t.Fatalf("above-maximum accepted")
	}
	if !strings.Contains(res.Error, "4rem") {
		t.Fatalf("error does not name the offending bound: %s", res.Error)
	}
	if res := typed.Validate("card", "padding", "4rem"); !res.Valid {
		t.Fatalf("inclusive bound rejected: %s", res.Error)
	}
	// vh has no pixel mapping, so the bound check is skipped
	if res := typed.Validate("card", "padding", "500vh"); !res.Valid {
		t.Fatalf("unmapped unit should skip bounds: %s", res.Error)
	}
}

func TestValidate_EnumShadowString(t *testing.T) {
	_, typed := newTyped(t)
	if res := typed.Validate("card", "display", "flex"); !res.Valid {
		t.Fatalf("got %+v", res)
	}
	if res := typed.Validate("card", "display", "inline"); res.Valid {
		t.Fatalf("expected invalid")
	}
	if res := typed.Validate("card", "boxShadow", "0 1px 2px #000, 0 2px 4px #000"); !res.Valid {
		t.Fatalf("got %+v", res)
	}
	if res := typed.Validate("card", "boxShadow", "0 0 #000, 0 0 #111, 0 0 #222"); res.Valid {
		t.Fatalf("expected too many layers")
	}
	if res := typed.Validate("card", "label", "anything at all"); !res.Valid {
		t.Fatalf("got %+v", res)
	}
}

func TestAutomaticValidation_RecordsViolations(t *testing.T) {
	store, typed := newTyped(t)

	store.Set("css.card.zIndex", "10000")
	store.Set("css.card.display", "flex")
	store.Set("css.tooltip.whatever", "ok")                  // unschema'd component: permissive
	store.Set("css.hero", map[string]any{"zIndex": "99999"}) // subtree write: skipped

	vs := typed.Violations(0)
	if len(vs) != 1 {
		t.Fatalf("violations = %+v", vs)
	}
	v := vs[0]
	if v.Component != "card" || v.Property != "zIndex" || v.Message == "" || v.Timestamp.IsZero() {
		t.Fatalf("violation = %+v", v)
	}
	// advisory: the write itself still landed
	if store.Get("css.card.zIndex") != "10000" {
		t.Fatalf("advisory mode should not veto the write")
	}
}

func TestViolations_LimitAndOrder(t *testing.T) {
	store, typed := newTyped(t)
	for i := 0; i < 5; i++ {
		store.Set("css.card.display", "bogus-"+strconv.Itoa(i))
	}
	vs := typed.Violations(2)
	if len(vs) != 2 {
		t.Fatalf("got %d violations", len(vs))
	}
	// most recent two, oldest-first within the slice
	if !strings.Contains(vs[0].Message, "bogus-3") || !strings.Contains(vs[1].Message, "bogus-4") {
		t.Fatalf("violations = %+v", vs)
	}
}

func TestViolations_LogIsCapped(t *testing.T) {
	store, typed := newTyped(t)
	for i := 0; i < 250; i++ {
		store.Set("css.card.display", "bogus-"+strconv.Itoa(i))
	}
	vs := typed.Violations(300)
	if len(vs) != 200 {
		t.Fatalf("log holds %d entries, want 200", len(vs))
	}
	// the oldest 50 were evicted
	if !strings.Contains(vs[0].Message, "bogus-50") {
		t.Fatalf("oldest surviving entry = %+v", vs[0])
	}
}

func TestOnViolationSink(t *testing.T) {
	var got []stylegraph.Violation
	store := stylegraph.NewMemStore()
	typed := stylegraph.NewTypedCSS(store, cardSchema(), stylegraph.TypedOpt{
		OnViolation: func(v stylegraph.Violation) { got = append(got, v) },
	})
	defer typed.Destroy()

	store.Set("css.card.display", "nope")
	if len(got) != 1 || got[0].Property != "display" {
		t.Fatalf("sink got %+v", got)
	}
}

func TestDefineAndRemoveComponent(t *testing.T) {
	store, typed := newTyped(t)

	typed.DefineComponent("badge", stylegraph.ComponentSchema{
		"fontSize": {Type: stylegraph.TypeLength},
	})
	if res := typed.Validate("badge", "fontSize", "0.75rem"); !res.Valid {
		t.Fatalf("got %+v", res)
	}
	if res := typed.Validate("badge", "color", "#fff"); res.Valid {
		t.Fatalf("expected unknown property")
	}
	// schema is mirrored into the store for introspection
	if store.Get("schema.badge") == nil {
		t.Fatalf("schema mirror missing")
	}

	typed.RemoveComponent("badge")
	if res := typed.Validate("badge", "color", "#fff"); !res.Valid {
		t.Fatalf("removed component should be permissive: %+v", res)
	}
}

func TestSchemaCopiesAreDefensive(t *testing.T) {
	_, typed := newTyped(t)
	cs := typed.SchemaOf("card")
	cs["display"] = stylegraph.Constraint{Type: stylegraph.TypeEnum, Values: []string{"hacked"}}
	if res := typed.Validate("card", "display", "flex"); !res.Valid {
		t.Fatalf("SchemaOf leaked internal state: %+v", res)
	}
	full := typed.FullSchema()
	delete(full, "card")
	if res := typed.Validate("card", "zIndex", "-1"); res.Valid {
		t.Fatalf("FullSchema leaked internal state")
	}
}

func TestClearViolations(t *testing.T) {
	store, typed := newTyped(t)
	store.Set("css.card.display", "nope")
	typed.ClearViolations()
	if len(typed.Violations(0)) != 0 {
		t.Fatalf("log not cleared")
	}
}

func TestDestroy_StopsWatching(t *testing.T) {
	store := stylegraph.NewMemStore()
	typed := stylegraph.NewTypedCSS(store, cardSchema(), stylegraph.TypedOpt{Logger: discard()})
	typed.Destroy()
	store.Set("css.card.display", "nope")
	if len(typed.Violations(0)) != 0 {
		t.Fatalf("destroyed instance still validates")
	}
}

func TestGuard_RejectModeVetoesWrites(t *testing.T) {
	store := stylegraph.NewMemStore()
	typed := stylegraph.NewTypedCSS(store, cardSchema(), stylegraph.TypedOpt{
		Mode:   stylegraph.ModeReject,
		Logger: discard(),
	})
	defer typed.Destroy()
	guarded := typed.Guard()

	guarded.Set("css.card.zIndex", "10000")
	if v := store.Get("css.card.zIndex"); v != nil {
		t.Fatalf("rejected write reached the store: %v", v)
	}
	if vs := typed.Violations(0); len(vs) != 1 {
		t.Fatalf("violations = %+v", vs)
	}

	guarded.Set("css.card.zIndex", "10")
	if v := store.Get("css.card.zIndex"); v != "10" {
		t.Fatalf("valid write dropped: %v", v)
	}
	// non-style writes pass through untouched
	guarded.Set("tokens.space.md", "1rem")
	if store.Get("tokens.space.md") != "1rem" {
		t.Fatalf("non-style write dropped")
	}
}

func TestRejectWithoutGuardIsAdvisory(t *testing.T) {
	store := stylegraph.NewMemStore()
	typed := stylegraph.NewTypedCSS(store, cardSchema(), stylegraph.TypedOpt{
		Mode:   stylegraph.ModeReject,
		Logger: discard(),
	})
	defer typed.Destroy()

	store.Set("css.card.zIndex", "10000")
	if store.Get("css.card.zIndex") != "10000" {
		t.Fatalf("plain watcher must not veto")
	}
	if len(typed.Violations(0)) != 1 {
		t.Fatalf("violation not recorded")
	}
}
