package dsl_test

import (
	"testing"

	stylegraph "github.com/reoring/stylegraph"
	"github.com/reoring/stylegraph/dsl"
)

func TestComponentBuilder(t *testing.T) {
	card := dsl.Component().
		Prop("background", dsl.Color()).
		Prop("zIndex", dsl.Number().Min(0).Max(9999)).
		Prop("padding", dsl.Length().Min("0px").Max("4rem")).
		Prop("display", dsl.Enum("block", "flex", "grid")).
		Prop("boxShadow", dsl.Shadow().MaxLayers(3)).
		Prop("label", dsl.String()).
		Build()

	if len(card) != 6 {
		t.Fatalf("got %d properties", len(card))
	}
	if card["zIndex"].Type != stylegraph.TypeNumber || card["zIndex"].Min != 0.0 {
		t.Fatalf("zIndex constraint = %+v", card["zIndex"])
	}
	if card["padding"].Max != "4rem" {
		t.Fatalf("padding constraint = %+v", card["padding"])
	}
	if card["boxShadow"].MaxLayers != 3 {
		t.Fatalf("boxShadow constraint = %+v", card["boxShadow"])
	}
}

func TestBuiltSchemaValidates(t *testing.T) {
	store := stylegraph.NewMemStore()
	typed := stylegraph.NewTypedCSS(store, stylegraph.Schema{
		"card": dsl.Component().
			Prop("zIndex", dsl.Number().Min(0).Max(9999)).
			Prop("display", dsl.Enum("block", "flex")).
			Build(),
	})
	defer typed.Destroy()

	if res := typed.Validate("card", "zIndex", "10"); !res.Valid {
		t.Fatalf("got %+v", res)
	}
	if res := typed.Validate("card", "zIndex", "-1"); res.Valid {
		t.Fatalf("expected invalid")
	}
	if res := typed.Validate("card", "display", "grid"); res.Valid {
		t.Fatalf("expected invalid")
	}
}

func TestPropReplacesOnRedeclare(t *testing.T) {
	cs := dsl.Component().
		Prop("display", dsl.Enum("block")).
		Prop("display", dsl.Enum("flex", "grid")).
		Build()
	if got := cs["display"].Values; len(got) != 2 || got[0] != "flex" {
		t.Fatalf("values = %v", got)
	}
}
