// Package dsl provides fluent builders for component schemas, mirroring how
// the constraints read in a style guide:
//
//	card := dsl.Component().
//	    Prop("background", dsl.Color()).
//	    Prop("zIndex", dsl.Number().Min(0).Max(9999)).
//	    Prop("padding", dsl.Length().Min("0px").Max("4rem")).
//	    Prop("display", dsl.Enum("block", "flex", "grid")).
//	    Prop("boxShadow", dsl.Shadow().MaxLayers(3)).
//	    Build()
package dsl

import (
	stylegraph "github.com/reoring/stylegraph"
)

// ConstraintBuilder is anything that can finalize into a Constraint.
type ConstraintBuilder interface {
	Constraint() stylegraph.Constraint
}

type componentBuilder struct {
	props map[string]stylegraph.Constraint
}

// Component starts a component schema builder.
func Component() *componentBuilder {
	return &componentBuilder{props: map[string]stylegraph.Constraint{}}
}

// Prop registers a property constraint. Re-declaring a property replaces it.
func (b *componentBuilder) Prop(name string, c ConstraintBuilder) *componentBuilder {
	b.props[name] = c.Constraint()
	return b
}

// Build finalizes the component schema.
func (b *componentBuilder) Build() stylegraph.ComponentSchema {
	out := make(stylegraph.ComponentSchema, len(b.props))
	for name, c := range b.props {
		out[name] = c
	}
	return out
}

// ---- per-type constraint builders ----

type colorBuilder struct{}

// Color declares a color-valued property.
func Color() ConstraintBuilder { return colorBuilder{} }

func (colorBuilder) Constraint() stylegraph.Constraint {
	return stylegraph.Constraint{Type: stylegraph.TypeColor}
}

type stringBuilder struct{}

// String declares a free-form string property (always valid).
func String() ConstraintBuilder { return stringBuilder{} }

func (stringBuilder) Constraint() stylegraph.Constraint {
	return stylegraph.Constraint{Type: stylegraph.TypeString}
}

type lengthBuilder struct {
	min, max string
}

// Length declares a length-valued property with optional literal bounds.
func Length() *lengthBuilder { return &lengthBuilder{} }

// Min sets the lower bound as a length literal like "0px".
func (b *lengthBuilder) Min(literal string) *lengthBuilder { b.min = literal; return b }

// Max sets the upper bound as a length literal like "4rem".
func (b *lengthBuilder) Max(literal string) *lengthBuilder { b.max = literal; return b }

func (b *lengthBuilder) Constraint() stylegraph.Constraint {
	c := stylegraph.Constraint{Type: stylegraph.TypeLength}
	if b.min != "" {
		c.Min = b.min
	}
	if b.max != "" {
		c.Max = b.max
	}
	return c
}

type numberBuilder struct {
	min, max *float64
}

// Number declares a numeric property with optional inclusive bounds.
func Number() *numberBuilder { return &numberBuilder{} }

func (b *numberBuilder) Min(v float64) *numberBuilder { b.min = &v; return b }

func (b *numberBuilder) Max(v float64) *numberBuilder { b.max = &v; return b }

func (b *numberBuilder) Constraint() stylegraph.Constraint {
	c := stylegraph.Constraint{Type: stylegraph.TypeNumber}
	if b.min != nil {
		c.Min = *b.min
	}
	if b.max != nil {
		c.Max = *b.max
	}
	return c
}

type enumBuilder struct {
	values []string
}

// Enum declares a property restricted to the given values.
func Enum(values ...string) ConstraintBuilder {
	return enumBuilder{values: append([]string(nil), values...)}
}

func (b enumBuilder) Constraint() stylegraph.Constraint {
	return stylegraph.Constraint{Type: stylegraph.TypeEnum, Values: append([]string(nil), b.values...)}
}

type shadowBuilder struct {
	maxLayers int
}

// Shadow declares a box-shadow property with an optional layer cap.
func Shadow() *shadowBuilder { return &shadowBuilder{} }

// MaxLayers caps the number of comma-separated shadow layers.
func (b *shadowBuilder) MaxLayers(n int) *shadowBuilder { b.maxLayers = n; return b }

func (b *shadowBuilder) Constraint() stylegraph.Constraint {
	return stylegraph.Constraint{Type: stylegraph.TypeShadow, MaxLayers: b.maxLayers}
}
