package stylegraph

// Package stylegraph layers three reactive subsystems on top of a
// path-addressable, observable key-value store:
//
// - DesignSystem: a design-token tree plus a binding graph that pushes every
//   token write to the style paths bound to it.
// - TypedCSS: a runtime schema (component -> property -> Constraint) that
//   validates style writes and keeps a bounded violation log.
// - RelationalCSS: derive/scale/contrast/clamp relations that recompute a
//   target path synchronously whenever a source path changes.
//
// Design policy:
// - Keep only public APIs in the root package; value parsing lives under
//   cssvalue/, builders under dsl/, import/export under codec/.
// - The store is a collaborator behind the Store interface; MemStore is the
//   interchangeable reference implementation.
// - Everything is single-threaded and synchronous: a Set runs every matching
//   subscriber to completion before returning, and chained recomputes happen
//   within the same call stack.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	store := stylegraph.NewMemStore()
//	ds := stylegraph.NewDesignSystem(store)
//	ds.SetTokens(map[string]any{"color": map[string]any{"primary": "#3b82f6"}})
//	unbind := ds.Bind("css.btn.background", "color.primary")
//	defer unbind()
//
//	rel := stylegraph.NewRelationalCSS(store)
//	defer rel.Destroy()
//	rel.Derive("css.header.padding", stylegraph.DeriveOpt{Ref: "css.card.padding", Multiply: 2})
