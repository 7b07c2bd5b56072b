// Package codec imports and exports stylegraph schemas, token trees and
// violation logs as JSON and YAML.
package codec

import (
	"fmt"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"

	stylegraph "github.com/reoring/stylegraph"
)

// SchemaFromJSON decodes a component schema tree from JSON. Numeric and
// string min/max bounds both decode into their constraint fields.
func SchemaFromJSON(data []byte) (stylegraph.Schema, error) {
	var s stylegraph.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("codec: decode schema json: %w", err)
	}
	return s, nil
}

// SchemaToJSON encodes a schema as indented JSON.
func SchemaToJSON(s stylegraph.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: encode schema json: %w", err)
	}
	return data, nil
}

// SchemaFromYAML decodes a component schema tree from YAML.
func SchemaFromYAML(data []byte) (stylegraph.Schema, error) {
	var s stylegraph.Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("codec: decode schema yaml: %w", err)
	}
	return s, nil
}

// TokensFromJSON decodes a nested token tree suitable for
// DesignSystem.SetTokens.
func TokensFromJSON(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("codec: decode tokens json: %w", err)
	}
	return tree, nil
}

// TokensFromYAML decodes a nested token tree from YAML. Nested mappings are
// normalized to map[string]any so leaves flatten to dotted paths.
func TokensFromYAML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("codec: decode tokens yaml: %w", err)
	}
	return normalizeTree(tree), nil
}

// normalizeTree rewrites yaml's map[any]any-style nodes (and any nested
// map[string]any) into plain map[string]any trees.
func normalizeTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		return normalizeTree(node)
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// ViolationsToJSON encodes a violation slice as indented JSON, for exporting
// the log out of a running system.
func ViolationsToJSON(violations []stylegraph.Violation) ([]byte, error) {
	data, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: encode violations json: %w", err)
	}
	return data, nil
}
