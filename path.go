package stylegraph

import (
	"sort"
	"strings"
)

// SplitPath splits a dotted path into its segments.
func SplitPath(path string) []string { return strings.Split(path, ".") }

// JoinPath joins segments into a dotted path.
func JoinPath(segments ...string) string { return strings.Join(segments, ".") }

type pathLeaf struct {
	path  string
	value any
}

// flattenTree walks a nested map with an explicit worklist (no recursion,
// deep inputs stay safe) and returns every scalar leaf with its full dotted
// path: depth-first, pre-order, keys sorted per node, child path = parent
// path + "." + key.
func flattenTree(prefix string, tree map[string]any) []pathLeaf {
	type frame struct {
		path  string
		value any
	}
	stack := []frame{{path: prefix, value: tree}}
	var leaves []pathLeaf
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m, ok := f.value.(map[string]any)
		if !ok {
			leaves = append(leaves, pathLeaf{path: f.path, value: f.value})
			continue
		}
		keys := sortedKeys(m)
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			p := k
			if f.path != "" {
				p = f.path + "." + k
			}
			stack = append(stack, frame{path: p, value: m[k]})
		}
	}
	return leaves
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// copyTree deep-copies a nested map; scalar leaves are shared as-is.
func copyTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		if m, ok := v.(map[string]any); ok {
			out[k] = copyTree(m)
			continue
		}
		out[k] = v
	}
	return out
}
